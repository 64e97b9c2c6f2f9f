// internal/gateway/client.go
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/tazvirotechnologies-max/cafepos-terminal/internal/config"
	"github.com/tazvirotechnologies-max/cafepos-terminal/internal/pkg/apperrors"
)

// Client is the HTTP client for the back-office REST API. It is the only
// component that talks to the network; every failure it returns is already
// classified per the terminal's error taxonomy.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *logrus.Logger

	mu    sync.RWMutex
	token string
}

// NewClient creates a new back-office API client
func NewClient(cfg *config.Config, logger *logrus.Logger) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}

	return &Client{
		baseURL: strings.TrimSuffix(cfg.Backend.BaseURL, "/"),
		httpClient: &http.Client{
			Jar: jar,
			// No Timeout. Calls are not cancellable once dispatched and a
			// lost connection leaves the caller's workflow suspended.
		},
		logger: logger,
	}, nil
}

// SetToken installs the bearer token attached to subsequent requests.
// An empty token clears it (cookie-session deployments rely on the jar).
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// apiError carries the raw status and server detail of a non-2xx response
type apiError struct {
	Status int
	Detail string
}

// Error implements the error interface.
func (e *apiError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("backend returned %d: %s", e.Status, e.Detail)
	}
	return fmt.Sprintf("backend returned %d", e.Status)
}

// do makes an HTTP call against the back office and decodes the response
// into out (when out is non-nil). Extra headers may be passed pairwise.
func (c *Client) do(ctx context.Context, method, endpoint string, body, out interface{}, headers ...string) error {
	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request data: %w", err)
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.mu.RLock()
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	c.mu.RUnlock()
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", endpoint, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response from %s: %w", endpoint, err)
	}

	c.logger.WithFields(logrus.Fields{
		"method":   method,
		"endpoint": endpoint,
		"status":   resp.StatusCode,
	}).Debug("Backend call completed")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &apiError{Status: resp.StatusCode, Detail: extractDetail(respBody)}
	}

	if out != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("failed to parse response from %s: %w", endpoint, err)
		}
	}

	return nil
}

// extractDetail pulls the human-readable "detail" field from an error body
func extractDetail(body []byte) string {
	var payload struct {
		Detail string `json:"detail"`
		Error  string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	if payload.Detail != "" {
		return payload.Detail
	}
	return payload.Error
}

// asLoadError classifies any fetch failure as a recoverable LoadError
func asLoadError(what string, err error) error {
	return apperrors.Wrap(apperrors.CodeLoad, "Failed to load "+what, err)
}

// Login verifies credentials with the back office
func (c *Client) Login(ctx context.Context, username, password string) (*LoginResponse, error) {
	var resp LoginResponse
	err := c.do(ctx, http.MethodPost, "/login/", &LoginRequest{Username: username, Password: password}, &resp)
	if err != nil {
		var apiErr *apiError
		if errors.As(err, &apiErr) && (apiErr.Status == http.StatusUnauthorized || apiErr.Status == http.StatusForbidden || apiErr.Status == http.StatusBadRequest) {
			return nil, apperrors.Wrap(apperrors.CodeAuth, "Invalid username or password", err)
		}
		return nil, apperrors.Wrap(apperrors.CodeLoad, "Login request failed", err)
	}
	return &resp, nil
}

// Products fetches the sellable catalog
func (c *Client) Products(ctx context.Context) ([]Product, error) {
	var products []Product
	if err := c.do(ctx, http.MethodGet, "/products/", nil, &products); err != nil {
		return nil, asLoadError("products", err)
	}
	return products, nil
}

// LowStock fetches the records currently unavailable for sale
func (c *Client) LowStock(ctx context.Context) ([]Ingredient, error) {
	var items []Ingredient
	if err := c.do(ctx, http.MethodGet, "/inventory/low-stock/", nil, &items); err != nil {
		return nil, asLoadError("availability", err)
	}
	return items, nil
}

// CreateBill submits a bill atomically: either the created bill comes back
// or nothing changed server-side. The idempotency key identifies one
// user-initiated checkout across manual retries.
func (c *Client) CreateBill(ctx context.Context, req *CreateBillRequest, idempotencyKey string) (*Bill, error) {
	if idempotencyKey == "" {
		idempotencyKey = uuid.New().String()
	}

	var bill Bill
	err := c.do(ctx, http.MethodPost, "/bills/", req, &bill, "Idempotency-Key", idempotencyKey)
	if err != nil {
		var apiErr *apiError
		if errors.As(err, &apiErr) && apiErr.Detail != "" {
			return nil, apperrors.Wrap(apperrors.CodeSubmission, apiErr.Detail, err)
		}
		return nil, apperrors.Wrap(apperrors.CodeSubmission, "Payment failed", err)
	}
	return &bill, nil
}

// BillHistory fetches past bills, optionally filtered
func (c *Client) BillHistory(ctx context.Context, filter HistoryFilter) ([]Bill, error) {
	endpoint := "/bills/history/"
	if filter.Today {
		endpoint += "?today=1"
	} else if filter.From != "" && filter.To != "" {
		endpoint += "?" + url.Values{"from": {filter.From}, "to": {filter.To}}.Encode()
	}

	var bills []Bill
	if err := c.do(ctx, http.MethodGet, endpoint, nil, &bills); err != nil {
		return nil, asLoadError("bills", err)
	}
	return bills, nil
}

// BillDetail fetches one bill's full detail
func (c *Client) BillDetail(ctx context.Context, id int64) (*Bill, error) {
	var bill Bill
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/bills/%d/", id), nil, &bill); err != nil {
		return nil, asLoadError("bill detail", err)
	}
	return &bill, nil
}

// Categories fetches product categories
func (c *Client) Categories(ctx context.Context) ([]Category, error) {
	var categories []Category
	if err := c.do(ctx, http.MethodGet, "/categories/", nil, &categories); err != nil {
		return nil, asLoadError("categories", err)
	}
	return categories, nil
}

// Ingredients fetches the full ingredient list
func (c *Client) Ingredients(ctx context.Context) ([]Ingredient, error) {
	var ingredients []Ingredient
	if err := c.do(ctx, http.MethodGet, "/ingredients/", nil, &ingredients); err != nil {
		return nil, asLoadError("ingredients", err)
	}
	return ingredients, nil
}

// UpdateIngredientStock sets an ingredient's current stock level
func (c *Client) UpdateIngredientStock(ctx context.Context, id int64, currentStock string) error {
	body := map[string]string{"current_stock": currentStock}
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/ingredients/%d/", id), body, nil); err != nil {
		return apperrors.Wrap(apperrors.CodeSubmission, "Failed to update stock", err)
	}
	return nil
}

// CreateProduct adds a product to the catalog
func (c *Client) CreateProduct(ctx context.Context, name, price string, category int64) error {
	body := map[string]interface{}{"name": name, "price": price, "category": category}
	if err := c.do(ctx, http.MethodPost, "/products/", body, nil); err != nil {
		return apperrors.Wrap(apperrors.CodeSubmission, "Failed to add product", err)
	}
	return nil
}

// DeleteProduct removes a product from the catalog
func (c *Client) DeleteProduct(ctx context.Context, id int64) error {
	if err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/products/%d/", id), nil, nil); err != nil {
		return apperrors.Wrap(apperrors.CodeSubmission, "Cannot delete product", err)
	}
	return nil
}

// ProductRecipes fetches a product's recipe rows
func (c *Client) ProductRecipes(ctx context.Context, productID int64) ([]Recipe, error) {
	var recipes []Recipe
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/products/%d/recipes/", productID), nil, &recipes); err != nil {
		return nil, asLoadError("recipes", err)
	}
	return recipes, nil
}

// AddProductRecipe attaches an ingredient row to a product's recipe
func (c *Client) AddProductRecipe(ctx context.Context, productID, ingredientID int64, qtyUsed string) error {
	body := map[string]interface{}{"ingredient": ingredientID, "qty_used": qtyUsed}
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/products/%d/recipes/", productID), body, nil); err != nil {
		return apperrors.Wrap(apperrors.CodeSubmission, "Failed to add recipe", err)
	}
	return nil
}

// DeleteRecipe removes one recipe row
func (c *Client) DeleteRecipe(ctx context.Context, recipeID int64) error {
	if err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/recipes/%d/", recipeID), nil, nil); err != nil {
		return apperrors.Wrap(apperrors.CodeSubmission, "Failed to remove recipe", err)
	}
	return nil
}

// Staff fetches all staff records
func (c *Client) Staff(ctx context.Context) ([]StaffUser, error) {
	var staff []StaffUser
	if err := c.do(ctx, http.MethodGet, "/staff/", nil, &staff); err != nil {
		return nil, asLoadError("staff", err)
	}
	return staff, nil
}

// CreateStaff adds a staff account
func (c *Client) CreateStaff(ctx context.Context, req *CreateStaffRequest) error {
	if err := c.do(ctx, http.MethodPost, "/staff/", req, nil); err != nil {
		return apperrors.Wrap(apperrors.CodeSubmission, "Failed to add staff", err)
	}
	return nil
}

// SetStaffActive activates or deactivates a staff account
func (c *Client) SetStaffActive(ctx context.Context, id int64, active bool) error {
	body := map[string]bool{"is_active": active}
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/staff/%d/", id), body, nil); err != nil {
		return apperrors.Wrap(apperrors.CodeSubmission, "Failed to update user", err)
	}
	return nil
}

// DeleteStaff removes a staff account
func (c *Client) DeleteStaff(ctx context.Context, id int64) error {
	if err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/staff/%d/", id), nil, nil); err != nil {
		return apperrors.Wrap(apperrors.CodeSubmission, "Cannot delete user", err)
	}
	return nil
}

// ReportToday fetches today's sales summary
func (c *Client) ReportToday(ctx context.Context) (*SalesSummary, error) {
	var summary SalesSummary
	if err := c.do(ctx, http.MethodGet, "/reports/today/", nil, &summary); err != nil {
		return nil, asLoadError("today's report", err)
	}
	return &summary, nil
}

// ReportItems fetches item-wise sales
func (c *Client) ReportItems(ctx context.Context) ([]ItemSales, error) {
	var items []ItemSales
	if err := c.do(ctx, http.MethodGet, "/reports/items/", nil, &items); err != nil {
		return nil, asLoadError("item-wise report", err)
	}
	return items, nil
}

// ReportDateRange fetches a sales summary over a closed date range
func (c *Client) ReportDateRange(ctx context.Context, from, to string) (*SalesSummary, error) {
	endpoint := "/reports/date-range/?" + url.Values{"from": {from}, "to": {to}}.Encode()

	var summary SalesSummary
	if err := c.do(ctx, http.MethodGet, endpoint, nil, &summary); err != nil {
		return nil, asLoadError("date range report", err)
	}
	return &summary, nil
}
