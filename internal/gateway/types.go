// internal/gateway/types.go
package gateway

import (
	"time"

	"github.com/shopspring/decimal"
)

// Wire types for the back-office REST API. Money fields use decimal because
// the collaborator serializes amounts as either JSON numbers or quoted
// decimal strings; decimal.Decimal accepts both.

// LoginRequest represents the login request body
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthUser represents the authenticated user returned by login
type AuthUser struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// LoginResponse represents the login response body
type LoginResponse struct {
	User AuthUser `json:"user"`
	// Access is the bearer token; empty for cookie-session deployments,
	// where the client-side cookie jar carries the session instead.
	Access string `json:"access,omitempty"`
}

// Product represents a catalog entry
type Product struct {
	ID       int64           `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Category int64           `json:"category"`
}

// Category represents a product category
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Ingredient represents a stock ingredient
type Ingredient struct {
	ID           int64           `json:"id"`
	Name         string          `json:"name"`
	Unit         string          `json:"unit,omitempty"`
	CurrentStock decimal.Decimal `json:"current_stock"`
}

// Recipe represents one ingredient row of a product's recipe
type Recipe struct {
	ID           int64           `json:"id"`
	IngredientID int64           `json:"ingredient"`
	Ingredient   string          `json:"ingredient_name,omitempty"`
	QtyUsed      decimal.Decimal `json:"qty_used"`
}

// BillItemRequest represents one (product, quantity) pair of a bill request
type BillItemRequest struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

// CreateBillRequest represents the atomic create-bill request body
type CreateBillRequest struct {
	PaymentMethod string            `json:"payment_method"`
	Items         []BillItemRequest `json:"items"`
}

// BillItem represents one line of a created bill
type BillItem struct {
	ProductID   int64           `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
}

// Bill represents a bill as returned by the back office
type Bill struct {
	ID            int64           `json:"id"`
	BillNumber    string          `json:"bill_number"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	PaymentMethod string          `json:"payment_method"`
	CreatedAt     time.Time       `json:"created_at"`
	Items         []BillItem      `json:"items"`
}

// StaffUser represents a staff record for admin management
type StaffUser struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	IsActive bool   `json:"is_active"`
}

// CreateStaffRequest represents the create-staff request body
type CreateStaffRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// SalesSummary represents an aggregate sales report
type SalesSummary struct {
	TotalSales decimal.Decimal `json:"total_sales"`
	TotalBills int             `json:"total_bills"`
	CashSales  decimal.Decimal `json:"cash_sales"`
	UPISales   decimal.Decimal `json:"upi_sales"`
}

// ItemSales represents item-wise quantities sold
type ItemSales struct {
	ProductName   string `json:"product__name"`
	TotalQuantity int    `json:"total_quantity"`
}

// HistoryFilter narrows a bill history query
type HistoryFilter struct {
	From  string // YYYY-MM-DD, paired with To
	To    string
	Today bool
}
