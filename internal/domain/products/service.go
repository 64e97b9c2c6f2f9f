// internal/domain/products/service.go
package products

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/tazvirotechnologies-max/cafepos-terminal/internal/gateway"
	"github.com/tazvirotechnologies-max/cafepos-terminal/internal/pkg/apperrors"
)

// Fetcher is the slice of the back-office client product management needs
type Fetcher interface {
	Products(ctx context.Context) ([]gateway.Product, error)
	Categories(ctx context.Context) ([]gateway.Category, error)
	Ingredients(ctx context.Context) ([]gateway.Ingredient, error)
	CreateProduct(ctx context.Context, name, price string, category int64) error
	DeleteProduct(ctx context.Context, id int64) error
	ProductRecipes(ctx context.Context, productID int64) ([]gateway.Recipe, error)
	AddProductRecipe(ctx context.Context, productID, ingredientID int64, qtyUsed string) error
	DeleteRecipe(ctx context.Context, recipeID int64) error
}

// Overview is the product management screen's data set
type Overview struct {
	Products    []gateway.Product    `json:"products"`
	Categories  []gateway.Category   `json:"categories"`
	Ingredients []gateway.Ingredient `json:"ingredients"`
}

// CreateRequest represents a new catalog product
type CreateRequest struct {
	Name     string `json:"name"`
	Price    string `json:"price"`
	Category int64  `json:"category"`
}

// Service manages the product catalog and recipes through the back office.
// Every mutation is followed by a re-load from the source of truth.
type Service struct {
	gw Fetcher
}

// NewService creates a new product management service
func NewService(gw Fetcher) *Service {
	return &Service{gw: gw}
}

// Load fetches products, categories and ingredients together
func (s *Service) Load(ctx context.Context) (*Overview, error) {
	products, err := s.gw.Products(ctx)
	if err != nil {
		return nil, err
	}

	categories, err := s.gw.Categories(ctx)
	if err != nil {
		return nil, err
	}

	ingredients, err := s.gw.Ingredients(ctx)
	if err != nil {
		return nil, err
	}

	return &Overview{
		Products:    products,
		Categories:  categories,
		Ingredients: ingredients,
	}, nil
}

// Create adds a product to the catalog
func (s *Service) Create(ctx context.Context, req *CreateRequest) error {
	if req.Name == "" || req.Price == "" || req.Category == 0 {
		return apperrors.New(apperrors.CodeValidation, "Fill all fields")
	}
	price, err := decimal.NewFromString(req.Price)
	if err != nil || price.IsNegative() {
		return apperrors.New(apperrors.CodeValidation, "Price must be a non-negative number")
	}
	return s.gw.CreateProduct(ctx, req.Name, req.Price, req.Category)
}

// Delete removes a product from the catalog
func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return apperrors.New(apperrors.CodeValidation, "Invalid product id")
	}
	return s.gw.DeleteProduct(ctx, id)
}

// Recipes fetches a product's recipe rows
func (s *Service) Recipes(ctx context.Context, productID int64) ([]gateway.Recipe, error) {
	if productID <= 0 {
		return nil, apperrors.New(apperrors.CodeValidation, "Invalid product id")
	}
	return s.gw.ProductRecipes(ctx, productID)
}

// AddRecipe attaches an ingredient row to a product's recipe
func (s *Service) AddRecipe(ctx context.Context, productID, ingredientID int64, qtyUsed string) error {
	if productID <= 0 || ingredientID <= 0 {
		return apperrors.New(apperrors.CodeValidation, "Invalid product or ingredient id")
	}
	if _, err := decimal.NewFromString(qtyUsed); err != nil {
		return apperrors.New(apperrors.CodeValidation, "Quantity must be a number")
	}
	return s.gw.AddProductRecipe(ctx, productID, ingredientID, qtyUsed)
}

// RemoveRecipe deletes one recipe row
func (s *Service) RemoveRecipe(ctx context.Context, recipeID int64) error {
	if recipeID <= 0 {
		return apperrors.New(apperrors.CodeValidation, "Invalid recipe id")
	}
	return s.gw.DeleteRecipe(ctx, recipeID)
}
