// internal/domain/inventory/service.go
package inventory

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/tazvirotechnologies-max/cafepos-terminal/internal/gateway"
	"github.com/tazvirotechnologies-max/cafepos-terminal/internal/pkg/apperrors"
)

// Fetcher is the slice of the back-office client inventory needs
type Fetcher interface {
	Ingredients(ctx context.Context) ([]gateway.Ingredient, error)
	LowStock(ctx context.Context) ([]gateway.Ingredient, error)
	UpdateIngredientStock(ctx context.Context, id int64, currentStock string) error
}

// Overview is the inventory screen's data: all ingredients plus the set
// currently below their threshold.
type Overview struct {
	Ingredients []gateway.Ingredient `json:"ingredients"`
	LowStockIDs []int64              `json:"low_stock_ids"`
}

// Service manages ingredient stock through the back office
type Service struct {
	gw Fetcher
}

// NewService creates a new inventory service
func NewService(gw Fetcher) *Service {
	return &Service{gw: gw}
}

// Load fetches the ingredient list and the low-stock set
func (s *Service) Load(ctx context.Context) (*Overview, error) {
	ingredients, err := s.gw.Ingredients(ctx)
	if err != nil {
		return nil, err
	}

	lowStock, err := s.gw.LowStock(ctx)
	if err != nil {
		return nil, err
	}

	ids := make([]int64, len(lowStock))
	for i, item := range lowStock {
		ids[i] = item.ID
	}

	return &Overview{Ingredients: ingredients, LowStockIDs: ids}, nil
}

// UpdateStock sets an ingredient's stock level, then the caller re-loads
// from the source of truth (mutate-then-refresh).
func (s *Service) UpdateStock(ctx context.Context, id int64, currentStock string) error {
	if id <= 0 {
		return apperrors.New(apperrors.CodeValidation, "Invalid ingredient id")
	}
	if _, err := decimal.NewFromString(currentStock); err != nil {
		return apperrors.New(apperrors.CodeValidation, "Stock must be a number")
	}
	return s.gw.UpdateIngredientStock(ctx, id, currentStock)
}
