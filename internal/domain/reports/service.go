// internal/domain/reports/service.go
package reports

import (
	"context"

	"github.com/tazvirotechnologies-max/cafepos-terminal/internal/gateway"
	"github.com/tazvirotechnologies-max/cafepos-terminal/internal/pkg/apperrors"
)

// Fetcher is the slice of the back-office client reporting needs
type Fetcher interface {
	ReportToday(ctx context.Context) (*gateway.SalesSummary, error)
	ReportItems(ctx context.Context) ([]gateway.ItemSales, error)
	ReportDateRange(ctx context.Context, from, to string) (*gateway.SalesSummary, error)
}

// Dashboard is the admin landing page's data set
type Dashboard struct {
	Today    *gateway.SalesSummary `json:"today"`
	TopItems []gateway.ItemSales   `json:"top_items"`
}

// Service fetches sales reports for the admin screens
type Service struct {
	gw Fetcher
}

// NewService creates a new reports service
func NewService(gw Fetcher) *Service {
	return &Service{gw: gw}
}

// Dashboard fetches today's summary and item-wise sales together
func (s *Service) Dashboard(ctx context.Context) (*Dashboard, error) {
	today, err := s.gw.ReportToday(ctx)
	if err != nil {
		return nil, err
	}

	items, err := s.gw.ReportItems(ctx)
	if err != nil {
		return nil, err
	}

	return &Dashboard{Today: today, TopItems: items}, nil
}

// Today fetches today's sales summary
func (s *Service) Today(ctx context.Context) (*gateway.SalesSummary, error) {
	return s.gw.ReportToday(ctx)
}

// Items fetches item-wise sales
func (s *Service) Items(ctx context.Context) ([]gateway.ItemSales, error) {
	return s.gw.ReportItems(ctx)
}

// DateRange fetches a sales summary between two dates; both are required
func (s *Service) DateRange(ctx context.Context, from, to string) (*gateway.SalesSummary, error) {
	if from == "" || to == "" {
		return nil, apperrors.New(apperrors.CodeValidation, "Select both dates")
	}
	return s.gw.ReportDateRange(ctx, from, to)
}
