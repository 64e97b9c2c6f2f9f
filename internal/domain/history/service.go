// internal/domain/history/service.go
package history

import (
	"context"

	"github.com/tazvirotechnologies-max/cafepos-terminal/internal/gateway"
	"github.com/tazvirotechnologies-max/cafepos-terminal/internal/pkg/apperrors"
)

// Fetcher is the slice of the back-office client bill history needs
type Fetcher interface {
	BillHistory(ctx context.Context, filter gateway.HistoryFilter) ([]gateway.Bill, error)
	BillDetail(ctx context.Context, id int64) (*gateway.Bill, error)
}

// Service lists past bills for the staff history screen and the admin bills
// screen. It holds no state; every listing re-reads the server.
type Service struct {
	gw Fetcher
}

// NewService creates a new bill history service
func NewService(gw Fetcher) *Service {
	return &Service{gw: gw}
}

// List fetches bills matching the filter. A date range needs both ends;
// today-only wins over a range, matching the source screen's precedence.
func (s *Service) List(ctx context.Context, filter gateway.HistoryFilter) ([]gateway.Bill, error) {
	if !filter.Today {
		if (filter.From == "") != (filter.To == "") {
			return nil, apperrors.New(apperrors.CodeValidation, "Select both dates")
		}
	}
	return s.gw.BillHistory(ctx, filter)
}

// Detail fetches one bill's full detail
func (s *Service) Detail(ctx context.Context, id int64) (*gateway.Bill, error) {
	if id <= 0 {
		return nil, apperrors.New(apperrors.CodeValidation, "Invalid bill id")
	}
	return s.gw.BillDetail(ctx, id)
}
