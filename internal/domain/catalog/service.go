// internal/domain/catalog/service.go
package catalog

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/tazvirotechnologies-max/cafepos-terminal/internal/gateway"
	"github.com/tazvirotechnologies-max/cafepos-terminal/internal/pkg/money"
)

// Fetcher is the slice of the back-office client the catalog needs
type Fetcher interface {
	Products(ctx context.Context) ([]gateway.Product, error)
	LowStock(ctx context.Context) ([]gateway.Ingredient, error)
}

// Service loads the sellable catalog for the POS screen
type Service struct {
	gw     Fetcher
	logger *logrus.Logger
}

// NewService creates a new catalog service
func NewService(gw Fetcher, logger *logrus.Logger) *Service {
	return &Service{
		gw:     gw,
		logger: logger,
	}
}

// Load fetches products and the unavailable set in one operation. Each
// navigation to the POS screen re-loads from the source of truth; nothing is
// cached across screens. A failed fetch surfaces as a LoadError and the
// caller keeps its previous (possibly empty) catalog.
func (s *Service) Load(ctx context.Context) (*Catalog, error) {
	wireProducts, err := s.gw.Products(ctx)
	if err != nil {
		return nil, err
	}

	lowStock, err := s.gw.LowStock(ctx)
	if err != nil {
		return nil, err
	}

	products := make([]Product, len(wireProducts))
	for i, wp := range wireProducts {
		products[i] = Product{
			ID:       wp.ID,
			Name:     wp.Name,
			Price:    money.ToPaise(wp.Price),
			Category: wp.Category,
		}
	}

	unavailable := make([]int64, len(lowStock))
	for i, item := range lowStock {
		unavailable[i] = item.ID
	}

	s.logger.WithFields(logrus.Fields{
		"products":    len(products),
		"unavailable": len(unavailable),
	}).Debug("Catalog loaded")

	return NewCatalog(products, unavailable), nil
}
