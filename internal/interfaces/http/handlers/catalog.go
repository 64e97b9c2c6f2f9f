// internal/interfaces/http/handlers/catalog.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tazvirotechnologies-max/cafepos-terminal/internal/domain/catalog"
	"github.com/tazvirotechnologies-max/cafepos-terminal/internal/terminal"
)

// CatalogHandler serves the sellable product catalog to the POS screen
type CatalogHandler struct {
	terminal *terminal.Terminal
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(t *terminal.Terminal) *CatalogHandler {
	return &CatalogHandler{terminal: t}
}

// productView is a catalog entry with its availability resolved
type productView struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Category  int64  `json:"category"`
	Available bool   `json:"available"`
}

// Load handles GET /catalog. Every call fetches fresh products and
// availability, matching the POS screen's load-on-entry behavior.
func (h *CatalogHandler) Load(c *gin.Context) {
	loaded, err := h.terminal.LoadCatalog(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Catalog loaded",
		"data":    toProductViews(loaded),
	})
}

// Cached handles GET /catalog/cached, returning the last loaded snapshot
// without a network round trip
func (h *CatalogHandler) Cached(c *gin.Context) {
	loaded := h.terminal.Catalog()
	if loaded == nil {
		c.JSON(http.StatusOK, gin.H{
			"data": []productView{},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": toProductViews(loaded),
	})
}

func toProductViews(loaded *catalog.Catalog) []productView {
	products := loaded.Products()
	views := make([]productView, len(products))
	for i, p := range products {
		views[i] = productView{
			ID:        p.ID,
			Name:      p.Name,
			Price:     p.Price,
			Category:  p.Category,
			Available: loaded.Available(p.ID),
		}
	}
	return views
}
