// internal/interfaces/http/handlers/inventory.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tazvirotechnologies-max/cafepos-terminal/internal/domain/inventory"
)

// InventoryHandler handles the admin inventory screen
type InventoryHandler struct {
	inventoryService *inventory.Service
}

// NewInventoryHandler creates a new inventory handler
func NewInventoryHandler(svc *inventory.Service) *InventoryHandler {
	return &InventoryHandler{inventoryService: svc}
}

// Overview handles GET /inventory
func (h *InventoryHandler) Overview(c *gin.Context) {
	overview, err := h.inventoryService.Load(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": overview,
	})
}

// UpdateStock handles PUT /inventory/:id/stock. The response is the
// re-loaded overview so the screen always shows server truth after a
// mutation.
func (h *InventoryHandler) UpdateStock(c *gin.Context) {
	ingredientID, err := parseID(c, "id")
	if err != nil {
		return
	}

	var req struct {
		CurrentStock string `json:"current_stock" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "current_stock is required",
		})
		return
	}

	if err := h.inventoryService.UpdateStock(c.Request.Context(), ingredientID, req.CurrentStock); err != nil {
		fail(c, err)
		return
	}

	overview, err := h.inventoryService.Load(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Stock updated",
		"data":    overview,
	})
}
