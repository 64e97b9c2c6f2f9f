// internal/interfaces/http/handlers/cart.go
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/tazvirotechnologies-max/cafepos-terminal/internal/terminal"
)

// CartHandler handles the bill being built at the counter
type CartHandler struct {
	terminal *terminal.Terminal
}

// NewCartHandler creates a new cart handler
func NewCartHandler(t *terminal.Terminal) *CartHandler {
	return &CartHandler{terminal: t}
}

// Get handles GET /cart
func (h *CartHandler) Get(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"data": h.terminal.Cart(),
	})
}

// AddItem handles POST /cart/items
func (h *CartHandler) AddItem(c *gin.Context) {
	var req struct {
		ProductID int64 `json:"product_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "product_id is required",
		})
		return
	}

	if err := h.terminal.AddToCart(req.ProductID); err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Item added",
		"data":    h.terminal.Cart(),
	})
}

// IncrementItem handles POST /cart/items/:id/increment
func (h *CartHandler) IncrementItem(c *gin.Context) {
	productID, err := parseID(c, "id")
	if err != nil {
		return
	}

	if err := h.terminal.IncrementLine(productID); err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": h.terminal.Cart(),
	})
}

// DecrementItem handles POST /cart/items/:id/decrement
func (h *CartHandler) DecrementItem(c *gin.Context) {
	productID, err := parseID(c, "id")
	if err != nil {
		return
	}

	if err := h.terminal.DecrementLine(productID); err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": h.terminal.Cart(),
	})
}

// RemoveItem handles DELETE /cart/items/:id
func (h *CartHandler) RemoveItem(c *gin.Context) {
	productID, err := parseID(c, "id")
	if err != nil {
		return
	}

	if err := h.terminal.RemoveLine(productID); err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": h.terminal.Cart(),
	})
}

// Clear handles DELETE /cart
func (h *CartHandler) Clear(c *gin.Context) {
	if err := h.terminal.ClearCart(); err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart cleared",
		"data":    h.terminal.Cart(),
	})
}

// parseID pulls a positive int64 path parameter, writing the error response
// itself on failure
func parseID(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid " + name,
		})
		if err == nil {
			err = strconv.ErrRange
		}
		return 0, err
	}
	return id, nil
}
