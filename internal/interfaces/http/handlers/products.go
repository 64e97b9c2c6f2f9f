// internal/interfaces/http/handlers/products.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tazvirotechnologies-max/cafepos-terminal/internal/domain/products"
)

// ProductsHandler handles the admin product management screen
type ProductsHandler struct {
	productsService *products.Service
}

// NewProductsHandler creates a new product management handler
func NewProductsHandler(svc *products.Service) *ProductsHandler {
	return &ProductsHandler{productsService: svc}
}

// Overview handles GET /products
func (h *ProductsHandler) Overview(c *gin.Context) {
	overview, err := h.productsService.Load(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": overview,
	})
}

// Create handles POST /products
func (h *ProductsHandler) Create(c *gin.Context) {
	var req products.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request data",
		})
		return
	}

	if err := h.productsService.Create(c.Request.Context(), &req); err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Product created",
	})
}

// Delete handles DELETE /products/:id
func (h *ProductsHandler) Delete(c *gin.Context) {
	productID, err := parseID(c, "id")
	if err != nil {
		return
	}

	if err := h.productsService.Delete(c.Request.Context(), productID); err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Product deleted",
	})
}

// Recipes handles GET /products/:id/recipes
func (h *ProductsHandler) Recipes(c *gin.Context) {
	productID, err := parseID(c, "id")
	if err != nil {
		return
	}

	recipes, err := h.productsService.Recipes(c.Request.Context(), productID)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": recipes,
	})
}

// AddRecipe handles POST /products/:id/recipes
func (h *ProductsHandler) AddRecipe(c *gin.Context) {
	productID, err := parseID(c, "id")
	if err != nil {
		return
	}

	var req struct {
		IngredientID int64  `json:"ingredient_id" binding:"required"`
		QtyUsed      string `json:"qty_used" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "ingredient_id and qty_used are required",
		})
		return
	}

	if err := h.productsService.AddRecipe(c.Request.Context(), productID, req.IngredientID, req.QtyUsed); err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Recipe added",
	})
}

// DeleteRecipe handles DELETE /recipes/:id
func (h *ProductsHandler) DeleteRecipe(c *gin.Context) {
	recipeID, err := parseID(c, "id")
	if err != nil {
		return
	}

	if err := h.productsService.RemoveRecipe(c.Request.Context(), recipeID); err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Recipe removed",
	})
}
