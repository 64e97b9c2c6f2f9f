// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/tazvirotechnologies-max/cafepos-terminal/internal/config"
	"github.com/tazvirotechnologies-max/cafepos-terminal/internal/domain/history"
	"github.com/tazvirotechnologies-max/cafepos-terminal/internal/domain/inventory"
	"github.com/tazvirotechnologies-max/cafepos-terminal/internal/domain/products"
	"github.com/tazvirotechnologies-max/cafepos-terminal/internal/domain/reports"
	"github.com/tazvirotechnologies-max/cafepos-terminal/internal/domain/staff"
	"github.com/tazvirotechnologies-max/cafepos-terminal/internal/gateway"
	"github.com/tazvirotechnologies-max/cafepos-terminal/internal/interfaces/http/handlers"
	"github.com/tazvirotechnologies-max/cafepos-terminal/internal/interfaces/http/middleware"
	"github.com/tazvirotechnologies-max/cafepos-terminal/internal/pkg/receipt"
	"github.com/tazvirotechnologies-max/cafepos-terminal/internal/terminal"
)

// SetupRoutes wires every shell-facing endpoint. The route tree mirrors the
// navigation model: public auth, staff screens behind a session, admin
// screens behind the admin role on top of that.
func SetupRoutes(rg *gin.RouterGroup, term *terminal.Terminal, gw *gateway.Client, cfg *config.Config) {
	authHandler := handlers.NewAuthHandler(term)
	navHandler := handlers.NewNavHandler(term)
	catalogHandler := handlers.NewCatalogHandler(term)
	cartHandler := handlers.NewCartHandler(term)
	paymentHandler := handlers.NewPaymentHandler(term)
	historySvc := history.NewService(gw)
	printHandler := handlers.NewPrintHandler(term, receipt.NewService(cfg), historySvc)
	historyHandler := handlers.NewHistoryHandler(historySvc)
	reportsHandler := handlers.NewReportsHandler(reports.NewService(gw))
	inventoryHandler := handlers.NewInventoryHandler(inventory.NewService(gw))
	productsHandler := handlers.NewProductsHandler(products.NewService(gw))
	staffHandler := handlers.NewStaffHandler(staff.NewService(gw))

	// Public auth endpoints
	auth := rg.Group("/auth")
	{
		auth.POST("/login", authHandler.Login)
		auth.POST("/logout", authHandler.Logout)
		auth.GET("/session", authHandler.Session)
	}

	// Everything below needs a logged-in operator
	protected := rg.Group("")
	protected.Use(middleware.RequireSession(term))
	{
		protected.GET("/nav", navHandler.Resolve)

		// POS screen
		protected.GET("/catalog", catalogHandler.Load)
		protected.GET("/catalog/cached", catalogHandler.Cached)

		cart := protected.Group("/cart")
		{
			cart.GET("", cartHandler.Get)
			cart.DELETE("", cartHandler.Clear)
			cart.POST("/items", cartHandler.AddItem)
			cart.POST("/items/:id/increment", cartHandler.IncrementItem)
			cart.POST("/items/:id/decrement", cartHandler.DecrementItem)
			cart.DELETE("/items/:id", cartHandler.RemoveItem)
		}

		payment := protected.Group("/payment")
		{
			payment.GET("", paymentHandler.State)
			payment.POST("/open", paymentHandler.Open)
			payment.POST("/method", paymentHandler.ChooseMethod)
			payment.POST("/cash", paymentHandler.EnterCash)
			payment.POST("/cancel", paymentHandler.Cancel)
			payment.POST("/confirm", paymentHandler.Confirm)
		}

		protected.GET("/receipt", paymentHandler.Receipt)
		protected.GET("/receipt/pdf", printHandler.ReceiptPDF)
		protected.POST("/receipt/new-bill", paymentHandler.NewBill)

		// Bill history (staff history screen and admin bills screen)
		protected.GET("/history", historyHandler.List)
		protected.GET("/history/:id", historyHandler.Detail)
		protected.GET("/history/:id/pdf", printHandler.BillPDF)

		// Admin screens
		admin := protected.Group("")
		admin.Use(middleware.RequireAdmin())
		{
			admin.GET("/reports/dashboard", reportsHandler.Dashboard)
			admin.GET("/reports/today", reportsHandler.Today)
			admin.GET("/reports/items", reportsHandler.Items)
			admin.GET("/reports/range", reportsHandler.DateRange)

			admin.GET("/inventory", inventoryHandler.Overview)
			admin.PUT("/inventory/:id/stock", inventoryHandler.UpdateStock)

			admin.GET("/products", productsHandler.Overview)
			admin.POST("/products", productsHandler.Create)
			admin.DELETE("/products/:id", productsHandler.Delete)
			admin.GET("/products/:id/recipes", productsHandler.Recipes)
			admin.POST("/products/:id/recipes", productsHandler.AddRecipe)
			admin.DELETE("/recipes/:id", productsHandler.DeleteRecipe)

			admin.GET("/staff", staffHandler.List)
			admin.POST("/staff", staffHandler.Create)
			admin.POST("/staff/:id/toggle", staffHandler.ToggleActive)
			admin.DELETE("/staff/:id", staffHandler.Delete)
		}
	}
}
