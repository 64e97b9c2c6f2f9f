// internal/interfaces/http/handlers/reports.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tazvirotechnologies-max/cafepos-terminal/internal/domain/reports"
)

// ReportsHandler serves sales reports for the admin screens
type ReportsHandler struct {
	reportsService *reports.Service
}

// NewReportsHandler creates a new reports handler
func NewReportsHandler(svc *reports.Service) *ReportsHandler {
	return &ReportsHandler{reportsService: svc}
}

// Dashboard handles GET /reports/dashboard
func (h *ReportsHandler) Dashboard(c *gin.Context) {
	dashboard, err := h.reportsService.Dashboard(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": dashboard,
	})
}

// Today handles GET /reports/today
func (h *ReportsHandler) Today(c *gin.Context) {
	summary, err := h.reportsService.Today(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": summary,
	})
}

// Items handles GET /reports/items
func (h *ReportsHandler) Items(c *gin.Context) {
	items, err := h.reportsService.Items(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": items,
	})
}

// DateRange handles GET /reports/range?from=...&to=...
func (h *ReportsHandler) DateRange(c *gin.Context) {
	summary, err := h.reportsService.DateRange(c.Request.Context(), c.Query("from"), c.Query("to"))
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": summary,
	})
}
