// internal/interfaces/http/handlers/history.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tazvirotechnologies-max/cafepos-terminal/internal/domain/history"
	"github.com/tazvirotechnologies-max/cafepos-terminal/internal/gateway"
)

// HistoryHandler serves past bills
type HistoryHandler struct {
	historyService *history.Service
}

// NewHistoryHandler creates a new history handler
func NewHistoryHandler(svc *history.Service) *HistoryHandler {
	return &HistoryHandler{historyService: svc}
}

// List handles GET /history. Without query parameters it shows today's
// bills; from/to select a date range.
func (h *HistoryHandler) List(c *gin.Context) {
	filter := gateway.HistoryFilter{
		From:  c.Query("from"),
		To:    c.Query("to"),
		Today: c.Query("from") == "" && c.Query("to") == "",
	}

	bills, err := h.historyService.List(c.Request.Context(), filter)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": bills,
	})
}

// Detail handles GET /history/:id
func (h *HistoryHandler) Detail(c *gin.Context) {
	billID, err := parseID(c, "id")
	if err != nil {
		return
	}

	bill, err := h.historyService.Detail(c.Request.Context(), billID)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": bill,
	})
}
