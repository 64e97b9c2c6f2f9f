// internal/interfaces/http/handlers/nav.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tazvirotechnologies-max/cafepos-terminal/internal/nav"
	"github.com/tazvirotechnologies-max/cafepos-terminal/internal/terminal"
)

// NavHandler resolves requested pages against the active session
type NavHandler struct {
	terminal *terminal.Terminal
}

// NewNavHandler creates a new navigation handler
func NewNavHandler(t *terminal.Terminal) *NavHandler {
	return &NavHandler{terminal: t}
}

// Resolve handles GET /nav. The shell passes the page it wants; the
// response says which page it actually gets. A request outside the
// operator's role falls back to that role's landing page rather than
// erroring.
func (h *NavHandler) Resolve(c *gin.Context) {
	requested := nav.Page(c.Query("page"))

	page, err := h.terminal.Navigate(requested)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"page": page,
		},
	})
}
