// internal/interfaces/http/handlers/auth.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tazvirotechnologies-max/cafepos-terminal/internal/terminal"
)

// AuthHandler handles operator login, logout and session restore
type AuthHandler struct {
	terminal *terminal.Terminal
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(t *terminal.Terminal) *AuthHandler {
	return &AuthHandler{terminal: t}
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Username and password are required",
		})
		return
	}

	sess, page, err := h.terminal.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"data": gin.H{
			"username": sess.Username,
			"role":     sess.Role,
			"page":     page,
		},
	})
}

// Logout handles POST /auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	h.terminal.Logout()

	c.JSON(http.StatusOK, gin.H{
		"message": "Logged out",
	})
}

// Session handles GET /auth/session. It reports the restored or active
// session so the shell knows which screen to boot into; logged out is not
// an error.
func (h *AuthHandler) Session(c *gin.Context) {
	sess := h.terminal.Session()
	if sess == nil {
		c.JSON(http.StatusOK, gin.H{
			"data": gin.H{
				"logged_in": false,
				"page":      "login",
			},
		})
		return
	}

	page, err := h.terminal.Navigate("")
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"logged_in": true,
			"username":  sess.Username,
			"role":      sess.Role,
			"page":      page,
		},
	})
}
