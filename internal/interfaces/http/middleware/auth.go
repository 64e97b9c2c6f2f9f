// internal/interfaces/http/middleware/auth.go
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tazvirotechnologies-max/cafepos-terminal/internal/domain/session"
)

// SessionSource exposes the terminal's active session to route guards
type SessionSource interface {
	Session() *session.Session
}

// RequireSession ensures an operator is logged in
func RequireSession(src SessionSource) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := src.Session()
		if sess == nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Login required",
			})
			c.Abort()
			return
		}

		// Store session information in context
		c.Set("username", sess.Username)
		c.Set("is_admin", sess.IsAdmin())

		c.Next()
	}
}

// RequireAdmin ensures the logged-in operator is an admin
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		isAdmin, exists := c.Get("is_admin")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Login required",
			})
			c.Abort()
			return
		}

		if !isAdmin.(bool) {
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Admin access required",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
