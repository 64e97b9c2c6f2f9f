// internal/interfaces/http/handlers/respond.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/tazvirotechnologies-max/cafepos-terminal/internal/pkg/apperrors"
)

// fail writes the error envelope the shell renders. The status comes from
// the error's code; uncoded errors fall through to 500.
func fail(c *gin.Context, err error) {
	c.JSON(apperrors.HTTPStatus(err), gin.H{
		"error": apperrors.MessageOf(err),
		"code":  string(apperrors.CodeOf(err)),
	})
}
