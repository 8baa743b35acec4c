package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/baula-dev/baula-sync/internal/models"
	appErrors "github.com/baula-dev/baula-sync/pkg/errors"
	"github.com/baula-dev/baula-sync/pkg/response"
)

// AdminOnly rejects requests whose token does not carry the admin role.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		claimsValue, exists := c.Get(ContextUserKey)
		if !exists {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}
		claims, ok := claimsValue.(*models.JWTClaims)
		if !ok || !claims.IsAdmin() {
			response.Error(c, appErrors.ErrForbidden)
			c.Abort()
			return
		}
		c.Next()
	}
}
