package middleware

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tellerdesk/teller_backend/internal/core/domain"
)

// RequireRoles creates a Gin middleware handler that rejects principals whose
// role is outside the given set. It must run after AuthMiddleware.
func RequireRoles(roles ...domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := GetPrincipalFromContext(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Access denied. No token provided."})
			return
		}

		if !principal.HasAnyRole(roles...) {
			GetLoggerFromCtx(c.Request.Context()).Warn("Role check failed",
				slog.String("role", string(principal.Role)),
			)
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access denied. Insufficient role."})
			return
		}

		c.Next()
	}
}
