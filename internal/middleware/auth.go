package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	portssvc "github.com/tellerdesk/teller_backend/internal/core/ports/services"
)

// AuthMiddleware creates a Gin middleware handler that authenticates requests
// with the token service. A missing or malformed header is 401; a present but
// invalid or expired token is 403. The ordering matters: authentication runs
// before any role or ownership check so failures never leak whether a
// resource exists.
func AuthMiddleware(tokenSvc portssvc.TokenSvcFacade) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			logger.Warn("Authorization header missing")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Access denied. No token provided."})
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			logger.Warn("Authorization header format invalid")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header format must be Bearer {token}"})
			return
		}

		principal, err := tokenSvc.VerifyToken(parts[1])
		if err != nil {
			msg := "Invalid or expired token"
			if errors.Is(err, jwt.ErrTokenExpired) {
				msg = "Token has expired"
			}
			logger.Warn("Token verification failed", slog.String("error", err.Error()))
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": msg})
			return
		}

		// Store the principal and an enriched logger in the request context.
		enrichedLogger := logger.With(slog.String("user_id", principal.UserID), slog.String("role", string(principal.Role)))
		ctx := context.WithValue(c.Request.Context(), principalCtxKey, *principal)
		ctx = context.WithValue(ctx, loggerCtxKey, enrichedLogger)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
