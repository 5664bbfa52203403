package middleware

import (
	"context"
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/tellerdesk/teller_backend/internal/core/domain"
)

// contextKey is a private type for context keys defined by this package.
// Using a custom type prevents collisions.
type contextKey string

const (
	loggerCtxKey    = contextKey("logger")
	principalCtxKey = contextKey("principal")
)

// GetLoggerFromCtx retrieves the request-scoped logger from a standard
// context. It returns the default logger if none is present, which only
// happens when the logging middleware was not applied.
func GetLoggerFromCtx(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerCtxKey).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}

// GetPrincipalFromContext retrieves the authenticated principal placed in the
// request context by AuthMiddleware. The boolean reports whether it was found.
func GetPrincipalFromContext(c *gin.Context) (domain.Principal, bool) {
	principal, ok := c.Request.Context().Value(principalCtxKey).(domain.Principal)
	return principal, ok
}
