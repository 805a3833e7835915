package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/uspireit-code/uspire-ledger/internal/core/domain"
)

const authCtxKey = contextKey("authContext")

// WithAuthContext returns a context carrying the resolved caller identity.
func WithAuthContext(ctx context.Context, authCtx domain.AuthContext) context.Context {
	return context.WithValue(ctx, authCtxKey, authCtx)
}

// GetAuthContext retrieves the resolved AuthContext from the Gin context.
// The boolean is false when the auth middleware did not run.
func GetAuthContext(c *gin.Context) (domain.AuthContext, bool) {
	authCtx, ok := c.Request.Context().Value(authCtxKey).(domain.AuthContext)
	return authCtx, ok
}
