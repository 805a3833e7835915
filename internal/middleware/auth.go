package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/uspireit-code/uspire-ledger/internal/core/domain"
)

// LedgerClaims are the JWT claims the upstream identity service issues for
// this core: the resolved tenant and permission codes ride alongside the
// standard subject (user id).
type LedgerClaims struct {
	TenantID        string   `json:"tenantId"`
	PermissionCodes []string `json:"permissionCodes"`
	jwt.RegisteredClaims
}

// AuthContextMiddleware validates the bearer token and stores the resolved
// AuthContext in the request context. The core never resolves users or
// permissions itself; it trusts what the token carries.
func AuthContextMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			logger.Warn("Authorization header missing")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			logger.Warn("Authorization header format invalid")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header format must be Bearer {token}"})
			return
		}

		token, err := jwt.ParseWithClaims(parts[1], &LedgerClaims{}, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return []byte(jwtSecret), nil
		})
		if err != nil {
			logger.Warn("Invalid token", "error", err)
			msg := "Invalid token"
			if errors.Is(err, jwt.ErrTokenExpired) {
				msg = "Token has expired"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
			return
		}

		claims, ok := token.Claims.(*LedgerClaims)
		if !ok || !token.Valid || claims.Subject == "" || claims.TenantID == "" {
			logger.Warn("Token claims missing subject or tenant")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims"})
			return
		}

		authCtx := domain.AuthContext{
			TenantID:        claims.TenantID,
			UserID:          claims.Subject,
			PermissionCodes: claims.PermissionCodes,
		}

		enrichedLogger := logger.With(
			slog.String("tenant_id", authCtx.TenantID),
			slog.String("user_id", authCtx.UserID),
		)
		ctx := WithLogger(c.Request.Context(), enrichedLogger)
		ctx = WithAuthContext(ctx, authCtx)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
