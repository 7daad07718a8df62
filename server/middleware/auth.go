package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/fetchkit/auth/authctx"
	"github.com/kbukum/fetchkit/observability"
)

// ClaimsKey is the gin context key holding the validated claims.
const ClaimsKey = "claims"

// TokenValidator validates a bearer token and returns its claims.
type TokenValidator func(token string) (any, error)

// Auth returns a Gin middleware that requires "Authorization: Bearer <token>".
// Validated claims are stored under ClaimsKey and in the request context
// (authctx), and the token subject is recorded on the active span. Missing
// or invalid tokens are answered with 401.
func Auth(validate TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Authorization header required",
			})
			return
		}

		token, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid authorization header format",
			})
			return
		}

		claims, err := validate(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid token",
			})
			return
		}

		ctx := authctx.With(c.Request.Context(), claims)
		if sub := authctx.Subject(ctx); sub != "" {
			trace.SpanFromContext(ctx).SetAttributes(attribute.String(observability.AttrEndUser, sub))
		}
		c.Set(ClaimsKey, claims)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
