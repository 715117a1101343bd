package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	jwtsvc "juniorpass/internal/pkg/jwt"
)

// TokenRevoker reports whether a token id was blacklisted at logout.
type TokenRevoker interface {
	IsRevoked(ctx context.Context, tokenID string) bool
}

// Auth validates the bearer token and loads user_id and role into the
// request context. A revoked token id is rejected the same way as an
// invalid one.
func Auth(jwt *jwtsvc.Service, revoker TokenRevoker) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			abortUnauthorized(c, "Authentication required")
			return
		}

		claims, err := jwt.ValidateToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			abortUnauthorized(c, "Invalid or expired token")
			return
		}

		if revoker != nil && revoker.IsRevoked(c.Request.Context(), claims.ID) {
			abortUnauthorized(c, "Token has been revoked")
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("role", claims.Role)
		c.Set("token_id", claims.ID)
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"error":   gin.H{"code": "UNAUTHORIZED", "message": message},
	})
}
