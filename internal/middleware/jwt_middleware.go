package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/NetindoGit/netindo_api/internal/utils"
)

// JWTMiddleware guards the authenticated API surface. Every protected route
// requires a bearer token issued at login; the resolved identity is placed on
// the gin context for handlers and the request logger.
type JWTMiddleware struct{}

func NewJWTMiddleware() *JWTMiddleware {
	return &JWTMiddleware{}
}

// Handle validates the Authorization header and populates user_id and email
// on the request context.
func (m *JWTMiddleware) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !ok || raw == "" {
			utils.Error(c, 401, "UNAUTHORIZED", "Missing or malformed authorization header")
			c.Abort()
			return
		}

		claims, err := utils.ValidateJWT(raw)
		if err != nil {
			utils.Error(c, 401, "INVALID_TOKEN", "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("email", claims.Email)
		c.Next()
	}
}
