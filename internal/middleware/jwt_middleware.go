package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/truestate/retail-sales-api/internal/utils"
)

// JWTMiddleware guards endpoints that require a customer session token.
type JWTMiddleware struct{}

// NewJWTMiddleware constructs a JWTMiddleware.
func NewJWTMiddleware() *JWTMiddleware {
	return &JWTMiddleware{}
}

// Handle returns a Gin middleware that validates the Bearer token and stores
// the session claims in the request context.
func (m *JWTMiddleware) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.Error(c, 401, "Missing authorization header")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			utils.Error(c, 401, "Invalid authorization header")
			c.Abort()
			return
		}

		claims, err := utils.ValidateJWT(parts[1])
		if err != nil {
			utils.Error(c, 401, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("customer_id", claims.CustomerID)
		c.Next()
	}
}
