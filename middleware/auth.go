package middleware

import (
	"net/http"
	"strings"

	"eventbook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UserIDKey is the gin context key holding the authenticated user's id.
const UserIDKey = "userID"

// JWTAuthMiddleware requires a valid bearer token and stores its subject under
// UserIDKey.
func JWTAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))

		userID, err := utils.ExtractIDFromToken(tokenString)
		if err != nil {
			zap.L().Debug("Rejected bearer token", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		c.Set(UserIDKey, userID)
		c.Next()
	}
}
