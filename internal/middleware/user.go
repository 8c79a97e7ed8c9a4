package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequireUser resolves the caller identity from the X-User-ID header set by
// the auth proxy in front of this service.
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetHeader("X-User-ID")
		if userID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
			c.Abort()
			return
		}
		c.Set("user_id", userID)
		c.Next()
	}
}
