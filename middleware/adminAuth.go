package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// AdminOnly gates a route on the configured identity-provider subject id
// allow-list. It must run after FirebaseAuthMiddleware.
func AdminOnly(allowed map[string]struct{}) gin.HandlerFunc {
	return func(c *gin.Context) {
		uidVal, exists := c.Get(ContextUID)
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}
		uid, ok := uidVal.(string)
		if !ok || uid == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}

		if _, ok := allowed[uid]; !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}

		c.Set("isAdmin", true)
		c.Next()
	}
}
