package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// IsDemo reports whether the authenticated identity carries the demo flag
func IsDemo(c *gin.Context) bool {
	demoVal, exists := c.Get(AuthDemoKey)
	if !exists {
		return false
	}
	demo, ok := demoVal.(bool)
	return ok && demo
}

// RejectDemoMiddleware blocks mutating routes for demo identities. It must
// run after JWTAuthMiddleware.
func RejectDemoMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if IsDemo(c) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Demo accounts cannot modify data"})
			return
		}
		c.Next()
	}
}
