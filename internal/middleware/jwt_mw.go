package middleware

import (
	"net/http"
	"strings"

	"safety_reports/internal/utils"

	"github.com/gin-gonic/gin"
)

const (
	AuthUserKey = "authUser"
	AuthDemoKey = "authDemo"
)

// JWTAuthMiddleware gates protected routes on a valid bearer token. The
// Authorization header may carry "Bearer <token>" or a bare token; either
// way the decoded user identity is placed in the request context before the
// handler runs. The guard never checks resource ownership.
func JWTAuthMiddleware(jwtUtil *utils.JWTUtil) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")

		tokenString := authHeader
		if strings.HasPrefix(authHeader, "Bearer ") {
			tokenString = strings.TrimPrefix(authHeader, "Bearer ")
		}

		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Access token is missing"})
			return
		}

		claims, err := jwtUtil.ValidateToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid or expired token"})
			return
		}

		c.Set(AuthUserKey, claims.UserID)
		c.Set(AuthDemoKey, claims.Demo)

		c.Next()
	}
}
