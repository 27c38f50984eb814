package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/parafia-jawornik/parafia-go/internal/application/services"
)

// AdminAuthCookie is the HTTP-only cookie carrying the admin token
const AdminAuthCookie = "admin_auth"

// AdminAuth guards admin routes. The token is accepted from the
// Authorization header or from the admin cookie set at login.
func AdminAuth(authService *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" || !authService.ValidateToken(token) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
			return
		}
		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	if cookie, err := c.Cookie(AdminAuthCookie); err == nil {
		return cookie
	}
	return ""
}

// CurrentToken exposes the request's admin token to handlers that report
// session state without enforcing it
func CurrentToken(c *gin.Context) string {
	return extractToken(c)
}
