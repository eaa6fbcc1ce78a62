package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cleopatra/internal/models"
)

// AuthGuard aborts anonymous requests with 401 and, when roles are given,
// authenticated requests whose role matches none of them with 403.
func AuthGuard(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := UserID(c); !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		if len(allowedRoles) > 0 {
			role := UserRole(c)
			match := false
			for _, r := range allowedRoles {
				if role == r {
					match = true
					break
				}
			}
			if !match {
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
				return
			}
		}

		c.Next()
	}
}

func RequireAuth() gin.HandlerFunc {
	return AuthGuard()
}

func RequireAdmin() gin.HandlerFunc {
	return AuthGuard(models.RoleAdmin)
}

func RequireStaff() gin.HandlerFunc {
	return AuthGuard(models.RoleStaff, models.RoleAdmin)
}
