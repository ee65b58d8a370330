package middleware

import (
	"net/http"                       // HTTP status codes
	"storefront/internal/repository" // User lookups

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging
)

// RequireRole checks the user's role from the database on each request, so a
// demoted user loses access before their token expires
func RequireRole(users *repository.UserRepository, roleName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := UserID(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		required, err := users.RoleByName(c.Request.Context(), roleName) // Level of the required role
		if err != nil {
			logrus.WithFields(logrus.Fields{"role": roleName, "error": err.Error()}).Error("Role lookup failed")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}
		user, err := users.FindByID(c.Request.Context(), userID) // Current role, not the token's
		if err != nil || user.Role.Level < required.Level {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": roleName + " access required"})
			return
		}
		c.Next() // Proceed to the next handler
	}
}
