package api

import (
	"net/http"                    // HTTP status codes
	"storefront/internal/service" // Business logic
	"storefront/internal/utils"   // Pagination helpers
	"strconv"                     // String conversion

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// defaultLowStock is the stock level under which a product counts as low
const defaultLowStock = 5

// RoleRequest changes a user's role
type RoleRequest struct {
	Role string `json:"role" binding:"required"` // Target role name
}

// StatsHandler returns record counts for the admin dashboard
func StatsHandler(admin *service.AdminService) gin.HandlerFunc {
	return func(c *gin.Context) {
		threshold := defaultLowStock
		if v, err := strconv.Atoi(c.Query("lowStock")); err == nil && v >= 0 {
			threshold = v
		}
		stats, err := admin.Stats(c.Request.Context(), threshold)
		if err != nil {
			respondError(c, err, "load stats")
			return
		}
		c.JSON(http.StatusOK, stats)
	}
}

// ListUsersHandler returns a page of users with their roles and profiles
func ListUsersHandler(admin *service.AdminService) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, limit := utils.ParsePage(c.Query("page"), c.Query("limit"), 20)
		users, err := admin.ListUsers(c.Request.Context(), page, limit)
		if err != nil {
			respondError(c, err, "list users")
			return
		}
		c.JSON(http.StatusOK, users)
	}
}

// SetUserRoleHandler moves a user to another role
func SetUserRoleHandler(admin *service.AdminService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c, "id")
		if !ok {
			return
		}
		var req RoleRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			bindError(c, err)
			return
		}
		user, err := admin.SetRole(c.Request.Context(), id, req.Role)
		if err != nil {
			respondError(c, err, "set user role")
			return
		}
		logrus.WithFields(logrus.Fields{
			"user_id": id,
			"role":    user.Role.Name,
			"by":      c.GetUint("userID"),
		}).Info("User role changed")
		c.JSON(http.StatusOK, user)
	}
}
