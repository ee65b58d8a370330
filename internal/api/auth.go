package api

import (
	"net/http"                       // HTTP status codes
	"storefront/internal/middleware" // Session accessors
	"storefront/internal/service"    // Business logic

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
)

// LoginRequest is the credentials provider's input
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`    // Email must be provided
	Password string `json:"password" binding:"required"` // Password must be provided
}

// SessionUser is the user part of a session response
type SessionUser struct {
	ID        uint   `json:"id"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	RoleLevel int    `json:"roleLevel"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// RegisterHandler creates an account with the default role
func RegisterHandler(auth *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.RegisterInput
		if err := c.ShouldBindJSON(&req); err != nil {
			bindError(c, err)
			return
		}
		user, err := auth.Register(c.Request.Context(), req)
		if err != nil {
			respondError(c, err, "register user")
			return
		}
		logrus.WithFields(logrus.Fields{"user_id": user.ID, "email": user.Email}).Info("User registered")
		c.JSON(http.StatusCreated, gin.H{"message": "User registered successfully", "user": user})
	}
}

// LoginHandler authenticates a user and returns a session token
func LoginHandler(auth *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			bindError(c, err)
			return
		}
		session, err := auth.Login(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			respondError(c, err, "login")
			return
		}
		logrus.WithField("user_id", session.User.ID).Info("User logged in")
		c.JSON(http.StatusOK, session)
	}
}

// SessionHandler returns the session carried by the caller's token
func SessionHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := middleware.Claims(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"user": SessionUser{
				ID:        claims.UserID,
				Email:     claims.Email,
				Role:      claims.Role,
				RoleLevel: claims.RoleLevel,
				FirstName: claims.FirstName,
				LastName:  claims.LastName,
			},
			"expires": claims.ExpiresAt.Time,
		})
	}
}

// GetProfileHandler returns the caller's account and profile
func GetProfileHandler(auth *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		user, err := auth.User(c.Request.Context(), userID)
		if err != nil {
			respondError(c, err, "get user profile")
			return
		}
		c.JSON(http.StatusOK, user)
	}
}

// UpdateProfileHandler changes the caller's profile fields. Cached product
// entries show review author names, so they are dropped as well.
func UpdateProfileHandler(auth *service.AuthService, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		var req service.ProfileInput
		if err := c.ShouldBindJSON(&req); err != nil {
			bindError(c, err)
			return
		}
		profile, err := auth.UpdateProfile(c.Request.Context(), userID, req)
		if err != nil {
			respondError(c, err, "update user profile")
			return
		}
		logrus.WithField("user_id", userID).Info("Profile updated")
		invalidateCatalog(c.Request.Context(), rdb) // Author names in cached reviews
		c.JSON(http.StatusOK, profile)
	}
}
