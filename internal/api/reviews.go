package api

import (
	"net/http"
	"storefront/internal/middleware"
	"storefront/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// ListReviewsHandler returns a product's reviews and average rating
func ListReviewsHandler(reviews *service.ReviewService) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := reviews.List(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err, "list product reviews")
			return
		}
		c.JSON(http.StatusOK, list)
	}
}

// SubmitReviewHandler stores or replaces the caller's review of a product
func SubmitReviewHandler(reviews *service.ReviewService, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		var req service.ReviewInput
		if err := c.ShouldBindJSON(&req); err != nil {
			bindError(c, err)
			return
		}
		review, err := reviews.Submit(c.Request.Context(), userID, c.Param("id"), req)
		if err != nil {
			respondError(c, err, "review product")
			return
		}
		logrus.WithFields(logrus.Fields{
			"user_id":    userID,
			"product_id": review.ProductID,
			"rating":     review.Rating,
		}).Info("Review submitted")
		invalidateCatalog(c.Request.Context(), rdb)
		c.JSON(http.StatusCreated, review)
	}
}
