package api

import (
	"errors"                      // Error inspection
	"math"                        // NaN checks
	"net/http"                    // HTTP status codes
	"storefront/internal/service" // Service errors
	"storefront/internal/utils"   // Error categories
	"strconv"                     // String conversion
	"strings"                     // String manipulation

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging
)

// respondError maps service errors onto HTTP statuses. Unexpected errors are
// logged and answered with a generic 500.
func respondError(c *gin.Context, err error, action string) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": notFoundMessage(action)})
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": publicMessage(err, service.ErrInvalidInput)})
	case errors.Is(err, service.ErrInsufficientStock):
		c.JSON(http.StatusConflict, gin.H{"error": publicMessage(err, service.ErrInsufficientStock)})
	case errors.Is(err, service.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": publicMessage(err, service.ErrConflict)})
	case errors.Is(err, service.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
	default:
		category := utils.CategorizeError(err)
		logrus.WithFields(logrus.Fields{
			"action":     action,
			"category":   category,
			"hint":       utils.UserMessage(category),
			"request_id": c.GetString("requestID"),
			"error":      err.Error(),
		}).Error("Request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// publicMessage returns the wrapped detail of err, or the sentinel text
func publicMessage(err, sentinel error) string {
	msg := strings.TrimPrefix(err.Error(), sentinel.Error()+": ")
	if msg == "" {
		msg = sentinel.Error()
	}
	return strings.ToUpper(msg[:1]) + msg[1:]
}

func notFoundMessage(action string) string {
	switch {
	case strings.Contains(action, "cart item"):
		return "Item not in cart"
	case strings.Contains(action, "product"):
		return "Product not found"
	case strings.Contains(action, "user"):
		return "User not found"
	default:
		return "Not found"
	}
}

// bindError answers a request whose body failed validation
func bindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
}

// parseID reads a positive numeric path parameter
func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name})
		return 0, false
	}
	return uint(id), true
}

// queryList collects a repeated query parameter, also splitting comma-separated values
func queryList(c *gin.Context, key string) []string {
	var out []string
	for _, raw := range c.QueryArray(key) {
		for _, part := range strings.Split(raw, ",") {
			if p := strings.ToLower(strings.TrimSpace(part)); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}

// queryFloat parses an optional float query parameter, ignoring bad input
func queryFloat(c *gin.Context, key string) *float64 {
	v, err := strconv.ParseFloat(c.Query(key), 64)
	if err != nil || v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
