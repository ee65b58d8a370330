package middleware

import (
	"time" // Time durations

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// Logger writes one logrus entry per request
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now() // Request start time
		c.Next()            // Run the rest of the chain
		fields := logrus.Fields{
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     c.Writer.Status(),
			"latency":    time.Since(start).String(),
			"client_ip":  c.ClientIP(),
			"request_id": c.GetString("requestID"),
		}
		if userID, ok := UserID(c); ok {
			fields["user_id"] = userID // Authenticated requests only
		}
		entry := logrus.WithFields(fields)
		switch status := c.Writer.Status(); {
		case status >= 500:
			entry.Error("Request failed")
		case status >= 400:
			entry.Warn("Request rejected")
		default:
			entry.Info("Request handled")
		}
	}
}
