package middleware

import (
	"github.com/gin-gonic/gin" // Gin web framework
	"github.com/google/uuid"   // Request ids
)

// RequestIDHeader carries the request id in both directions
const RequestIDHeader = "X-Request-ID"

// RequestID reuses the caller's X-Request-ID or assigns a new one
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader) // Caller supplied id
		if id == "" || len(id) > 64 {
			id = uuid.NewString() // Fresh random id
		}
		c.Set("requestID", id)        // For handlers and the access log
		c.Header(RequestIDHeader, id) // Echo back to the caller
		c.Next()
	}
}
