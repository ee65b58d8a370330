package middleware

import (
	"bytes"         // Body buffering
	"encoding/json" // JSON decoding
	"io"            // Body reading
	"net/http"      // HTTP status codes
	"strconv"       // String conversion
	"strings"       // String manipulation
	"time"          // Time durations

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
)

// Login throttling limits
const (
	LoginMaxAttempts = 5
	LoginCooldown    = 15 * time.Minute
)

// LoginRateLimit blocks an email for LoginCooldown after LoginMaxAttempts
// failed logins. A nil client disables the limit.
func LoginRateLimit(rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rdb == nil {
			c.Next()
			return
		}
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(body)) // Restore the body for the handler

		var input struct {
			Email string `json:"email"`
		}
		if json.Unmarshal(body, &input) != nil || input.Email == "" {
			c.Next()
			return
		}
		email := strings.ToLower(strings.TrimSpace(input.Email)) // Same key for any casing
		ctx := c.Request.Context()
		attemptsKey := "login:attempts:" + email
		cooldownKey := "login:cooldown:" + email

		if ttl, err := rdb.TTL(ctx, cooldownKey).Result(); err == nil && ttl > 0 {
			c.Header("Retry-After", strconv.Itoa(int(ttl.Seconds())))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Too many failed attempts, try again later"})
			return
		}

		c.Next()

		switch c.Writer.Status() {
		case http.StatusUnauthorized:
			attempts, err := rdb.Incr(ctx, attemptsKey).Result()
			if err != nil {
				logrus.WithField("error", err.Error()).Warn("Login attempt counter unavailable")
				return
			}
			rdb.Expire(ctx, attemptsKey, LoginCooldown) // Failures age out
			if attempts >= LoginMaxAttempts {
				rdb.Set(ctx, cooldownKey, "1", LoginCooldown) // Lock the email
				rdb.Del(ctx, attemptsKey)                     // Start counting afresh after the lock
				logrus.WithField("email", email).Warn("Login locked after repeated failures")
			}
		case http.StatusOK:
			rdb.Del(ctx, attemptsKey, cooldownKey) // Successful login resets the counter
		}
	}
}
