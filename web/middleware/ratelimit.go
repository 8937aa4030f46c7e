// Package middleware holds the gin middleware used by the web server.
package middleware

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimitConfig configures per-client rate limiting for the auth POSTs.
type RateLimitConfig struct {
	RequestsPerSecond rate.Limit
	BurstSize         int
	KeyFunc           func(c *gin.Context) string
}

// DefaultRateLimitConfig allows 2 requests per second with a burst of 5,
// keyed by client IP.
func DefaultRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		RequestsPerSecond: 2,
		BurstSize:         5,
		KeyFunc: func(c *gin.Context) string {
			return c.ClientIP()
		},
	}
}

// RateLimit creates rate limiting middleware with one token bucket per key.
// Buckets live for the process lifetime; with auth endpoints only, the map
// stays small.
func RateLimit(config RateLimitConfig) gin.HandlerFunc {
	var mu sync.Mutex
	limiters := make(map[string]*rate.Limiter)

	return func(c *gin.Context) {
		key := config.KeyFunc(c)

		mu.Lock()
		limiter, ok := limiters[key]
		if !ok {
			limiter = rate.NewLimiter(config.RequestsPerSecond, config.BurstSize)
			limiters[key] = limiter
		}
		mu.Unlock()

		if !limiter.Allow() {
			c.AbortWithStatus(http.StatusTooManyRequests)
			return
		}
		c.Next()
	}
}
