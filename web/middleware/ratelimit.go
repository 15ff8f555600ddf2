package middleware

import (
	"net/http"
	"strconv"
	"time"

	"blogd/logger"
	"blogd/util/limiter"

	"github.com/gin-gonic/gin"
)

// RateLimitConfig configures the fixed-window rate limiter.
type RateLimitConfig struct {
	RequestsPerMinute int
	KeyFunc           func(c *gin.Context) string
}

// DefaultRateLimitConfig keys on client IP with a limit suited to the
// unauthenticated auth endpoints.
func DefaultRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		RequestsPerMinute: 30,
		KeyFunc: func(c *gin.Context) string {
			return c.ClientIP()
		},
	}
}

// RateLimit rejects requests over the per-window budget with 429. Counters
// live in the given in-memory limiter, one per key and path.
func RateLimit(l *limiter.Limiter, config RateLimitConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := config.KeyFunc(c) + ":" + c.FullPath()

		count, reset := l.Incr(key)
		if count > config.RequestsPerMinute {
			logger.Warningf("rate limit exceeded for %s (count: %d)", key, count)
			c.Header("X-RateLimit-Limit", strconv.Itoa(config.RequestsPerMinute))
			c.Header("X-RateLimit-Remaining", "0")
			c.Header("X-RateLimit-Reset", strconv.FormatInt(reset.Unix(), 10))
			abortMsg(c, http.StatusTooManyRequests, "rate limit exceeded, try again later")
			return
		}

		remaining := config.RequestsPerMinute - count
		c.Header("X-RateLimit-Limit", strconv.Itoa(config.RequestsPerMinute))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(reset.Unix(), 10))

		c.Next()
	}
}

// NewAuthLimiter returns the limiter instance shared by the auth routes.
func NewAuthLimiter() *limiter.Limiter {
	return limiter.New(time.Minute)
}
