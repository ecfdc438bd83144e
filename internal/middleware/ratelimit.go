package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"shareit/internal/metrics"
	"shareit/internal/pkg/ratelimit"
	"shareit/internal/pkg/response"
)

// RateLimit throttles by client IP. A nil limiter lets everything through.
func RateLimit(limiter ratelimit.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter == nil || limiter.Allow(c.Request.Context(), c.ClientIP()) {
			c.Next()
			return
		}
		metrics.IncRateLimited()
		response.Error(c, http.StatusTooManyRequests, "RATE_LIMITED", "Too many requests")
		c.Abort()
	}
}
