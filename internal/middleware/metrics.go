package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"shareit/internal/metrics"
)

// Metrics records request count and latency per matched route.
func Metrics(tier string) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		metrics.ObserveHTTP(tier, c.Request.Method, c.FullPath(), c.Writer.Status(), time.Since(start))
	}
}
