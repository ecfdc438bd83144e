package gateway

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"shareit/internal/metrics"
	"shareit/internal/middleware"
	"shareit/internal/pkg/ratelimit"
)

type Options struct {
	Logger zerolog.Logger
	// Limiter throttles callers by IP; nil disables rate limiting.
	Limiter        ratelimit.Limiter
	AllowedOrigins []string
}

// NewRouter builds the public gateway in front of client.
func NewRouter(client *Client, opts Options) *gin.Engine {
	metrics.Register()

	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(opts.Logger))
	r.Use(middleware.ErrorLogger())
	r.Use(middleware.CORS(opts.AllowedOrigins))
	r.Use(middleware.Metrics("gateway"))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	api := r.Group("")
	api.Use(middleware.RateLimit(opts.Limiter))
	NewHandler(client).RegisterRoutes(api)
	return r
}
