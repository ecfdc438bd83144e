// Package server assembles the ShareIt server tier: repositories, services and
// the gin router that exposes them.
package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"shareit/internal/database"
	"shareit/internal/metrics"
	"shareit/internal/middleware"
	"shareit/internal/modules/booking"
	"shareit/internal/modules/item"
	"shareit/internal/modules/request"
	"shareit/internal/modules/user"
	"shareit/internal/pkg/jwt"
	"shareit/internal/repository"
)

type Options struct {
	Logger zerolog.Logger
	// Verifier checks the gateway's service token; nil accepts unsigned calls.
	Verifier       *jwt.Service
	AllowedOrigins []string
}

func NewRouter(db *gorm.DB, opts Options) *gin.Engine {
	tx := database.NewTxManager(db)
	userRepo := repository.NewUserRepository(db)
	itemRepo := repository.NewItemRepository(db)
	requestRepo := repository.NewRequestRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	commentRepo := repository.NewCommentRepository(db)

	userHandler := user.NewHandler(user.NewService(userRepo, tx))
	itemHandler := item.NewHandler(item.NewService(itemRepo, userRepo, requestRepo, bookingRepo, commentRepo, tx))
	bookingHandler := booking.NewHandler(booking.NewService(bookingRepo, itemRepo, userRepo, tx))
	requestHandler := request.NewHandler(request.NewService(requestRepo, itemRepo, userRepo, tx))

	metrics.Register()

	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(opts.Logger))
	r.Use(middleware.ErrorLogger())
	r.Use(middleware.CORS(opts.AllowedOrigins))
	r.Use(middleware.Metrics("server"))

	r.GET("/health", func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err != nil || sqlDB.PingContext(c.Request.Context()) != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	api := r.Group("")
	api.Use(middleware.ServiceToken(opts.Verifier))
	{
		userHandler.RegisterRoutes(api)
		itemHandler.RegisterRoutes(api)
		bookingHandler.RegisterRoutes(api)
		requestHandler.RegisterRoutes(api)
	}
	return r
}
