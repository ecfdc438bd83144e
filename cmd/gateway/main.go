package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"shareit/internal/config"
	"shareit/internal/gateway"
	"shareit/internal/logging"
	"shareit/internal/pkg/jwt"
	"shareit/internal/pkg/ratelimit"
)

func main() {
	configPath := flag.String("config", os.Getenv("CONFIG_PATH"), "path to YAML config")
	flag.Parse()

	cfg, err := config.Load(*configPath, "gateway")
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	logger := logging.New(cfg.Logging, cfg.App)

	if err := run(cfg, logger); err != nil {
		logger.Fatal().Err(err).Msg("gateway stopped")
	}
}

func run(cfg *config.Config, logger zerolog.Logger) error {
	var signer *jwt.Service
	if cfg.ServiceToken.Secret != "" {
		signer = jwt.New(cfg.ServiceToken.Secret, cfg.ServiceToken.TTL)
	}
	client := gateway.NewClient(cfg.Gateway.ServerURL, cfg.Gateway.Timeout, signer)

	var limiter ratelimit.Limiter
	if cfg.RateLimit.Enabled {
		l, err := ratelimit.New(cfg.RateLimit)
		if err != nil {
			return err
		}
		if closer, ok := l.(io.Closer); ok {
			defer closer.Close()
		}
		limiter = l
		logger.Info().Bool("redis", cfg.RateLimit.RedisAddr != "").Msg("rate limiting enabled")
	}

	if config.IsProdLike(cfg.App.Environment) {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gateway.NewRouter(client, gateway.Options{
		Logger:         logger,
		Limiter:        limiter,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
	})

	srv := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      r,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info().Str("addr", srv.Addr).Str("server_url", cfg.Gateway.ServerURL).Msg("ShareIt gateway listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
		defer cancel()
		logger.Info().Msg("shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
