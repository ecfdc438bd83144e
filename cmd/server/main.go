package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"shareit/internal/config"
	"shareit/internal/database"
	"shareit/internal/logging"
	"shareit/internal/pkg/jwt"
	"shareit/internal/server"
)

func main() {
	configPath := flag.String("config", os.Getenv("CONFIG_PATH"), "path to YAML config")
	flag.Parse()

	cfg, err := config.Load(*configPath, "server")
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	logger := logging.New(cfg.Logging, cfg.App)

	if err := run(cfg, logger); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}

func run(cfg *config.Config, logger zerolog.Logger) error {
	db, err := database.Connect(cfg.Database.URL, logger, database.ParseLogLevel(cfg.Database.LogLevel))
	if err != nil {
		return err
	}
	if cfg.Database.AutoMigrate {
		logger.Info().Msg("running migrations")
		if err := database.Migrate(db); err != nil {
			return err
		}
	}

	var verifier *jwt.Service
	if cfg.ServiceToken.Secret != "" {
		verifier = jwt.New(cfg.ServiceToken.Secret, cfg.ServiceToken.TTL)
	} else {
		logger.Warn().Msg("SERVICE_TOKEN_SECRET is empty, accepting unsigned calls")
	}

	if config.IsProdLike(cfg.App.Environment) {
		gin.SetMode(gin.ReleaseMode)
	}
	r := server.NewRouter(db, server.Options{
		Logger:         logger,
		Verifier:       verifier,
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
		logger.Info().Str("addr", srv.Addr).Msg("ShareIt server listening")
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
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if sqlDB, err := db.DB(); err == nil {
			return sqlDB.Close()
		}
		return nil
	})
	return g.Wait()
}
