package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lookalike/web/config"
	httpDelivery "github.com/lookalike/web/internal/delivery/http"
	"github.com/lookalike/web/internal/infrastructure/cache"
	"github.com/lookalike/web/internal/infrastructure/matchapi"
	"github.com/lookalike/web/internal/usecase"
	"github.com/sirupsen/logrus"
)

const shutdownTimeout = 10 * time.Second

func main() {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.WithError(err).Fatal("Failed to load configuration")
	}
	setupLogger(logger, cfg)

	logger.WithFields(logrus.Fields{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"backend":     cfg.Backend.BaseURL,
	}).Info("Starting lookalike web v1.0.0")

	// Initialize infrastructure dependencies
	memoryCache := cache.NewMemoryCache(cfg.Cache.CleanupInterval)
	defer memoryCache.Close()

	matchClient := matchapi.NewClient(cfg.Backend.BaseURL, cfg.Backend.Timeout, logger)
	matchClient.SetRateLimit(cfg.Backend.RateLimit, cfg.Backend.Burst)

	// Enable debug mode in development environment
	if cfg.Server.Environment == "development" {
		matchClient.SetDebug(true)
		logger.Info("Matching client debug mode enabled")
	}

	// Initialize usecase layer
	catalog := usecase.NewFilterCatalog(memoryCache, matchClient, cfg.Cache.FiltersTTL, logger)
	sessions := usecase.NewSessionStore(memoryCache, cfg.Session.TTL, func() *usecase.SearchController {
		return usecase.NewSearchController(matchClient, catalog, logger, usecase.SearchControllerConfig{})
	}, logger)
	sessions.SetFilterLoadTimeout(cfg.Backend.FiltersTimeout)

	handler := httpDelivery.NewHandler(cfg.Upload.MaxBytes, logger)
	router := httpDelivery.SetupRouter(cfg, handler, sessions, memoryCache, logger)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Infof("Server listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.WithError(err).Error("Server forced to shutdown")
	}
	logger.Info("Server exiting")
}

func setupLogger(logger *logrus.Logger, cfg *config.Config) {
	if cfg.Server.Environment == "production" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	level, err := logrus.ParseLevel(cfg.Server.LogLevel)
	if err != nil {
		logger.WithField("log_level", cfg.Server.LogLevel).Warn("Unknown log level, using info")
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)
}
