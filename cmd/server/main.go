// Package main is the entry point for the fare search assistant service.
//
//	@title						Fare Search Assistant API
//	@version					1.0.0
//	@description				A conversational flight fare search service that expands flexible date requests, queries fares concurrently, and returns the ranked best offers.
//
//	@contact.name				API Support
//	@contact.url				https://github.com/farescout/fare-search-assistant/issues
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/api/v1
//
//	@schemes					http https
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

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	echoSwagger "github.com/swaggo/echo-swagger"

	// Import generated docs for swagger
	_ "github.com/farescout/fare-search-assistant/docs"

	// Application layers
	"github.com/farescout/fare-search-assistant/internal/adapter/aviasales"
	farehttp "github.com/farescout/fare-search-assistant/internal/adapter/http"
	"github.com/farescout/fare-search-assistant/internal/adapter/http/middleware"
	"github.com/farescout/fare-search-assistant/internal/adapter/nlp"
	"github.com/farescout/fare-search-assistant/internal/cache"
	"github.com/farescout/fare-search-assistant/internal/config"
	"github.com/farescout/fare-search-assistant/internal/infrastructure/logger"
	"github.com/farescout/fare-search-assistant/internal/ratelimit"
	"github.com/farescout/fare-search-assistant/internal/session"
	"github.com/farescout/fare-search-assistant/internal/usecase"
)

const (
	shutdownTimeout = 10 * time.Second

	// Idle conversations are swept after half an hour without a turn.
	sessionMaxIdle     = 30 * time.Minute
	sessionSweepPeriod = 5 * time.Minute
)

func main() {
	// Load configuration
	cfg := config.MustLoad()

	appLog := logger.New(logger.Config{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		ServiceName: "fare-search",
	})
	log.Logger = appLog.Logger

	log.Info().
		Str("env", cfg.App.Env).
		Int("port", cfg.Server.Port).
		Msg("Configuration loaded")

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Configure server timeouts from config
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout

	// Setup middleware
	middleware.Setup(e, appLog.Logger)

	// Setup routes and background workers
	stopSweeper := setupRoutes(e, cfg, appLog)
	defer stopSweeper()

	// Start server with graceful shutdown
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	go func() {
		log.Info().Str("address", addr).Msg("Starting server")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal
	gracefulShutdown(e)
}

// setupRoutes wires the application layers and registers the HTTP routes.
// It returns a function that stops the session sweeper.
func setupRoutes(e *echo.Echo, cfg *config.Config, appLog *logger.Logger) func() {
	// Fare API client: one HTTP query per date pair, no internal retries
	fareClient := aviasales.NewClient(aviasales.Config{
		BaseURL:  cfg.FareAPI.BaseURL,
		Token:    cfg.FareAPI.Token,
		Currency: cfg.FareAPI.Currency,
		Timeout:  cfg.FareAPI.Timeout,
	})

	// Outbound rate limiter shared across all fan-out queries
	limiter := ratelimit.New(ratelimit.Config{
		RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
		BurstSize:         cfg.RateLimit.BurstSize,
	})

	searchCache := buildCache(cfg, appLog)

	searchUseCase := usecase.NewSearchUseCase(fareClient, &usecase.Config{
		Cache:   searchCache,
		Limiter: limiter,
		Logger:  &appLog.Logger,
	})

	extractor := nlp.NewClient(nlp.Config{
		BaseURL: cfg.Extractor.BaseURL,
		APIKey:  cfg.Extractor.APIKey,
		Model:   cfg.Extractor.Model,
		Timeout: cfg.Extractor.Timeout,
	})

	sessions := session.NewStore(nil, sessionMaxIdle)
	stopSweeper := startSessionSweeper(sessions, appLog)

	handler := farehttp.NewFareHandler(searchUseCase, extractor, sessions, appLog.Logger)
	farehttp.RegisterRoutes(e, handler)

	// Swagger documentation endpoint
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return stopSweeper
}

// buildCache returns the Redis cache when enabled, falling back to the no-op
// cache when disabled or unreachable. A dead cache never blocks startup.
func buildCache(cfg *config.Config, appLog *logger.Logger) cache.Cache {
	if !cfg.Cache.Enabled {
		return cache.NewNoOpCache()
	}

	redisCache, err := cache.NewRedisCache(cache.RedisConfig{
		Addr:     cfg.Cache.RedisAddr,
		Password: cfg.Cache.RedisPassword,
		DB:       cfg.Cache.RedisDB,
		TTL:      cfg.Cache.TTL,
	})
	if err != nil {
		appLog.Warn().Err(err).Str("addr", cfg.Cache.RedisAddr).
			Msg("Redis unavailable, search cache disabled")
		return cache.NewNoOpCache()
	}

	appLog.Info().Str("addr", cfg.Cache.RedisAddr).Dur("ttl", cfg.Cache.TTL).
		Msg("Search cache enabled")
	return redisCache
}

// startSessionSweeper evicts idle dialogs in the background.
func startSessionSweeper(sessions *session.Store, appLog *logger.Logger) func() {
	ticker := time.NewTicker(sessionSweepPeriod)
	done := make(chan struct{})

	go func() {
		for {
			select {
			case <-ticker.C:
				if removed := sessions.Sweep(); removed > 0 {
					appLog.Debug().Int("removed", removed).Msg("Swept idle sessions")
				}
			case <-done:
				return
			}
		}
	}()

	return func() {
		ticker.Stop()
		close(done)
	}
}

// gracefulShutdown handles graceful server shutdown on interrupt signals.
func gracefulShutdown(e *echo.Echo) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Error during server shutdown")
	}

	log.Info().Msg("Server stopped")
}
