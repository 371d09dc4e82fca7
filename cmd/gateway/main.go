package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nekogravitycat/shareit-backend/internal/config"
	"github.com/nekogravitycat/shareit-backend/internal/gateway"
	"github.com/nekogravitycat/shareit-backend/internal/logging"
)

func main() {
	// For receiving Ctrl+C / SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load config
	cfg, err := config.LoadGateway()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := logging.New(cfg.LogLevel, cfg.LogFormat)

	proxy, err := gateway.NewProxy(cfg.ServerURL, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid server url")
	}

	limiter := gateway.NewRateLimiter(cfg.RatePerMinute, cfg.RateBurst)

	router := gateway.NewRouter(gateway.Config{
		IsProduction: cfg.IsProduction,
		Logger:       logger,
		Proxy:        proxy,
		Limiter:      limiter,
	})

	// Use http.Server for graceful shutdown
	server := &http.Server{
		Addr:    cfg.GatewayAddr,
		Handler: router,
	}

	// Run server in separate goroutine
	go func() {
		logger.Info().Str("addr", cfg.GatewayAddr).Str("server", cfg.ServerURL).Msg("gateway running")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("gateway error")
		}
	}()

	// Wait for Ctrl+C
	<-ctx.Done()
	logger.Info().Msg("shutdown signal received")

	// Create a shutdown context with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Shutdown HTTP server
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("gateway forced to shutdown")
	}

	logger.Info().Msg("gateway exited gracefully")
}
