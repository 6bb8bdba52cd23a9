package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/gagnaveita/notkun/adapters/monitoring"
	"github.com/gagnaveita/notkun/adapters/switchport"
	"github.com/gagnaveita/notkun/domain/repositories"
	"github.com/gagnaveita/notkun/internal/api"
	"github.com/gagnaveita/notkun/usecase"
)

func main() {
	// Load .env if present; real deployments configure the environment
	// directly.
	godotenv.Load()

	// Initialize logger
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	// Create Echo instance
	e := echo.New()

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))

	// Initialize adapters. The switch/port lookup API falls back to
	// static sample data until its endpoint is configured.
	var resolver repositories.SwitchPortResolver
	resolverConfig := switchport.NewResolverConfigFromEnv()
	if resolverConfig.BaseURL != "" {
		httpResolver, err := switchport.NewHTTPResolver(resolverConfig, logger)
		if err != nil {
			logger.Fatal("Failed to create switch/port resolver", zap.Error(err))
		}
		resolver = httpResolver
	} else {
		logger.Warn("SWITCHPORT_API_BASE_URL not set, using static switch/port data")
		resolver = switchport.NewStaticResolver(logger)
	}

	monitor := monitoring.NewPrometheusClient(monitoring.NewMonitorConfigFromEnv(), logger)

	// Initialize usecase services
	usageService := usecase.NewUsageService(resolver, monitor, logger)

	// Initialize API routes
	api.InitRoutes(e, usageService, logger)

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	// Graceful shutdown
	go func() {
		if err := e.Start(":" + port); err != nil && err != http.ErrServerClosed {
			logger.Fatal("shutting down the server", zap.Error(err))
		}
	}()

	logger.Info("Server started", zap.String("port", port))

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("Server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
