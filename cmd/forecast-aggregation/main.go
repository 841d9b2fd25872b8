package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	httpapi "forecast-aggregation/internal/api/http"
	"forecast-aggregation/internal/config"
	"forecast-aggregation/internal/forecast"
	"forecast-aggregation/internal/forecast/providers"
	"forecast-aggregation/internal/geo"
	"forecast-aggregation/internal/scheduler"
)

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Static city catalog; resolves location queries to coordinates.
	catalog, err := geo.LoadCatalog()
	if err != nil {
		log.Fatalf("failed to load city catalog: %v", err)
	}

	// Shared HTTP client for outbound provider calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	// Providers with resilience (backoff + circuit breaker).
	var provs []forecast.Provider

	if cfg.OpenWeatherToken != "" {
		provs = append(provs, providers.NewOpenWeatherProvider(httpClient, cfg.OpenWeatherToken))
	}
	if cfg.AccuWeatherToken != "" {
		provs = append(provs, providers.NewAccuWeatherProvider(httpClient, cfg.AccuWeatherToken))
	}

	// Core service: cache lookup, provider fan-out, averaging. Refuses to
	// construct without providers.
	service, err := forecast.NewService(provs)
	if err != nil {
		log.Fatalf("failed to create forecast service: %v", err)
	}

	// Scheduler that keeps configured locations warm in the cache.
	var warm []geo.Position
	for _, loc := range cfg.WarmLocations {
		pos, ok := catalog.Find(loc.Country, loc.City)
		if !ok {
			log.Fatalf("unknown warm location %s/%s", loc.Country, loc.City)
		}
		warm = append(warm, pos)
	}

	sched := scheduler.New(warm, cfg.WarmInterval, service)
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	// Basic app configuration
	app := fiber.New(fiber.Config{
		AppName:               "forecast-aggregation",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error response
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	// Global middleware
	app.Use(logger.New())
	app.Use(recover.New())

	// Basic health endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "forecast-aggregation",
		})
	})

	// API routes.
	httpapi.RegisterRoutes(app, service, catalog)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
}
