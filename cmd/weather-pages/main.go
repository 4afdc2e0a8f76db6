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
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	httpapi "github.com/jewarner57/weather-pages/internal/api/http"
	"github.com/jewarner57/weather-pages/internal/config"
	"github.com/jewarner57/weather-pages/internal/geo"
	"github.com/jewarner57/weather-pages/internal/scheduler"
	"github.com/jewarner57/weather-pages/internal/tz"
	"github.com/jewarner57/weather-pages/internal/weather/openweather"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}

	zlog, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer zlog.Sync()

	// Load configuration. A missing API key fails here, not on first request.
	cfg, err := config.Load()
	if err != nil {
		zlog.Fatal("failed to load config", zap.Error(err))
	}

	// Shared HTTP client for outbound provider calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	owm := openweather.NewClient(httpClient, cfg.OpenWeatherAPIKey)

	var backend geo.Geocoder
	switch cfg.Geocoder {
	case config.GeocoderGoogle:
		backend = geo.NewGoogleGeocoder(cfg.GeocoderAPIKey)
	default:
		backend = geo.NewNominatimClient(httpClient)
	}

	geocodeCache := geo.NewCache(cfg.GeocodeCacheTTL)
	geocoder := geo.NewCachedGeocoder(backend, geocodeCache)

	// Background job keeping the geocode cache from growing unbounded.
	sched := scheduler.New(geocodeCache, cfg.GeocodePruneInterval, zlog)
	if err := sched.Start(); err != nil {
		zlog.Fatal("failed to start scheduler", zap.Error(err))
	}
	defer sched.Stop()

	app := fiber.New(fiber.Config{
		AppName:               "weather-pages",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		Views:                 httpapi.NewEngine(),
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error page for anything handlers did not map.
			code := fiber.StatusInternalServerError
			msg := "Something went wrong. Please try again later."
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
				msg = e.Message
			}
			return c.Status(code).Render("error", fiber.Map{"Message": msg})
		},
	})

	// Global middleware
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(logger.New())
	app.Use(recover.New())

	// Basic health endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "weather-pages",
		})
	})

	handlers := &httpapi.Handlers{
		Weather:     owm,
		Geocoder:    geocoder,
		TZ:          tz.Resolver{},
		ChartWidth:  cfg.ChartWidth,
		ChartHeight: cfg.ChartHeight,
		Log:         zlog,
	}
	httpapi.RegisterRoutes(app, handlers)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			zlog.Error("fiber server stopped", zap.Error(err))
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		zlog.Error("error during shutdown", zap.Error(err))
	}
}
