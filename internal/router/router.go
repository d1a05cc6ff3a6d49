package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/spcflow/spcflow/internal/config"
	"github.com/spcflow/spcflow/internal/handlers"
	"github.com/spcflow/spcflow/internal/logging"
	"github.com/spcflow/spcflow/internal/middleware"
	"github.com/spcflow/spcflow/internal/orchestrator"
	"github.com/spcflow/spcflow/internal/utils"
)

// Setup configures all routes and middlewares
func Setup(app *fiber.App, logger *logging.Logger, registry *orchestrator.Registry, cfg config.Config) *handlers.Handler {
	h := handlers.New(logger, registry)

	// Global middlewares
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization,X-API-Key,X-Request-ID",
	}))
	app.Use(logging.FiberMiddleware(logger))

	// Health check (no auth required)
	app.Get("/health", h.Health)

	// API key authentication middleware
	authMiddleware := middleware.APIKeyAuth(logger, cfg.Auth.APIKeys, cfg.Auth.Enabled)

	// API v1 routes (protected by API key)
	v1 := app.Group("/api/v1", authMiddleware)

	// Chart lifecycle and update cycle
	v1.Get("/charts", h.List)
	v1.Post("/charts/:chart/update", h.Update)
	v1.Get("/charts/:chart", h.View)
	v1.Delete("/charts/:chart", h.Dispose)

	// 404 handler
	app.Use(h.NotFound)

	return h
}

// New creates a new Fiber app with configuration
func New(logger *logging.Logger, registry *orchestrator.Registry, cfg config.Config) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "spcflow engine",
		DisableStartupMessage: true,
		ReadTimeout:           utils.DefaultRequestTimeout,
		ErrorHandler:          middleware.ErrorHandler(logger),
	})

	Setup(app, logger, registry, cfg)

	return app
}
