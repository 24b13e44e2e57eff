package hosting

import (
	"fmt"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"

	"harmonia/src/features/browsing"
	"harmonia/src/features/config"
	"harmonia/src/features/metrics"
	"harmonia/src/features/registry"
	"harmonia/src/features/resolving"
)

// Server is the HTTP server for the application.
type Server struct {
	app  *fiber.App
	port uint32
}

// NewServer creates a new HTTP server.
func NewServer(cfg *config.Manager, configPath string, registryService *registry.Service, browsingService *browsing.Service, resolvingService *resolving.Service, promRegistry *prometheus.Registry) *Server {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			slog.Error("Internal Server Error", "error", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		},
		AppName:               "Harmonia",
		DisableStartupMessage: true,
		EnablePrintRoutes:     cfg.Get().Server.PrintRoutes,
	})

	app.Use(LogAllRequestsMiddleware())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.SendString("OK")
	})

	registry.RegisterRoutes(app, registryService)
	browsing.RegisterRoutes(app, browsingService)
	resolving.RegisterRoutes(app, resolvingService)
	config.RegisterRoutes(app, cfg, configPath)
	metrics.RegisterRoutes(app, promRegistry)

	return &Server{app: app, port: cfg.Get().Server.Port}
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	return s.app.Listen(":" + fmt.Sprint(s.port))
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}
