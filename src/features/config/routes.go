package config

import (
	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes registers the routes for the config feature.
func RegisterRoutes(app *fiber.App, manager *Manager, path string) {
	handler := NewHandler(manager, path)

	cfg := app.Group("/config")
	cfg.Get("/", handler.GetConfig)
	cfg.Post("/reload", handler.ReloadConfig)
}
