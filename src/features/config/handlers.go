package config

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
)

// Handler is the handler for the config feature.
type Handler struct {
	manager *Manager
	path    string
}

// NewHandler creates a new handler for the config feature.
func NewHandler(manager *Manager, path string) *Handler {
	return &Handler{manager: manager, path: path}
}

// GetConfig returns the current configuration with secrets redacted.
func (h *Handler) GetConfig(c *fiber.Ctx) error {
	c.Set("Content-Type", "application/json")
	return c.SendString(h.manager.GetJSON())
}

// ReloadConfig re-reads the config file from disk.
func (h *Handler) ReloadConfig(c *fiber.Ctx) error {
	if err := Reload(h.manager, h.path); err != nil {
		slog.Error("Config reload failed", "path", h.path, "error", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"reloaded": true})
}
