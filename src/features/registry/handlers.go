package registry

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
)

// Handler is the handler for the registry feature.
type Handler struct {
	service *Service
}

// NewHandler creates a new handler for the registry feature.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// GetProviders lists every registered provider with its current state.
func (h *Handler) GetProviders(c *fiber.Ctx) error {
	return c.JSON(h.service.Statuses())
}

// GetProvidersByRole lists enabled providers for a role in resolution order.
func (h *Handler) GetProvidersByRole(c *fiber.Ctx) error {
	role := Role(c.Params("role"))
	providers := h.service.GetByRole(role)

	statuses := make([]Status, 0, len(providers))
	for _, p := range providers {
		statuses = append(statuses, Status{
			ID:      p.ID(),
			Name:    p.Name(),
			Roles:   p.Roles(),
			Enabled: true,
		})
	}
	return c.JSON(statuses)
}

// SetEnabled toggles a provider.
func (h *Handler) SetEnabled(c *fiber.Ctx) error {
	var body struct {
		Enabled bool `json:"enabled"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}
	id := c.Params("id")
	h.service.SetEnabled(id, body.Enabled)
	slog.Debug("SetEnabled handler called", "id", id, "enabled", body.Enabled)
	return c.JSON(fiber.Map{"id": id, "enabled": body.Enabled})
}

// SetPriority assigns a user priority override.
func (h *Handler) SetPriority(c *fiber.Ctx) error {
	var body struct {
		Priority int `json:"priority"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}
	id := c.Params("id")
	h.service.SetPriority(id, body.Priority)
	return c.JSON(fiber.Map{"id": id, "priority": body.Priority})
}

// SetOrder applies a full priority ordering from a drag-to-reorder UI.
func (h *Handler) SetOrder(c *fiber.Ctx) error {
	var body struct {
		Order []string `json:"order"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}
	h.service.SetOrder(body.Order)
	return c.JSON(fiber.Map{"order": body.Order})
}
