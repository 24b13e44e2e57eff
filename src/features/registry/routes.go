package registry

import (
	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes registers the routes for the registry feature.
func RegisterRoutes(app *fiber.App, service *Service) {
	handler := NewHandler(service)

	providers := app.Group("/providers")
	providers.Get("/", handler.GetProviders)
	providers.Get("/role/:role", handler.GetProvidersByRole)
	providers.Put("/:id/enabled", handler.SetEnabled)
	providers.Put("/:id/priority", handler.SetPriority)
	providers.Put("/order", handler.SetOrder)
}
