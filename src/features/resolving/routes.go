package resolving

import (
	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes registers the routes for the resolving feature.
func RegisterRoutes(app *fiber.App, service *Service) {
	handler := NewHandler(service)

	streams := app.Group("/streams")
	streams.Post("/resolve", handler.ResolveStream)
	streams.Post("/resolve/batch", handler.ResolveStreams)
}
