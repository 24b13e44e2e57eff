package browsing

import (
	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes registers the routes for the browsing feature.
func RegisterRoutes(app *fiber.App, service *Service) {
	handler := NewHandler(service)

	app.Get("/search", handler.Search)

	catalog := app.Group("/catalog")
	catalog.Get("/tracks/:id", handler.GetTrack)
	catalog.Get("/tracks/:id/similar", handler.GetSimilarTracks)
	catalog.Get("/artists/:id", handler.GetArtist)
	catalog.Get("/artists/:id/radio", handler.GetArtistRadio)
	catalog.Get("/albums/:id", handler.GetAlbum)
	catalog.Get("/albums/:id/similar", handler.GetSimilarAlbums)
	catalog.Get("/charts", handler.GetCharts)
}
