package browsing

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"harmonia/src/music"
)

// Handler is the handler for the browsing feature.
type Handler struct {
	service *Service
}

// NewHandler creates a new handler for the browsing feature.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Search runs a unified search. Always answers 200 with a result set; an
// empty catalog or missing providers yields source "none".
func (h *Handler) Search(c *fiber.Ctx) error {
	query := c.Query("q")
	if query == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "q is required"})
	}
	opts := Options{
		Source: c.Query("source"),
		Limit:  c.QueryInt("limit", 0),
		Offset: c.QueryInt("offset", 0),
	}
	slog.Debug("Search handler called", "query", query, "source", opts.Source)
	return c.JSON(h.service.Search(c.Context(), query, opts))
}

// GetTrack looks a track up by provider-native ID.
func (h *Handler) GetTrack(c *fiber.Ctx) error {
	track := h.service.GetTrack(c.Context(), c.Params("id"), c.Query("source"))
	if track == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "track not found"})
	}
	return c.JSON(track)
}

// GetArtist looks an artist up by provider-native ID.
func (h *Handler) GetArtist(c *fiber.Ctx) error {
	artist := h.service.GetArtist(c.Context(), c.Params("id"), c.Query("source"))
	if artist == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "artist not found"})
	}
	return c.JSON(artist)
}

// GetAlbum looks an album up by provider-native ID.
func (h *Handler) GetAlbum(c *fiber.Ctx) error {
	album := h.service.GetAlbum(c.Context(), c.Params("id"), c.Query("source"))
	if album == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "album not found"})
	}
	return c.JSON(album)
}

// GetCharts returns chart tracks.
func (h *Handler) GetCharts(c *fiber.Ctx) error {
	tracks := h.service.GetCharts(c.Context(), c.QueryInt("limit", 0), c.Query("source"))
	return c.JSON(fiber.Map{"tracks": tracks})
}

// GetSimilarTracks returns tracks similar to the given one. The track is
// first resolved through metadata lookup so the fallback search has an
// artist name to seed from.
func (h *Handler) GetSimilarTracks(c *fiber.Ctx) error {
	id := c.Params("id")
	source := c.Query("source")
	track := h.service.GetTrack(c.Context(), id, source)
	if track == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "track not found"})
	}
	tracks := h.service.GetSimilarTracks(c.Context(), track, c.QueryInt("limit", 0), source)
	return c.JSON(fiber.Map{"tracks": tracks})
}

// GetSimilarAlbums returns albums similar to the given one.
func (h *Handler) GetSimilarAlbums(c *fiber.Ctx) error {
	id := c.Params("id")
	source := c.Query("source")
	album := h.service.GetAlbum(c.Context(), id, source)
	if album == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "album not found"})
	}
	albums := h.service.GetSimilarAlbums(c.Context(), album, c.QueryInt("limit", 0), source)
	return c.JSON(fiber.Map{"albums": albums})
}

// GetArtistRadio returns a radio-style track list seeded by an artist.
func (h *Handler) GetArtistRadio(c *fiber.Ctx) error {
	id := c.Params("id")
	source := c.Query("source")
	artist := h.service.GetArtist(c.Context(), id, source)
	if artist == nil {
		artist = &music.Artist{ID: id}
	}
	tracks := h.service.GetArtistRadio(c.Context(), artist, c.QueryInt("limit", 0), source)
	return c.JSON(fiber.Map{"tracks": tracks})
}
