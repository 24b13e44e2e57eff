package resolving

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"harmonia/src/music"
)

// Handler is the handler for the resolving feature.
type Handler struct {
	service *Service
}

// NewHandler creates a new handler for the resolving feature.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// trackRequest is the wire shape for a track to resolve.
type trackRequest struct {
	ID       string               `json:"id"`
	Title    string               `json:"title"`
	Artist   string               `json:"artist"`
	Album    string               `json:"album,omitempty"`
	Duration int                  `json:"duration,omitempty"`
	ISRC     string               `json:"isrc,omitempty"`
	Sources  []music.StreamSource `json:"sources,omitempty"`
}

func (r trackRequest) toTrack() *music.Track {
	track := &music.Track{
		ID:            r.ID,
		Title:         r.Title,
		Duration:      r.Duration,
		ISRC:          r.ISRC,
		StreamSources: r.Sources,
	}
	if track.ID == "" {
		track.ID = music.NewTrackID()
	}
	if r.Artist != "" {
		track.Artists = []music.ArtistRole{{Artist: &music.Artist{Name: r.Artist}, Role: music.RoleMain}}
	}
	if r.Album != "" {
		track.Album = &music.Album{Title: r.Album}
	}
	return track
}

// ResolveStream resolves one track to a playable stream. A track with no
// available stream yields {"stream": null}, not an error, so UIs can mark
// it unavailable instead of failing.
func (h *Handler) ResolveStream(c *fiber.Ctx) error {
	var body trackRequest
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}
	if body.Title == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "title is required"})
	}

	quality := music.Quality(c.Query("quality"))
	track := body.toTrack()
	info := h.service.ResolveStream(c.Context(), track, quality)

	slog.Debug("ResolveStream handler called", "track", track.Title, "resolved", info != nil)
	return c.JSON(fiber.Map{
		"stream":     info,
		"sources":    track.StreamSources,
		"confidence": track.MatchConfidence,
	})
}

// ResolveStreams resolves a batch of tracks with bounded concurrency. The
// tracks are echoed back in request order because ID-less tracks get a
// fresh ID assigned here; callers correlate streams through the echoed IDs.
func (h *Handler) ResolveStreams(c *fiber.Ctx) error {
	var body struct {
		Tracks []trackRequest `json:"tracks"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}

	tracks := make([]*music.Track, 0, len(body.Tracks))
	for _, r := range body.Tracks {
		tracks = append(tracks, r.toTrack())
	}

	quality := music.Quality(c.Query("quality"))
	results := h.service.ResolveStreams(c.Context(), tracks, quality)
	return c.JSON(fiber.Map{"streams": results, "tracks": tracks})
}
