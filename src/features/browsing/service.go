// Package browsing routes search and metadata lookups to the correct
// provider with deterministic priority-ordered fallback, degrading to
// empty results rather than failing when providers are missing or broken.
package browsing

import (
	"context"
	"log/slog"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"harmonia/src/features/metrics"
	"harmonia/src/features/registry"
	"harmonia/src/music"
)

const (
	defaultSearchLimit = 25
	defaultChartsLimit = 50
	defaultCallTimeout = 10 * time.Second
	artworkCacheSize   = 256
)

// Service is the fallback orchestrator for unified search and metadata
// lookups.
type Service struct {
	registry    *registry.Service
	metrics     *metrics.Metrics
	callTimeout time.Duration
	searchLimit int
	artworkLRU  *lru.Cache[string, music.Artwork]
}

// NewService creates a browsing service. A zero callTimeout or searchLimit
// selects the respective default.
func NewService(reg *registry.Service, m *metrics.Metrics, callTimeout time.Duration, searchLimit int) *Service {
	if callTimeout <= 0 {
		callTimeout = defaultCallTimeout
	}
	if searchLimit <= 0 {
		searchLimit = defaultSearchLimit
	}
	cache, _ := lru.New[string, music.Artwork](artworkCacheSize)
	return &Service{
		registry:    reg,
		metrics:     m,
		callTimeout: callTimeout,
		searchLimit: searchLimit,
		artworkLRU:  cache,
	}
}

// metadataProviders returns the providers to try for a lookup: the named
// source alone when given and enabled, else all metadata providers in
// priority order.
func (s *Service) metadataProviders(source string) []*registry.Provider {
	if source != "" {
		if p, ok := s.registry.Get(source); ok {
			return []*registry.Provider{p}
		}
		slog.Warn("Requested source not available, falling back to priority order", "source", source)
	}
	return s.registry.GetByRole(registry.RoleMetadata)
}

// GetTrack looks up a track by provider-native ID. Returns nil when no
// provider knows it; never an error.
func (s *Service) GetTrack(ctx context.Context, id, source string) *music.Track {
	for _, p := range s.metadataProviders(source) {
		md, ok := p.Metadata()
		if !ok {
			continue
		}
		callCtx, cancel := context.WithTimeout(ctx, s.callTimeout)
		track, err := md.GetTrack(callCtx, id)
		cancel()
		if err != nil {
			s.metrics.ObserveProviderCall(p.ID(), "get_track", "error")
			slog.Warn("Provider track lookup failed", "provider", p.ID(), "id", id, "error", err)
			continue
		}
		s.metrics.ObserveProviderCall(p.ID(), "get_track", "ok")
		if track != nil {
			return track
		}
	}
	return nil
}

// GetArtist looks up an artist by provider-native ID.
func (s *Service) GetArtist(ctx context.Context, id, source string) *music.Artist {
	for _, p := range s.metadataProviders(source) {
		md, ok := p.Metadata()
		if !ok {
			continue
		}
		callCtx, cancel := context.WithTimeout(ctx, s.callTimeout)
		artist, err := md.GetArtist(callCtx, id)
		cancel()
		if err != nil {
			s.metrics.ObserveProviderCall(p.ID(), "get_artist", "error")
			slog.Warn("Provider artist lookup failed", "provider", p.ID(), "id", id, "error", err)
			continue
		}
		s.metrics.ObserveProviderCall(p.ID(), "get_artist", "ok")
		if artist != nil {
			return artist
		}
	}
	return nil
}

// GetAlbum looks up an album by provider-native ID.
func (s *Service) GetAlbum(ctx context.Context, id, source string) *music.Album {
	for _, p := range s.metadataProviders(source) {
		md, ok := p.Metadata()
		if !ok {
			continue
		}
		callCtx, cancel := context.WithTimeout(ctx, s.callTimeout)
		album, err := md.GetAlbum(callCtx, id)
		cancel()
		if err != nil {
			s.metrics.ObserveProviderCall(p.ID(), "get_album", "error")
			slog.Warn("Provider album lookup failed", "provider", p.ID(), "id", id, "error", err)
			continue
		}
		s.metrics.ObserveProviderCall(p.ID(), "get_album", "ok")
		if album != nil {
			return album
		}
	}
	return nil
}

// GetCharts returns chart tracks from the first provider that implements
// the optional charts capability. Empty when none does.
func (s *Service) GetCharts(ctx context.Context, limit int, source string) []*music.Track {
	if limit <= 0 {
		limit = defaultChartsLimit
	}
	for _, p := range s.metadataProviders(source) {
		charts, ok := p.Capability(registry.RoleMetadata)
		if !ok {
			continue
		}
		capable, ok := charts.(registry.ChartsCapability)
		if !ok {
			continue
		}
		callCtx, cancel := context.WithTimeout(ctx, s.callTimeout)
		tracks, err := capable.GetCharts(callCtx, limit)
		cancel()
		if err != nil {
			s.metrics.ObserveProviderCall(p.ID(), "get_charts", "error")
			slog.Warn("Provider charts failed", "provider", p.ID(), "error", err)
			continue
		}
		s.metrics.ObserveProviderCall(p.ID(), "get_charts", "ok")
		if len(tracks) > 0 {
			return tracks
		}
	}
	return []*music.Track{}
}

// GetSimilarTracks returns tracks similar to the given one. Providers
// without the optional capability are skipped; when every provider fails
// or lacks it, the result degrades to a plain search seeded by the
// artist's name.
func (s *Service) GetSimilarTracks(ctx context.Context, track *music.Track, limit int, source string) []*music.Track {
	if limit <= 0 {
		limit = s.searchLimit
	}
	for _, p := range s.metadataProviders(source) {
		md, ok := p.Capability(registry.RoleMetadata)
		if !ok {
			continue
		}
		capable, ok := md.(registry.SimilarTracksCapability)
		if !ok {
			continue
		}
		nativeID := track.ExternalID(p.ID())
		if nativeID == "" {
			continue
		}
		callCtx, cancel := context.WithTimeout(ctx, s.callTimeout)
		tracks, err := capable.GetSimilarTracks(callCtx, nativeID, limit)
		cancel()
		if err != nil {
			s.metrics.ObserveProviderCall(p.ID(), "get_similar_tracks", "error")
			slog.Warn("Provider similar-tracks failed", "provider", p.ID(), "error", err)
			continue
		}
		s.metrics.ObserveProviderCall(p.ID(), "get_similar_tracks", "ok")
		if len(tracks) > 0 {
			return tracks
		}
	}

	// Documented fallback: a plain search seeded by the artist name.
	if artist := track.PrimaryArtist(); artist != "" {
		results := s.Search(ctx, artist, Options{Limit: limit})
		return results.Tracks
	}
	return []*music.Track{}
}

// GetSimilarAlbums returns albums similar to the given one. Empty when no
// provider implements the capability.
func (s *Service) GetSimilarAlbums(ctx context.Context, album *music.Album, limit int, source string) []*music.Album {
	if limit <= 0 {
		limit = s.searchLimit
	}
	for _, p := range s.metadataProviders(source) {
		md, ok := p.Capability(registry.RoleMetadata)
		if !ok {
			continue
		}
		capable, ok := md.(registry.SimilarAlbumsCapability)
		if !ok {
			continue
		}
		nativeID := ""
		if album.ExternalIDs != nil {
			nativeID = album.ExternalIDs[p.ID()]
		}
		if nativeID == "" {
			continue
		}
		callCtx, cancel := context.WithTimeout(ctx, s.callTimeout)
		albums, err := capable.GetSimilarAlbums(callCtx, nativeID, limit)
		cancel()
		if err != nil {
			s.metrics.ObserveProviderCall(p.ID(), "get_similar_albums", "error")
			slog.Warn("Provider similar-albums failed", "provider", p.ID(), "error", err)
			continue
		}
		s.metrics.ObserveProviderCall(p.ID(), "get_similar_albums", "ok")
		if len(albums) > 0 {
			return albums
		}
	}
	return []*music.Album{}
}

// GetArtistRadio returns a radio-style track list for an artist, degrading
// to a plain search seeded by the artist name like similar-tracks.
func (s *Service) GetArtistRadio(ctx context.Context, artist *music.Artist, limit int, source string) []*music.Track {
	if limit <= 0 {
		limit = s.searchLimit
	}
	for _, p := range s.metadataProviders(source) {
		md, ok := p.Capability(registry.RoleMetadata)
		if !ok {
			continue
		}
		capable, ok := md.(registry.ArtistRadioCapability)
		if !ok {
			continue
		}
		nativeID := ""
		if artist.ExternalIDs != nil {
			nativeID = artist.ExternalIDs[p.ID()]
		}
		if nativeID == "" {
			continue
		}
		callCtx, cancel := context.WithTimeout(ctx, s.callTimeout)
		tracks, err := capable.GetArtistRadio(callCtx, nativeID, limit)
		cancel()
		if err != nil {
			s.metrics.ObserveProviderCall(p.ID(), "get_artist_radio", "error")
			slog.Warn("Provider artist-radio failed", "provider", p.ID(), "error", err)
			continue
		}
		s.metrics.ObserveProviderCall(p.ID(), "get_artist_radio", "ok")
		if len(tracks) > 0 {
			return tracks
		}
	}

	if artist.Name != "" {
		results := s.Search(ctx, artist.Name, Options{Limit: limit})
		return results.Tracks
	}
	return []*music.Track{}
}
