// Package resolving turns a metadata-only unified track into a playable
// stream by trying stream-capable providers in priority order, resolving
// provider-native identity along the way.
package resolving

import (
	"context"
	"log/slog"
	"time"

	"harmonia/src/features/matching"
	"harmonia/src/features/metrics"
	"harmonia/src/features/registry"
	"harmonia/src/music"
)

const (
	// freeTextLimit caps the candidates requested from a provider's
	// free-text search before matching.
	freeTextLimit = 10

	// defaultCallTimeout bounds a single provider call when the config
	// does not say otherwise.
	defaultCallTimeout = 10 * time.Second
)

// Service resolves unified tracks to playable streams.
type Service struct {
	registry    *registry.Service
	metrics     *metrics.Metrics
	callTimeout time.Duration
}

// NewService creates a stream resolver. A zero callTimeout selects the
// default per-call timeout.
func NewService(reg *registry.Service, m *metrics.Metrics, callTimeout time.Duration) *Service {
	if callTimeout <= 0 {
		callTimeout = defaultCallTimeout
	}
	return &Service{registry: reg, metrics: m, callTimeout: callTimeout}
}

// ResolveStream resolves the track to a playable stream, or nil when no
// enabled provider can play it. Exhaustion is a normal outcome, never an
// error: provider failures are absorbed here and logged with the provider
// ID. The provider list is snapshotted once, so priority changes made
// mid-resolution do not affect this pass.
func (s *Service) ResolveStream(ctx context.Context, track *music.Track, preferred music.Quality) *music.StreamInfo {
	start := time.Now()
	providers := s.registry.GetByRole(registry.RoleStream)

	for _, p := range providers {
		if ctx.Err() != nil {
			break
		}
		info := s.tryProvider(ctx, p, track, preferred)
		if info != nil {
			s.metrics.ObserveResolution("resolved", time.Since(start))
			slog.Info("Stream resolved", "track", track.Title, "provider", p.ID(), "quality", info.Quality)
			return info
		}
	}

	s.metrics.ObserveResolution("unresolved", time.Since(start))
	slog.Info("No stream available", "track", track.Title, "providers_tried", len(providers))
	return nil
}

// tryProvider runs one per-provider attempt: reuse a recorded stream
// source, else direct metadata lookup, else free-text search scored by the
// matcher; then fetch the stream for the resolved identity. Any provider
// error means this provider failed and resolution falls through.
func (s *Service) tryProvider(ctx context.Context, p *registry.Provider, track *music.Track, preferred music.Quality) *music.StreamInfo {
	stream, ok := p.Stream()
	if !ok {
		return nil
	}

	nativeID := s.resolveIdentity(ctx, p, stream, track)
	if nativeID == "" {
		return nil
	}

	callCtx, cancel := context.WithTimeout(ctx, s.callTimeout)
	defer cancel()
	info, err := stream.GetStream(callCtx, nativeID, preferred)
	if err != nil {
		s.metrics.ObserveProviderCall(p.ID(), "get_stream", "error")
		slog.Warn("Provider failed to deliver stream", "provider", p.ID(), "track", track.Title, "error", err)
		return nil
	}
	s.metrics.ObserveProviderCall(p.ID(), "get_stream", "ok")
	if info != nil && info.ProviderID == "" {
		info.ProviderID = p.ID()
	}
	return info
}

// resolveIdentity finds the provider-native track ID, recording a stream
// source on the track for future reuse. Returns "" when identity could not
// be established with this provider.
func (s *Service) resolveIdentity(ctx context.Context, p *registry.Provider, stream registry.StreamCapability, track *music.Track) string {
	// A recorded, available source skips identity resolution entirely.
	if src := track.StreamSource(p.ID()); src != nil && src.Available {
		return src.TrackID
	}

	if lookup, ok := p.MetadataLookup(); ok {
		return s.lookupByMetadata(ctx, p, lookup, track)
	}
	return s.lookupBySearch(ctx, p, stream, track)
}

func (s *Service) lookupByMetadata(ctx context.Context, p *registry.Provider, lookup registry.MetadataLookupCapability, track *music.Track) string {
	params := registry.LookupParams{
		Title:        track.Title,
		Artist:       track.PrimaryArtist(),
		Duration:     track.Duration,
		ExternalCode: track.ISRC,
	}
	if track.Album != nil {
		params.Album = track.Album.Title
	}

	callCtx, cancel := context.WithTimeout(ctx, s.callTimeout)
	defer cancel()
	candidate, err := lookup.SearchByMetadata(callCtx, params)
	if err != nil {
		s.metrics.ObserveProviderCall(p.ID(), "search_by_metadata", "error")
		slog.Warn("Provider metadata lookup failed", "provider", p.ID(), "track", track.Title, "error", err)
		return ""
	}
	s.metrics.ObserveProviderCall(p.ID(), "search_by_metadata", "ok")
	if candidate == nil {
		return ""
	}

	track.AddStreamSource(music.StreamSource{
		ProviderID: p.ID(),
		TrackID:    candidate.ID,
		Available:  true,
		Qualities:  toQualities(candidate.Qualities),
	})
	return candidate.ID
}

func (s *Service) lookupBySearch(ctx context.Context, p *registry.Provider, stream registry.StreamCapability, track *music.Track) string {
	query := track.Title
	if artist := track.PrimaryArtist(); artist != "" {
		query = artist + " " + track.Title
	}

	callCtx, cancel := context.WithTimeout(ctx, s.callTimeout)
	defer cancel()
	candidates, err := stream.SearchCandidates(callCtx, query, freeTextLimit)
	if err != nil {
		s.metrics.ObserveProviderCall(p.ID(), "search", "error")
		slog.Warn("Provider search failed", "provider", p.ID(), "track", track.Title, "error", err)
		return ""
	}
	s.metrics.ObserveProviderCall(p.ID(), "search", "ok")

	matcher := matching.NewMatcher()
	match := matcher.BestMatch(matching.Source{
		Title:        track.Title,
		Artist:       track.PrimaryArtist(),
		Duration:     track.Duration,
		ExternalCode: track.ISRC,
	}, candidates)
	if match == nil {
		slog.Debug("No acceptable match among candidates", "provider", p.ID(), "track", track.Title, "candidates", len(candidates))
		return ""
	}

	track.AddStreamSource(music.StreamSource{
		ProviderID: p.ID(),
		TrackID:    match.Candidate.ID,
		Available:  true,
		Qualities:  toQualities(match.Candidate.Qualities),
	})
	track.MatchConfidence = matcher.LastConfidence()
	return match.Candidate.ID
}

func toQualities(values []string) []music.Quality {
	qualities := make([]music.Quality, 0, len(values))
	for _, v := range values {
		qualities = append(qualities, music.Quality(v))
	}
	return qualities
}
