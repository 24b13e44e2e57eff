package browsing

import (
	"context"
	"log/slog"

	"harmonia/src/features/registry"
	"harmonia/src/music"
)

// Options tunes a unified search.
type Options struct {
	Source string // explicit provider override, empty for priority order
	Limit  int
	Offset int
}

// Search runs a unified search across search-capable providers in priority
// order and enriches bare results with artwork from secondary providers.
// With zero configured providers (or all failing) the result is a valid
// empty set tagged music.SourceNone; Search never returns an error.
func (s *Service) Search(ctx context.Context, query string, opts Options) *music.SearchResults {
	if opts.Limit <= 0 {
		opts.Limit = s.searchLimit
	}

	providers := s.searchProviders(opts.Source)
	results := music.EmptySearchResults()

	for _, p := range providers {
		search, ok := p.Search()
		if !ok {
			continue
		}
		callCtx, cancel := context.WithTimeout(ctx, s.callTimeout)
		found, err := search.Search(callCtx, query, registry.SearchOptions{Limit: opts.Limit, Offset: opts.Offset})
		cancel()
		if err != nil {
			s.metrics.ObserveProviderCall(p.ID(), "search", "error")
			slog.Warn("Provider search failed", "provider", p.ID(), "query", query, "error", err)
			continue
		}
		s.metrics.ObserveProviderCall(p.ID(), "search", "ok")
		if found == nil {
			continue
		}
		results = found
		if results.Source == "" {
			results.Source = p.ID()
		}
		break
	}

	s.enrichArtwork(ctx, results.Tracks)
	s.metrics.ObserveSearch(results.Source)
	return results
}

func (s *Service) searchProviders(source string) []*registry.Provider {
	if source != "" {
		if p, ok := s.registry.Get(source); ok {
			return []*registry.Provider{p}
		}
		slog.Warn("Requested search source not available, falling back to priority order", "source", source)
	}
	return s.registry.GetByRole(registry.RoleSearch)
}

// enrichArtwork queries artwork-capable providers in priority order for
// every track still missing artwork or its animated variant. Existing
// non-empty fields always win over late-arriving ones; failures from any
// one provider are absorbed. Best effort: enrichment never fails a search.
func (s *Service) enrichArtwork(ctx context.Context, tracks []*music.Track) {
	providers := s.registry.GetByRole(registry.RoleArtwork)
	if len(providers) == 0 {
		return
	}

	for _, track := range tracks {
		if !track.Artwork.Empty() && track.Artwork.Animated != "" {
			continue
		}
		album := ""
		if track.Album != nil {
			album = track.Album.Title
		}
		artist := track.PrimaryArtist()

		if set, ok := s.cachedArtwork(album, artist, track.Title); ok {
			track.Artwork.Merge(set)
			continue
		}

		for _, p := range providers {
			capable, ok := p.Artwork()
			if !ok {
				continue
			}
			callCtx, cancel := context.WithTimeout(ctx, s.callTimeout)
			set, err := capable.GetArtworkSet(callCtx, album, artist, track.Title)
			cancel()
			if err != nil {
				s.metrics.ObserveProviderCall(p.ID(), "get_artwork", "error")
				slog.Debug("Artwork provider failed", "provider", p.ID(), "album", album, "error", err)
				continue
			}
			s.metrics.ObserveProviderCall(p.ID(), "get_artwork", "ok")
			if set == nil || set.Empty() && set.Animated == "" {
				continue
			}
			track.Artwork.Merge(*set)
			s.cacheArtwork(album, artist, track.Title, *set)
			break
		}
	}
}

func artworkKey(album, artist, track string) string {
	key := album + "|" + artist
	if album == "" {
		key += "|" + track
	}
	return key
}

func (s *Service) cachedArtwork(album, artist, track string) (music.Artwork, bool) {
	if s.artworkLRU == nil {
		return music.Artwork{}, false
	}
	return s.artworkLRU.Get(artworkKey(album, artist, track))
}

func (s *Service) cacheArtwork(album, artist, track string, set music.Artwork) {
	if s.artworkLRU == nil {
		return
	}
	s.artworkLRU.Add(artworkKey(album, artist, track), set)
}
