package registry

import (
	"context"

	"harmonia/src/features/matching"
	"harmonia/src/music"
)

// SearchOptions bounds a catalog search.
type SearchOptions struct {
	Limit  int
	Offset int
}

// SearchCapability is a provider that can run a unified catalog search.
type SearchCapability interface {
	Search(ctx context.Context, query string, opts SearchOptions) (*music.SearchResults, error)
}

// MetadataCapability is a provider that can look up catalog entities by
// its own native IDs. A nil entity with a nil error means "not found".
type MetadataCapability interface {
	GetTrack(ctx context.Context, id string) (*music.Track, error)
	GetArtist(ctx context.Context, id string) (*music.Artist, error)
	GetAlbum(ctx context.Context, id string) (*music.Album, error)
}

// Optional metadata capabilities. Callers must feature-detect these with a
// type assertion before calling; providers are free to not implement them.
type (
	ChartsCapability interface {
		GetCharts(ctx context.Context, limit int) ([]*music.Track, error)
	}
	SimilarTracksCapability interface {
		GetSimilarTracks(ctx context.Context, trackID string, limit int) ([]*music.Track, error)
	}
	SimilarAlbumsCapability interface {
		GetSimilarAlbums(ctx context.Context, albumID string, limit int) ([]*music.Album, error)
	}
	ArtistRadioCapability interface {
		GetArtistRadio(ctx context.Context, artistID string, limit int) ([]*music.Track, error)
	}
)

// LookupParams identifies a recording for a direct metadata-based lookup
// on a stream provider.
type LookupParams struct {
	Title        string
	Artist       string
	Album        string
	Duration     int // seconds, 0 when unknown
	ExternalCode string
}

// StreamCapability is a provider that can produce playable streams for its
// own native track IDs.
type StreamCapability interface {
	// SearchCandidates runs a free-text search and returns match candidates.
	SearchCandidates(ctx context.Context, query string, limit int) ([]matching.Candidate, error)
	// GetStream fetches a playable stream. An empty quality requests the
	// provider default.
	GetStream(ctx context.Context, nativeID string, quality music.Quality) (*music.StreamInfo, error)
}

// MetadataLookupCapability is an optional extension of StreamCapability for
// providers that support direct metadata-based identity resolution. A nil
// candidate with a nil error means "no hit".
type MetadataLookupCapability interface {
	SearchByMetadata(ctx context.Context, params LookupParams) (*matching.Candidate, error)
}

// ArtworkCapability is a provider that can fetch artwork sets. A nil set
// with a nil error means "no artwork found".
type ArtworkCapability interface {
	GetArtworkSet(ctx context.Context, album, artist, track string) (*music.Artwork, error)
}

// LyricsCapability is a provider that can fetch lyrics text.
type LyricsCapability interface {
	GetLyrics(ctx context.Context, title, artist, album string) (string, error)
}

// ScrobbleCapability is a provider that records playback events.
type ScrobbleCapability interface {
	Scrobble(ctx context.Context, track *music.Track) error
}
