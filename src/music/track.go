package music

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Track is the unified, provider-independent representation of a recording.
// It is created when a search or lookup converts a provider-native result
// and is owned by the caller; the orchestration layer never persists it.
type Track struct {
	ID              string
	Title           string
	TitleVersion    string // Version info (remix, live, etc.)
	Artists         []ArtistRole
	Album           *Album
	Duration        int // seconds
	Artwork         Artwork
	ISRC            string
	ExternalIDs     map[string]string // provider ID -> provider-native track ID
	StreamSources   []StreamSource
	MatchConfidence float64 // confidence of the last cross-provider match
	ExplicitContent bool
	PreviewURL      string // URL for 30-second preview
}

// NewTrackID generates a fresh internal track ID.
func NewTrackID() string {
	return uuid.New().String()
}

// PrimaryArtist returns the name of the first main artist, or the first
// artist of any role when no main artist is present.
func (t *Track) PrimaryArtist() string {
	for _, ar := range t.Artists {
		if ar.Role == RoleMain && ar.Artist != nil {
			return ar.Artist.Name
		}
	}
	if len(t.Artists) > 0 && t.Artists[0].Artist != nil {
		return t.Artists[0].Artist.Name
	}
	return ""
}

// ArtistNames returns all artist names joined for display.
func (t *Track) ArtistNames() string {
	var names []string
	for _, ar := range t.Artists {
		if ar.Artist != nil {
			names = append(names, ar.Artist.Name)
		}
	}
	return strings.Join(names, ", ")
}

// StreamSource returns the recorded stream source for the given provider,
// or nil if none has been recorded yet.
func (t *Track) StreamSource(providerID string) *StreamSource {
	for i := range t.StreamSources {
		if t.StreamSources[i].ProviderID == providerID {
			return &t.StreamSources[i]
		}
	}
	return nil
}

// AddStreamSource records a stream source on the track. An existing entry
// for the same provider is replaced in place so repeated resolutions never
// accumulate duplicates.
func (t *Track) AddStreamSource(src StreamSource) {
	for i := range t.StreamSources {
		if t.StreamSources[i].ProviderID == src.ProviderID {
			t.StreamSources[i] = src
			return
		}
	}
	t.StreamSources = append(t.StreamSources, src)
}

// ExternalID returns the provider-native ID recorded for the provider.
func (t *Track) ExternalID(providerID string) string {
	if t.ExternalIDs == nil {
		return ""
	}
	return t.ExternalIDs[providerID]
}

// SetExternalID records a provider-native ID on the track.
func (t *Track) SetExternalID(providerID, nativeID string) {
	if t.ExternalIDs == nil {
		t.ExternalIDs = make(map[string]string)
	}
	t.ExternalIDs[providerID] = nativeID
}

// Validate validates the track fields.
func (t *Track) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return fmt.Errorf("track title cannot be empty")
	}
	if len(t.Title) > 500 {
		return fmt.Errorf("title cannot exceed 500 characters, got %d: title -> %s", len(t.Title), t.Title)
	}
	if len(t.Artists) == 0 {
		return fmt.Errorf("track must have at least one artist: title -> %s", t.Title)
	}
	for i, artistRole := range t.Artists {
		if artistRole.Artist == nil {
			return fmt.Errorf("track artist at index %d cannot be nil", i)
		}
		if err := artistRole.Artist.Validate(); err != nil {
			return fmt.Errorf("invalid artist in track: %w", err)
		}
	}
	if t.ISRC != "" && len(t.ISRC) > 12 {
		return fmt.Errorf("ISRC cannot exceed 12 characters, got %d: isrc -> %s", len(t.ISRC), t.ISRC)
	}
	if t.Duration < 0 {
		return fmt.Errorf("duration cannot be negative, got %d", t.Duration)
	}
	if t.MatchConfidence < 0 || t.MatchConfidence > 1 {
		return fmt.Errorf("match confidence must be in [0,1], got %f", t.MatchConfidence)
	}
	if t.PreviewURL != "" && len(t.PreviewURL) > 500 {
		return fmt.Errorf("preview URL cannot exceed 500 characters, got %d", len(t.PreviewURL))
	}
	return nil
}
