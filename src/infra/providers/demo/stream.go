package demo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"harmonia/src/features/matching"
	"harmonia/src/features/registry"
	"harmonia/src/music"
)

// Stream is the demo stream provider. It intentionally has no direct
// metadata-based lookup, so resolving against it always goes through the
// free-text search plus fuzzy matching path.
type Stream struct{}

// NewStreamProvider builds the registered provider record for the demo
// stream source.
func NewStreamProvider() *registry.Provider {
	s := &Stream{}
	return registry.NewProvider(registry.Manifest{
		ID:              "demo-stream",
		Name:            "Demo Stream",
		DefaultPriority: 40,
	}).WithCapability(registry.RoleStream, s)
}

// SearchCandidates implements registry.StreamCapability.
func (s *Stream) SearchCandidates(ctx context.Context, query string, limit int) ([]matching.Candidate, error) {
	needle := matching.Normalize(query)
	var candidates []matching.Candidate
	for _, f := range fixtures {
		haystack := matching.Normalize(f.streamName + " " + f.artist)
		if needle != "" && !tokensOverlap(needle, haystack) {
			continue
		}
		candidates = append(candidates, matching.Candidate{
			ID:           f.streamID,
			Title:        f.streamName,
			Artist:       f.artist,
			Duration:     f.streamSecs,
			ExternalCode: f.isrc,
			Qualities:    []string{string(music.QualityLow), string(music.QualityHigh)},
		})
		if limit > 0 && len(candidates) >= limit {
			break
		}
	}
	return candidates, nil
}

// GetStream implements registry.StreamCapability with short-lived fake
// URLs.
func (s *Stream) GetStream(ctx context.Context, nativeID string, quality music.Quality) (*music.StreamInfo, error) {
	for _, f := range fixtures {
		if f.streamID != nativeID {
			continue
		}
		if quality == "" {
			quality = music.QualityHigh
		}
		bitrate := 320
		if quality == music.QualityLow {
			bitrate = 128
		}
		return &music.StreamInfo{
			URL:        fmt.Sprintf("https://demo.invalid/stream/%s?q=%s", nativeID, quality),
			Format:     "mp3",
			Bitrate:    bitrate,
			Quality:    quality,
			ProviderID: "demo-stream",
			ExpiresAt:  time.Now().Add(1 * time.Hour),
		}, nil
	}
	return nil, fmt.Errorf("unknown track %q", nativeID)
}

// tokensOverlap reports whether any query token appears in the haystack.
func tokensOverlap(needle, haystack string) bool {
	for _, token := range strings.Fields(needle) {
		if strings.Contains(haystack, token) {
			return true
		}
	}
	return false
}
