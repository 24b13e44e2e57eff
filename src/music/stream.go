package music

import "time"

// Quality identifies an audio stream quality tier.
type Quality string

const (
	QualityLow      Quality = "low"
	QualityHigh     Quality = "high"
	QualityLossless Quality = "lossless"
)

// StreamSource records that a specific provider knows this track under a
// provider-native ID. Sources accumulate on a track as resolution attempts
// succeed so later resolutions can skip identity matching.
type StreamSource struct {
	ProviderID string
	TrackID    string // provider-native track ID
	Available  bool
	Qualities  []Quality
}

// Supports reports whether the source advertises the given quality.
func (s *StreamSource) Supports(q Quality) bool {
	for _, have := range s.Qualities {
		if have == q {
			return true
		}
	}
	return false
}

// StreamInfo is a playable stream returned by a stream provider. URLs are
// valid for a single resolution attempt and are never cached by this layer.
type StreamInfo struct {
	URL        string
	Format     string
	Bitrate    int // kbps, 0 when unknown
	Quality    Quality
	ProviderID string
	ExpiresAt  time.Time
}
