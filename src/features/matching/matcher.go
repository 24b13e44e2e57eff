// Package matching decides whether entities from different providers
// represent the same real-world recording, and how confident that
// decision is. It performs no I/O.
package matching

// Candidate is a provider-native search result considered during matching.
// Candidates are ephemeral and never persisted.
type Candidate struct {
	ID           string
	Title        string
	Artist       string
	Duration     int    // seconds, 0 when unknown
	ExternalCode string // ISRC or equivalent industry code
	Qualities    []string
}

// Source is the entity a candidate is matched against.
type Source struct {
	Title        string
	Artist       string
	Duration     int // seconds, 0 when unknown
	ExternalCode string
}

// Match is the best accepted candidate plus the matcher's confidence.
// Confidence 1.0 is reserved for exact external-code matches; fuzzy
// matches are capped below it.
type Match struct {
	Candidate  Candidate
	Confidence float64
}

const (
	// AcceptThreshold is the minimum score a fuzzy candidate must reach.
	AcceptThreshold = 0.7

	titleWeight    = 0.50
	artistWeight   = 0.35
	durationWeight = 0.15

	// Duration gets full credit within the tolerance and decays linearly
	// to zero at durationZeroAt seconds of difference.
	durationToleranceSecs = 5
	durationZeroAtSecs    = 30

	// Fuzzy scores never reach 1.0; that value belongs to external-code
	// matches alone.
	fuzzyCeiling = 0.99
)

// Matcher scores candidates against a source entity. It remembers the
// confidence of its most recent decision so callers can propagate match
// quality onto the resulting unified entity. Not safe for concurrent use;
// create one per resolution pass.
type Matcher struct {
	lastConfidence float64
}

func NewMatcher() *Matcher {
	return &Matcher{}
}

// LastConfidence returns the confidence of the most recent BestMatch call,
// 0 when that call found no match.
func (m *Matcher) LastConfidence() float64 {
	return m.lastConfidence
}

// BestMatch returns the candidate most likely to be the same recording as
// the source, or nil when no candidate clears the acceptance threshold.
// An exact external-code match short-circuits with confidence 1.0. Ties
// are broken deterministically: the first candidate encountered wins.
func (m *Matcher) BestMatch(source Source, candidates []Candidate) *Match {
	m.lastConfidence = 0
	if len(candidates) == 0 {
		return nil
	}

	if source.ExternalCode != "" {
		for _, c := range candidates {
			if c.ExternalCode != "" && c.ExternalCode == source.ExternalCode {
				m.lastConfidence = 1.0
				return &Match{Candidate: c, Confidence: 1.0}
			}
		}
	}

	var best *Match
	for _, c := range candidates {
		score := m.score(source, c)
		if score < AcceptThreshold {
			continue
		}
		if best == nil || score > best.Confidence {
			best = &Match{Candidate: c, Confidence: score}
		}
	}
	if best == nil {
		return nil
	}
	m.lastConfidence = best.Confidence
	return best
}

func (m *Matcher) score(source Source, c Candidate) float64 {
	score := titleWeight * Similarity(source.Title, c.Title)
	score += artistWeight * Similarity(source.Artist, c.Artist)
	score += durationScore(source.Duration, c.Duration)
	if score > fuzzyCeiling {
		score = fuzzyCeiling
	}
	return score
}

func durationScore(a, b int) float64 {
	if a <= 0 || b <= 0 {
		return 0
	}
	diff := a - b
	if diff < 0 {
		diff = -diff
	}
	if diff <= durationToleranceSecs {
		return durationWeight
	}
	if diff >= durationZeroAtSecs {
		return 0
	}
	span := float64(durationZeroAtSecs - durationToleranceSecs)
	return durationWeight * (1 - float64(diff-durationToleranceSecs)/span)
}
