package matching

import "testing"

func TestBestMatch_ExternalCodeShortCircuits(t *testing.T) {
	m := NewMatcher()
	source := Source{Title: "Completely Different", Artist: "Nobody", Duration: 10, ExternalCode: "USSM18200341"}
	candidates := []Candidate{
		{ID: "1", Title: "Billie Jean", Artist: "Michael Jackson", Duration: 294, ExternalCode: "USSM18200341"},
	}

	match := m.BestMatch(source, candidates)
	if match == nil {
		t.Fatal("expected a match")
	}
	if match.Confidence != 1.0 {
		t.Errorf("external-code match must have confidence exactly 1.0, got %f", match.Confidence)
	}
	if m.LastConfidence() != 1.0 {
		t.Errorf("LastConfidence must track the decision, got %f", m.LastConfidence())
	}
}

func TestBestMatch_NearIdenticalScoresHigh(t *testing.T) {
	m := NewMatcher()
	source := Source{Title: "Billie Jean", Artist: "Michael Jackson", Duration: 294}
	candidates := []Candidate{
		{ID: "1", Title: "Billie Jean", Artist: "Michael Jackson", Duration: 296},
	}

	match := m.BestMatch(source, candidates)
	if match == nil {
		t.Fatal("expected a match")
	}
	if match.Confidence < 0.95 {
		t.Errorf("identical title/artist within duration tolerance must score >= 0.95, got %f", match.Confidence)
	}
	if match.Confidence >= 1.0 {
		t.Errorf("fuzzy matches must stay below 1.0, got %f", match.Confidence)
	}
}

func TestBestMatch_DissimilarRejectedDespiteDuration(t *testing.T) {
	m := NewMatcher()
	source := Source{Title: "Billie Jean", Artist: "Michael Jackson", Duration: 294}
	candidates := []Candidate{
		{ID: "1", Title: "Symphony No. 9 in D minor", Artist: "Wiener Philharmoniker", Duration: 294},
	}

	if match := m.BestMatch(source, candidates); match != nil {
		t.Errorf("dissimilar candidate must be rejected, got confidence %f", match.Confidence)
	}
	if m.LastConfidence() != 0 {
		t.Errorf("no-match must leave confidence 0, got %f", m.LastConfidence())
	}
}

func TestBestMatch_PunctuationAndSmallDurationDrift(t *testing.T) {
	m := NewMatcher()
	source := Source{Title: "Let It Be", Artist: "The Beatles", Duration: 243}
	candidates := []Candidate{
		{ID: "1", Title: "let it be!", Artist: "the beatles", Duration: 246},
	}

	match := m.BestMatch(source, candidates)
	if match == nil {
		t.Fatal("expected a match")
	}
	if match.Confidence <= 0.9 {
		t.Errorf("expected confidence > 0.9 for punctuation/duration drift only, got %f", match.Confidence)
	}
}

func TestBestMatch_EmptyCandidates(t *testing.T) {
	m := NewMatcher()
	if match := m.BestMatch(Source{Title: "Anything"}, nil); match != nil {
		t.Error("empty candidate list must yield no match")
	}
	if m.LastConfidence() != 0 {
		t.Errorf("expected confidence 0, got %f", m.LastConfidence())
	}
}

func TestBestMatch_TieBreakFirstWins(t *testing.T) {
	m := NewMatcher()
	source := Source{Title: "Billie Jean", Artist: "Michael Jackson", Duration: 294}
	candidates := []Candidate{
		{ID: "first", Title: "Billie Jean", Artist: "Michael Jackson", Duration: 294},
		{ID: "second", Title: "Billie Jean", Artist: "Michael Jackson", Duration: 294},
	}

	match := m.BestMatch(source, candidates)
	if match == nil {
		t.Fatal("expected a match")
	}
	if match.Candidate.ID != "first" {
		t.Errorf("equal scores must keep the first candidate, got %q", match.Candidate.ID)
	}
}

func TestBestMatch_PicksHighestScore(t *testing.T) {
	m := NewMatcher()
	source := Source{Title: "Uptown Funk", Artist: "Mark Ronson", Duration: 270}
	candidates := []Candidate{
		{ID: "live", Title: "Uptown Funk (Live at Wembley)", Artist: "Mark Ronson", Duration: 330},
		{ID: "studio", Title: "Uptown Funk", Artist: "Mark Ronson", Duration: 269},
	}

	match := m.BestMatch(source, candidates)
	if match == nil {
		t.Fatal("expected a match")
	}
	if match.Candidate.ID != "studio" {
		t.Errorf("expected the studio version to win, got %q", match.Candidate.ID)
	}
}

func TestNormalize(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Let It Be!", "let it be"},
		{"  Beyoncé — HALO ", "beyonce halo"},
		{"AC/DC", "ac dc"},
		{"Sigur Rós", "sigur ros"},
		{"Track   (feat. Someone)", "track feat someone"},
	}
	for _, c := range cases {
		if got := Normalize(c.in); got != c.want {
			t.Errorf("Normalize(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestSimilarity(t *testing.T) {
	if got := Similarity("Billie Jean", "billie jean!"); got != 1.0 {
		t.Errorf("normalized-equal strings must score 1.0, got %f", got)
	}
	if got := Similarity("", "anything"); got != 0.0 {
		t.Errorf("empty string must score 0, got %f", got)
	}
	mid := Similarity("Billie Jean", "Billie Jean Remix")
	if mid <= 0.5 || mid >= 1.0 {
		t.Errorf("partial overlap must score between 0.5 and 1.0, got %f", mid)
	}
}
