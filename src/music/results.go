package music

// SourceNone is the sentinel source tag for result sets produced with zero
// configured providers, so callers can tell "no providers" apart from
// "no results found".
const SourceNone = "none"

// SearchResults is the unified result set returned by search and lookup
// orchestration. Source names the provider that produced the primary
// results, or SourceNone.
type SearchResults struct {
	Tracks  []*Track
	Albums  []*Album
	Artists []*Artist
	Source  string
}

// EmptySearchResults returns a valid, empty result set tagged SourceNone.
func EmptySearchResults() *SearchResults {
	return &SearchResults{
		Tracks:  []*Track{},
		Albums:  []*Album{},
		Artists: []*Artist{},
		Source:  SourceNone,
	}
}
