package matching

import (
	"regexp"
	"strings"

	"github.com/gosimple/unidecode"
)

var (
	punctRegex      = regexp.MustCompile(`[^a-z0-9\s]+`)
	whitespaceRegex = regexp.MustCompile(`\s+`)
)

// Normalize prepares a string for similarity comparison: transliterate to
// ASCII, lowercase, strip non-alphanumerics, collapse whitespace.
func Normalize(s string) string {
	s = unidecode.Unidecode(s)
	s = strings.ToLower(s)
	s = punctRegex.ReplaceAllString(s, " ")
	s = whitespaceRegex.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// Similarity returns an edit-distance similarity ratio in [0,1] between the
// normalized forms of a and b.
func Similarity(a, b string) float64 {
	a, b = Normalize(a), Normalize(b)
	if a == b {
		return 1.0
	}
	if len(a) == 0 || len(b) == 0 {
		return 0.0
	}
	dist := levenshtein(a, b)
	longest := len(a)
	if len(b) > longest {
		longest = len(b)
	}
	return 1.0 - float64(dist)/float64(longest)
}

// levenshtein computes the edit distance between two strings with a
// two-row DP over bytes (inputs are ASCII after Normalize).
func levenshtein(a, b string) int {
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := 0; j <= len(b); j++ {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min3(curr[j-1]+1, prev[j]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}
