package music

// Artwork holds image URLs from external sources in the sizes providers
// commonly expose. Animated is an optional motion-artwork variant.
type Artwork struct {
	Small    string
	Medium   string
	Large    string
	Original string
	Animated string
}

// Empty reports whether no static artwork variant is set.
func (a Artwork) Empty() bool {
	return a.Small == "" && a.Medium == "" && a.Large == "" && a.Original == ""
}

// Merge fills empty fields of a from other. Fields already set on a win;
// late-arriving artwork never clobbers what the primary result supplied.
func (a *Artwork) Merge(other Artwork) {
	if a.Small == "" {
		a.Small = other.Small
	}
	if a.Medium == "" {
		a.Medium = other.Medium
	}
	if a.Large == "" {
		a.Large = other.Large
	}
	if a.Original == "" {
		a.Original = other.Original
	}
	if a.Animated == "" {
		a.Animated = other.Animated
	}
}
