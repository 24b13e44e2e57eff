// Package demo provides built-in in-memory providers, registered in demo
// mode so the aggregation pipeline can be exercised without credentials
// for any real service.
package demo

import (
	"context"
	"fmt"
	"strings"

	"harmonia/src/features/matching"
	"harmonia/src/features/registry"
	"harmonia/src/music"
)

// Catalog is the demo metadata/search/artwork provider.
type Catalog struct{}

// NewCatalogProvider builds the registered provider record for the demo
// catalog.
func NewCatalogProvider() *registry.Provider {
	c := &Catalog{}
	return registry.NewProvider(registry.Manifest{
		ID:              "demo-catalog",
		Name:            "Demo Catalog",
		DefaultPriority: 50,
	}).
		WithCapability(registry.RoleSearch, c).
		WithCapability(registry.RoleMetadata, c).
		WithCapability(registry.RoleArtwork, c)
}

// Search implements registry.SearchCapability over the fixture catalog.
func (c *Catalog) Search(ctx context.Context, query string, opts registry.SearchOptions) (*music.SearchResults, error) {
	results := music.EmptySearchResults()
	results.Source = "demo-catalog"

	needle := matching.Normalize(query)
	for _, f := range fixtures {
		haystack := matching.Normalize(f.title + " " + f.artist + " " + f.album)
		if needle != "" && !strings.Contains(haystack, needle) {
			continue
		}
		results.Tracks = append(results.Tracks, c.toTrack(f))
		if opts.Limit > 0 && len(results.Tracks) >= opts.Limit {
			break
		}
	}
	return results, nil
}

// GetTrack implements registry.MetadataCapability.
func (c *Catalog) GetTrack(ctx context.Context, id string) (*music.Track, error) {
	for _, f := range fixtures {
		if f.catalogID == id {
			return c.toTrack(f), nil
		}
	}
	return nil, nil
}

// GetArtist implements registry.MetadataCapability.
func (c *Catalog) GetArtist(ctx context.Context, id string) (*music.Artist, error) {
	for _, f := range fixtures {
		if artistID(f.artist) == id {
			return c.toArtist(f), nil
		}
	}
	return nil, nil
}

// GetAlbum implements registry.MetadataCapability.
func (c *Catalog) GetAlbum(ctx context.Context, id string) (*music.Album, error) {
	for _, f := range fixtures {
		if albumID(f.album) != id {
			continue
		}
		album := c.toAlbum(f)
		for _, other := range fixtures {
			if other.album == f.album {
				album.Tracks = append(album.Tracks, c.toTrack(other))
			}
		}
		return album, nil
	}
	return nil, nil
}

// GetCharts implements the optional registry.ChartsCapability: the fixture
// list in catalog order stands in for a chart.
func (c *Catalog) GetCharts(ctx context.Context, limit int) ([]*music.Track, error) {
	tracks := make([]*music.Track, 0, len(fixtures))
	for _, f := range fixtures {
		tracks = append(tracks, c.toTrack(f))
		if limit > 0 && len(tracks) >= limit {
			break
		}
	}
	return tracks, nil
}

// GetSimilarTracks implements the optional capability: same-genre fixtures.
func (c *Catalog) GetSimilarTracks(ctx context.Context, trackID string, limit int) ([]*music.Track, error) {
	var seed *fixture
	for i := range fixtures {
		if fixtures[i].catalogID == trackID {
			seed = &fixtures[i]
			break
		}
	}
	if seed == nil {
		return nil, nil
	}

	var tracks []*music.Track
	for _, f := range fixtures {
		if f.catalogID == seed.catalogID || f.genre != seed.genre {
			continue
		}
		tracks = append(tracks, c.toTrack(f))
		if limit > 0 && len(tracks) >= limit {
			break
		}
	}
	return tracks, nil
}

// GetArtworkSet implements registry.ArtworkCapability with deterministic
// placeholder URLs.
func (c *Catalog) GetArtworkSet(ctx context.Context, album, artist, track string) (*music.Artwork, error) {
	for _, f := range fixtures {
		if !strings.EqualFold(f.album, album) && !strings.EqualFold(f.title, track) {
			continue
		}
		base := fmt.Sprintf("https://demo.invalid/art/%s", albumID(f.album))
		return &music.Artwork{
			Small:    base + "/56x56.jpg",
			Medium:   base + "/250x250.jpg",
			Large:    base + "/500x500.jpg",
			Original: base + "/original.jpg",
		}, nil
	}
	return nil, nil
}

func (c *Catalog) toTrack(f fixture) *music.Track {
	track := &music.Track{
		ID:       music.NewTrackID(),
		Title:    f.title,
		Artists:  []music.ArtistRole{{Artist: c.toArtist(f), Role: music.RoleMain}},
		Album:    c.toAlbum(f),
		Duration: f.duration,
		ISRC:     f.isrc,
	}
	track.SetExternalID("demo-catalog", f.catalogID)
	return track
}

func (c *Catalog) toArtist(f fixture) *music.Artist {
	return &music.Artist{
		ID:          music.NewTrackID(),
		Name:        f.artist,
		ExternalIDs: map[string]string{"demo-catalog": artistID(f.artist)},
	}
}

func (c *Catalog) toAlbum(f fixture) *music.Album {
	return &music.Album{
		ID:          music.NewTrackID(),
		Title:       f.album,
		Genre:       f.genre,
		Artists:     []music.ArtistRole{{Artist: &music.Artist{Name: f.artist}, Role: music.RoleMain}},
		ExternalIDs: map[string]string{"demo-catalog": albumID(f.album)},
	}
}

func artistID(name string) string {
	return "artist-" + strings.ReplaceAll(matching.Normalize(name), " ", "-")
}

func albumID(title string) string {
	return "album-" + strings.ReplaceAll(matching.Normalize(title), " ", "-")
}
