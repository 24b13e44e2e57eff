package music

import (
	"fmt"
	"strings"
	"time"
)

type AlbumType string

const (
	AlbumTypeCompilation AlbumType = "compilation"
	AlbumTypeSoundtrack  AlbumType = "soundtrack"
	AlbumTypeEP          AlbumType = "ep"
	AlbumTypeSingle      AlbumType = "single"
	AlbumTypeDefault     AlbumType = "default"
)

// Album represents a collection of tracks.
type Album struct {
	ID          string
	Title       string
	Type        AlbumType
	Artists     []ArtistRole
	Tracks      []*Track
	ReleaseDate time.Time
	Label       string
	Barcode     string
	Genre       string
	Artwork     Artwork
	ExternalIDs map[string]string // provider ID -> provider-native album ID
}

// PrimaryArtist returns the name of the album's first main artist.
func (a *Album) PrimaryArtist() string {
	for _, ar := range a.Artists {
		if ar.Role == RoleMain && ar.Artist != nil {
			return ar.Artist.Name
		}
	}
	if len(a.Artists) > 0 && a.Artists[0].Artist != nil {
		return a.Artists[0].Artist.Name
	}
	return ""
}

// Validate validates the album fields.
func (a *Album) Validate() error {
	if strings.TrimSpace(a.Title) == "" {
		return fmt.Errorf("album title cannot be empty")
	}
	if len(a.Title) > 500 {
		return fmt.Errorf("album title cannot exceed 500 characters")
	}
	for _, artistRole := range a.Artists {
		if artistRole.Artist == nil {
			return fmt.Errorf("album artist cannot be nil")
		}
		if err := artistRole.Artist.Validate(); err != nil {
			return fmt.Errorf("invalid artist in album: %w", err)
		}
	}
	if a.Label != "" && len(a.Label) > 200 {
		return fmt.Errorf("label cannot exceed 200 characters")
	}
	if a.Barcode != "" && len(a.Barcode) > 50 {
		return fmt.Errorf("barcode cannot exceed 50 characters")
	}
	if a.Genre != "" && len(a.Genre) > 100 {
		return fmt.Errorf("genre cannot exceed 100 characters")
	}
	return nil
}
