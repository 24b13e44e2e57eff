package music

import (
	"fmt"
	"strings"
)

// VariousArtistsName is the standard name for compilation albums
const VariousArtistsName = "Various Artists"

// RoleMain is the artist role assigned to the primary performer.
const RoleMain = "main"

// Artist represents a music artist.
type Artist struct {
	ID          string
	Name        string
	SortName    string
	Artwork     Artwork
	ExternalIDs map[string]string // provider ID -> provider-native artist ID
}

// ArtistRole represents the role of an artist on a track or album
type ArtistRole struct {
	Artist *Artist
	Role   string // main, featured, remixer, etc.
}

// Validate validates the artist fields.
func (a *Artist) Validate() error {
	if strings.TrimSpace(a.Name) == "" {
		return fmt.Errorf("artist name cannot be empty")
	}
	if len(a.Name) > 500 {
		return fmt.Errorf("artist name cannot exceed 500 characters")
	}
	if a.SortName != "" && len(a.SortName) > 500 {
		return fmt.Errorf("artist sort name cannot exceed 500 characters")
	}
	return nil
}
