package registry

// Role is a capability category used to index providers for lookup.
type Role string

const (
	RoleMetadata         Role = "metadata"
	RoleSearch           Role = "search"
	RoleStream           Role = "stream"
	RoleLyrics           Role = "lyrics"
	RoleScrobble         Role = "scrobble"
	RoleTool             Role = "tool"
	RoleArtistEnrichment Role = "artist-enrichment"
	RoleArtwork          Role = "artwork"
	RoleLibrary          Role = "library"
)

// Manifest declares a provider's identity and default ordering.
type Manifest struct {
	ID              string `validate:"required"`
	Name            string
	DefaultPriority int // 0 means unset; the registry falls back to a constant
}
