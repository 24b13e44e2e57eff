package registry

// Provider is a registered external capability implementation. Rather than
// one object implementing an open-ended union of interfaces, a provider is
// a record holding a small map from role to the implementation serving that
// role; callers fetch the typed capability they need.
type Provider struct {
	manifest     Manifest
	capabilities map[Role]any
}

// NewProvider creates a provider record from a manifest.
func NewProvider(manifest Manifest) *Provider {
	return &Provider{
		manifest:     manifest,
		capabilities: make(map[Role]any),
	}
}

// WithCapability attaches an implementation under a role and returns the
// provider for chaining during construction.
func (p *Provider) WithCapability(role Role, impl any) *Provider {
	p.capabilities[role] = impl
	return p
}

// ID returns the provider's stable unique ID.
func (p *Provider) ID() string { return p.manifest.ID }

// Name returns the provider's human-readable name.
func (p *Provider) Name() string {
	if p.manifest.Name != "" {
		return p.manifest.Name
	}
	return p.manifest.ID
}

// Manifest returns a copy of the provider's manifest.
func (p *Provider) Manifest() Manifest { return p.manifest }

// Roles returns the roles this provider declares.
func (p *Provider) Roles() []Role {
	roles := make([]Role, 0, len(p.capabilities))
	for role := range p.capabilities {
		roles = append(roles, role)
	}
	return roles
}

// Capability returns the raw implementation registered under role.
func (p *Provider) Capability(role Role) (any, bool) {
	impl, ok := p.capabilities[role]
	return impl, ok
}

// Search returns the provider's search capability, if declared.
func (p *Provider) Search() (SearchCapability, bool) {
	impl, ok := p.capabilities[RoleSearch].(SearchCapability)
	return impl, ok
}

// Metadata returns the provider's metadata capability, if declared.
func (p *Provider) Metadata() (MetadataCapability, bool) {
	impl, ok := p.capabilities[RoleMetadata].(MetadataCapability)
	return impl, ok
}

// Stream returns the provider's stream capability, if declared.
func (p *Provider) Stream() (StreamCapability, bool) {
	impl, ok := p.capabilities[RoleStream].(StreamCapability)
	return impl, ok
}

// MetadataLookup returns the optional direct-lookup extension of the
// provider's stream capability.
func (p *Provider) MetadataLookup() (MetadataLookupCapability, bool) {
	impl, ok := p.capabilities[RoleStream].(MetadataLookupCapability)
	return impl, ok
}

// Artwork returns the provider's artwork capability, if declared.
func (p *Provider) Artwork() (ArtworkCapability, bool) {
	impl, ok := p.capabilities[RoleArtwork].(ArtworkCapability)
	return impl, ok
}

// Lyrics returns the provider's lyrics capability, if declared.
func (p *Provider) Lyrics() (LyricsCapability, bool) {
	impl, ok := p.capabilities[RoleLyrics].(LyricsCapability)
	return impl, ok
}
