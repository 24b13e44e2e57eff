package browsing

import (
	"context"
	"errors"
	"testing"

	"harmonia/src/features/registry"
	"harmonia/src/music"
)

type fakeSearch struct {
	results *music.SearchResults
	err     error
	calls   int
	queries []string
	limits  []int
}

func (f *fakeSearch) Search(ctx context.Context, query string, opts registry.SearchOptions) (*music.SearchResults, error) {
	f.calls++
	f.queries = append(f.queries, query)
	f.limits = append(f.limits, opts.Limit)
	if f.err != nil {
		return nil, f.err
	}
	return f.results, nil
}

type fakeMetadata struct {
	track *music.Track
	err   error
	calls int
}

func (f *fakeMetadata) GetTrack(ctx context.Context, id string) (*music.Track, error) {
	f.calls++
	return f.track, f.err
}

func (f *fakeMetadata) GetArtist(ctx context.Context, id string) (*music.Artist, error) {
	return nil, f.err
}

func (f *fakeMetadata) GetAlbum(ctx context.Context, id string) (*music.Album, error) {
	return nil, f.err
}

// fakeChartsMetadata additionally implements the optional charts capability.
type fakeChartsMetadata struct {
	fakeMetadata
	charts []*music.Track
}

func (f *fakeChartsMetadata) GetCharts(ctx context.Context, limit int) ([]*music.Track, error) {
	return f.charts, nil
}

type fakeArtwork struct {
	set   *music.Artwork
	err   error
	calls int
}

func (f *fakeArtwork) GetArtworkSet(ctx context.Context, album, artist, track string) (*music.Artwork, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.set, nil
}

func register(t *testing.T, reg *registry.Service, id string, priority int, role registry.Role, impl any) {
	t.Helper()
	p := registry.NewProvider(registry.Manifest{ID: id, DefaultPriority: priority}).
		WithCapability(role, impl)
	if err := reg.Register(p); err != nil {
		t.Fatalf("failed to register %s: %v", id, err)
	}
}

func searchResults(titles ...string) *music.SearchResults {
	r := music.EmptySearchResults()
	r.Source = ""
	for _, title := range titles {
		r.Tracks = append(r.Tracks, &music.Track{
			ID:      music.NewTrackID(),
			Title:   title,
			Artists: []music.ArtistRole{{Artist: &music.Artist{Name: "Someone"}, Role: music.RoleMain}},
		})
	}
	return r
}

func TestSearch_NoProviders(t *testing.T) {
	s := NewService(registry.NewService(nil), nil, 0, 0)

	results := s.Search(context.Background(), "anything", Options{})
	if results == nil {
		t.Fatal("search must always return a result set")
	}
	if results.Source != music.SourceNone {
		t.Errorf("expected source %q, got %q", music.SourceNone, results.Source)
	}
	if len(results.Tracks) != 0 || len(results.Artists) != 0 || len(results.Albums) != 0 {
		t.Error("expected empty result sections")
	}
}

func TestSearch_FallsBackOnPrimaryFailure(t *testing.T) {
	reg := registry.NewService(nil)
	primary := &fakeSearch{err: errors.New("rate limited")}
	secondary := &fakeSearch{results: searchResults("Halo")}
	register(t, reg, "primary", 90, registry.RoleSearch, primary)
	register(t, reg, "secondary", 10, registry.RoleSearch, secondary)

	s := NewService(reg, nil, 0, 0)
	results := s.Search(context.Background(), "halo", Options{})

	if results.Source != "secondary" {
		t.Errorf("expected source secondary, got %q", results.Source)
	}
	if primary.calls != 1 {
		t.Errorf("higher-priority provider must be tried first, got %d calls", primary.calls)
	}
	if len(results.Tracks) != 1 || results.Tracks[0].Title != "Halo" {
		t.Fatalf("unexpected results %+v", results.Tracks)
	}
}

func TestSearch_ExplicitSourceOverride(t *testing.T) {
	reg := registry.NewService(nil)
	preferred := &fakeSearch{results: searchResults("A")}
	override := &fakeSearch{results: searchResults("B")}
	register(t, reg, "preferred", 90, registry.RoleSearch, preferred)
	register(t, reg, "override", 10, registry.RoleSearch, override)

	s := NewService(reg, nil, 0, 0)
	results := s.Search(context.Background(), "q", Options{Source: "override"})

	if results.Source != "override" {
		t.Errorf("expected source override, got %q", results.Source)
	}
	if preferred.calls != 0 {
		t.Errorf("explicit source must skip higher-priority providers, got %d calls", preferred.calls)
	}
}

func TestSearch_ConfiguredLimitAppliedWhenUnset(t *testing.T) {
	reg := registry.NewService(nil)
	catalog := &fakeSearch{results: searchResults("A")}
	register(t, reg, "catalog", 90, registry.RoleSearch, catalog)

	s := NewService(reg, nil, 0, 7)
	s.Search(context.Background(), "q", Options{})
	s.Search(context.Background(), "q", Options{Limit: 3})

	if len(catalog.limits) != 2 || catalog.limits[0] != 7 {
		t.Fatalf("configured limit must apply when the caller sets none, got %v", catalog.limits)
	}
	if catalog.limits[1] != 3 {
		t.Errorf("an explicit limit must win over the configured one, got %v", catalog.limits)
	}
}

func TestSearch_UnknownSourceFallsBackToPriorityOrder(t *testing.T) {
	reg := registry.NewService(nil)
	preferred := &fakeSearch{results: searchResults("A")}
	register(t, reg, "preferred", 90, registry.RoleSearch, preferred)

	s := NewService(reg, nil, 0, 0)
	results := s.Search(context.Background(), "q", Options{Source: "missing"})

	if results.Source != "preferred" {
		t.Errorf("unknown source must fall back to priority order, got %q", results.Source)
	}
}

func TestSearch_ArtworkEnrichmentMergesMissingFieldsOnly(t *testing.T) {
	reg := registry.NewService(nil)
	found := searchResults("Halo")
	found.Tracks[0].Artwork = music.Artwork{Small: "https://origin.invalid/small.jpg"}
	register(t, reg, "catalog", 90, registry.RoleSearch, &fakeSearch{results: found})

	art := &fakeArtwork{set: &music.Artwork{
		Small: "https://art.invalid/small.jpg",
		Large: "https://art.invalid/large.jpg",
	}}
	register(t, reg, "artie", 50, registry.RoleArtwork, art)

	s := NewService(reg, nil, 0, 0)
	results := s.Search(context.Background(), "halo", Options{})

	got := results.Tracks[0].Artwork
	if got.Small != "https://origin.invalid/small.jpg" {
		t.Errorf("existing artwork field must win, got %q", got.Small)
	}
	if got.Large != "https://art.invalid/large.jpg" {
		t.Errorf("missing artwork field must be filled, got %q", got.Large)
	}
}

func TestSearch_ArtworkProviderFailureAbsorbed(t *testing.T) {
	reg := registry.NewService(nil)
	register(t, reg, "catalog", 90, registry.RoleSearch, &fakeSearch{results: searchResults("Halo")})
	register(t, reg, "artie", 50, registry.RoleArtwork, &fakeArtwork{err: errors.New("boom")})

	s := NewService(reg, nil, 0, 0)
	results := s.Search(context.Background(), "halo", Options{})
	if results.Source != "catalog" || len(results.Tracks) != 1 {
		t.Fatalf("artwork failure must not affect search results, got %+v", results)
	}
}

func TestSearch_ArtworkCacheSkipsRepeatCalls(t *testing.T) {
	reg := registry.NewService(nil)
	art := &fakeArtwork{set: &music.Artwork{Large: "https://art.invalid/large.jpg"}}
	register(t, reg, "catalog", 90, registry.RoleSearch, &fakeSearch{results: searchResults("Halo")})
	register(t, reg, "artie", 50, registry.RoleArtwork, art)

	s := NewService(reg, nil, 0, 0)
	s.Search(context.Background(), "halo", Options{})
	s.Search(context.Background(), "halo", Options{})

	if art.calls != 1 {
		t.Errorf("repeated searches must hit the artwork cache, got %d provider calls", art.calls)
	}
}

func TestGetTrack_FallsThroughAndReturnsNil(t *testing.T) {
	reg := registry.NewService(nil)
	broken := &fakeMetadata{err: errors.New("timeout")}
	register(t, reg, "broken", 90, registry.RoleMetadata, broken)

	s := NewService(reg, nil, 0, 0)
	if track := s.GetTrack(context.Background(), "id-1", ""); track != nil {
		t.Errorf("expected nil when the only provider fails, got %v", track)
	}
	if broken.calls != 1 {
		t.Errorf("expected one provider call, got %d", broken.calls)
	}
}

func TestGetTrack_SecondProviderWins(t *testing.T) {
	reg := registry.NewService(nil)
	want := &music.Track{ID: music.NewTrackID(), Title: "Halo"}
	register(t, reg, "broken", 90, registry.RoleMetadata, &fakeMetadata{err: errors.New("down")})
	register(t, reg, "working", 10, registry.RoleMetadata, &fakeMetadata{track: want})

	s := NewService(reg, nil, 0, 0)
	track := s.GetTrack(context.Background(), "id-1", "")
	if track == nil || track.Title != "Halo" {
		t.Fatalf("expected fallback lookup to succeed, got %v", track)
	}
}

func TestGetCharts_SkipsProvidersWithoutCapability(t *testing.T) {
	reg := registry.NewService(nil)
	register(t, reg, "plain", 90, registry.RoleMetadata, &fakeMetadata{})
	charts := &fakeChartsMetadata{charts: []*music.Track{{ID: music.NewTrackID(), Title: "Number One"}}}
	register(t, reg, "charty", 10, registry.RoleMetadata, charts)

	s := NewService(reg, nil, 0, 0)
	got := s.GetCharts(context.Background(), 0, "")
	if len(got) != 1 || got[0].Title != "Number One" {
		t.Fatalf("expected charts from the capable provider, got %+v", got)
	}
}

func TestGetCharts_EmptyWithoutCapableProviders(t *testing.T) {
	reg := registry.NewService(nil)
	register(t, reg, "plain", 90, registry.RoleMetadata, &fakeMetadata{})

	s := NewService(reg, nil, 0, 0)
	if got := s.GetCharts(context.Background(), 10, ""); got == nil || len(got) != 0 {
		t.Fatalf("expected empty chart list, got %v", got)
	}
}

func TestGetSimilarTracks_FallsBackToArtistSearch(t *testing.T) {
	reg := registry.NewService(nil)
	register(t, reg, "plain", 90, registry.RoleMetadata, &fakeMetadata{})
	seeded := &fakeSearch{results: searchResults("Deep Cut")}
	register(t, reg, "catalog", 50, registry.RoleSearch, seeded)

	s := NewService(reg, nil, 0, 0)
	track := &music.Track{
		ID:      music.NewTrackID(),
		Title:   "Halo",
		Artists: []music.ArtistRole{{Artist: &music.Artist{Name: "Beyonce"}, Role: music.RoleMain}},
	}

	got := s.GetSimilarTracks(context.Background(), track, 5, "")
	if len(got) != 1 || got[0].Title != "Deep Cut" {
		t.Fatalf("expected artist-seeded search fallback, got %+v", got)
	}
	if len(seeded.queries) != 1 || seeded.queries[0] != "Beyonce" {
		t.Errorf("fallback search must be seeded by the artist name, got %v", seeded.queries)
	}
}

func TestGetArtistRadio_FallsBackToSearch(t *testing.T) {
	reg := registry.NewService(nil)
	seeded := &fakeSearch{results: searchResults("Radio Pick")}
	register(t, reg, "catalog", 50, registry.RoleSearch, seeded)

	s := NewService(reg, nil, 0, 0)
	got := s.GetArtistRadio(context.Background(), &music.Artist{Name: "Beyonce"}, 5, "")
	if len(got) != 1 || got[0].Title != "Radio Pick" {
		t.Fatalf("expected search-backed radio, got %+v", got)
	}
}
