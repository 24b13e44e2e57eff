package resolving

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"harmonia/src/features/matching"
	"harmonia/src/features/registry"
	"harmonia/src/music"
)

// fakeStream is a stream provider without direct metadata lookup, so
// resolving against it goes through free-text search plus matching.
type fakeStream struct {
	id         string
	candidates []matching.Candidate
	searchErr  error
	streamErr  error

	mu          sync.Mutex // batch resolution calls concurrently
	searchCalls int
	streamCalls int
}

func (f *fakeStream) SearchCandidates(ctx context.Context, query string, limit int) ([]matching.Candidate, error) {
	f.mu.Lock()
	f.searchCalls++
	f.mu.Unlock()
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	if limit < len(f.candidates) {
		return f.candidates[:limit], nil
	}
	return f.candidates, nil
}

func (f *fakeStream) GetStream(ctx context.Context, nativeID string, quality music.Quality) (*music.StreamInfo, error) {
	f.mu.Lock()
	f.streamCalls++
	f.mu.Unlock()
	if f.streamErr != nil {
		return nil, f.streamErr
	}
	return &music.StreamInfo{
		URL:        fmt.Sprintf("https://%s.invalid/%s", f.id, nativeID),
		Format:     "mp3",
		Quality:    quality,
		ProviderID: f.id,
	}, nil
}

// fakeLookupStream additionally supports direct metadata-based lookup.
type fakeLookupStream struct {
	fakeStream
	lookupCandidate *matching.Candidate
	lookupErr       error
	lookupCalls     int
}

func (f *fakeLookupStream) SearchByMetadata(ctx context.Context, params registry.LookupParams) (*matching.Candidate, error) {
	f.lookupCalls++
	if f.lookupErr != nil {
		return nil, f.lookupErr
	}
	return f.lookupCandidate, nil
}

func registerStream(t *testing.T, reg *registry.Service, id string, priority int, impl any) {
	t.Helper()
	p := registry.NewProvider(registry.Manifest{ID: id, DefaultPriority: priority}).
		WithCapability(registry.RoleStream, impl)
	if err := reg.Register(p); err != nil {
		t.Fatalf("failed to register %s: %v", id, err)
	}
}

func testTrack() *music.Track {
	return &music.Track{
		ID:       music.NewTrackID(),
		Title:    "Billie Jean",
		Artists:  []music.ArtistRole{{Artist: &music.Artist{Name: "Michael Jackson"}, Role: music.RoleMain}},
		Duration: 294,
	}
}

func TestResolveStream_NoProviders(t *testing.T) {
	s := NewService(registry.NewService(nil), nil, 0)
	if info := s.ResolveStream(context.Background(), testTrack(), ""); info != nil {
		t.Errorf("expected nil stream with zero providers, got %v", info)
	}
}

func TestResolveStream_FuzzySearchPathRecordsSource(t *testing.T) {
	reg := registry.NewService(nil)
	stream := &fakeStream{id: "tidewave", candidates: []matching.Candidate{
		{ID: "tw-1", Title: "billie jean", Artist: "michael jackson", Duration: 295},
	}}
	registerStream(t, reg, "tidewave", 50, stream)

	s := NewService(reg, nil, 0)
	track := testTrack()

	info := s.ResolveStream(context.Background(), track, music.QualityHigh)
	if info == nil {
		t.Fatal("expected a stream")
	}
	if info.ProviderID != "tidewave" {
		t.Errorf("expected provider tidewave, got %q", info.ProviderID)
	}

	src := track.StreamSource("tidewave")
	if src == nil || src.TrackID != "tw-1" || !src.Available {
		t.Fatalf("expected recorded stream source for tidewave, got %+v", src)
	}
	if track.MatchConfidence <= 0.9 {
		t.Errorf("expected match confidence recorded on track, got %f", track.MatchConfidence)
	}
}

func TestResolveStream_SecondResolveReusesSource(t *testing.T) {
	reg := registry.NewService(nil)
	stream := &fakeStream{id: "tidewave", candidates: []matching.Candidate{
		{ID: "tw-1", Title: "Billie Jean", Artist: "Michael Jackson", Duration: 294},
	}}
	registerStream(t, reg, "tidewave", 50, stream)

	s := NewService(reg, nil, 0)
	track := testTrack()

	s.ResolveStream(context.Background(), track, "")
	s.ResolveStream(context.Background(), track, "")

	if stream.searchCalls != 1 {
		t.Errorf("second resolve must reuse the recorded source, got %d search calls", stream.searchCalls)
	}
	if len(track.StreamSources) != 1 {
		t.Errorf("duplicate sources must not accumulate, got %d", len(track.StreamSources))
	}
}

func TestResolveStream_MetadataLookupPath(t *testing.T) {
	reg := registry.NewService(nil)
	stream := &fakeLookupStream{
		fakeStream:      fakeStream{id: "songbird"},
		lookupCandidate: &matching.Candidate{ID: "sb-7", Title: "Billie Jean", Artist: "Michael Jackson", Duration: 294},
	}
	registerStream(t, reg, "songbird", 50, stream)

	s := NewService(reg, nil, 0)
	track := testTrack()

	info := s.ResolveStream(context.Background(), track, "")
	if info == nil {
		t.Fatal("expected a stream")
	}
	if stream.lookupCalls != 1 {
		t.Errorf("expected direct metadata lookup, got %d lookup calls", stream.lookupCalls)
	}
	if stream.searchCalls != 0 {
		t.Errorf("free-text search must be skipped when lookup hits, got %d calls", stream.searchCalls)
	}
	if src := track.StreamSource("songbird"); src == nil || src.TrackID != "sb-7" {
		t.Fatalf("expected recorded source from lookup, got %+v", src)
	}
}

func TestResolveStream_FailingProviderFallsThrough(t *testing.T) {
	reg := registry.NewService(nil)
	broken := &fakeStream{id: "broken", searchErr: errors.New("connection refused")}
	working := &fakeStream{id: "working", candidates: []matching.Candidate{
		{ID: "w-1", Title: "Billie Jean", Artist: "Michael Jackson", Duration: 294},
	}}
	registerStream(t, reg, "broken", 90, broken)
	registerStream(t, reg, "working", 10, working)

	s := NewService(reg, nil, 0)
	info := s.ResolveStream(context.Background(), testTrack(), "")
	if info == nil {
		t.Fatal("expected fallback to the working provider")
	}
	if info.ProviderID != "working" {
		t.Errorf("expected provider working, got %q", info.ProviderID)
	}
	if broken.searchCalls != 1 {
		t.Errorf("higher-priority provider must have been tried first, got %d calls", broken.searchCalls)
	}
}

func TestResolveStream_StreamFetchFailureFallsThrough(t *testing.T) {
	reg := registry.NewService(nil)
	flaky := &fakeStream{
		id:        "flaky",
		streamErr: errors.New("stream expired"),
		candidates: []matching.Candidate{
			{ID: "f-1", Title: "Billie Jean", Artist: "Michael Jackson", Duration: 294},
		},
	}
	registerStream(t, reg, "flaky", 90, flaky)

	s := NewService(reg, nil, 0)
	if info := s.ResolveStream(context.Background(), testTrack(), ""); info != nil {
		t.Errorf("expected nil when the only provider cannot deliver the stream, got %v", info)
	}
}

func TestResolveStream_NoAcceptableMatch(t *testing.T) {
	reg := registry.NewService(nil)
	stream := &fakeStream{id: "tidewave", candidates: []matching.Candidate{
		{ID: "x-1", Title: "Something Else Entirely", Artist: "Another Band", Duration: 294},
	}}
	registerStream(t, reg, "tidewave", 50, stream)

	s := NewService(reg, nil, 0)
	track := testTrack()
	if info := s.ResolveStream(context.Background(), track, ""); info != nil {
		t.Errorf("expected nil when no candidate matches, got %v", info)
	}
	if len(track.StreamSources) != 0 {
		t.Errorf("rejected matches must not record sources, got %d", len(track.StreamSources))
	}
}

// slowStream stalls in SearchCandidates and tracks how many calls are in
// flight at once.
type slowStream struct {
	mu          sync.Mutex
	inFlight    int
	maxInFlight int
}

func (f *slowStream) SearchCandidates(ctx context.Context, query string, limit int) ([]matching.Candidate, error) {
	f.mu.Lock()
	f.inFlight++
	if f.inFlight > f.maxInFlight {
		f.maxInFlight = f.inFlight
	}
	f.mu.Unlock()

	time.Sleep(20 * time.Millisecond)

	f.mu.Lock()
	f.inFlight--
	f.mu.Unlock()
	return nil, nil
}

func (f *slowStream) GetStream(ctx context.Context, nativeID string, quality music.Quality) (*music.StreamInfo, error) {
	return nil, errors.New("no candidates ever match")
}

// blockingStream never answers until the per-call deadline expires.
type blockingStream struct{}

func (f *blockingStream) SearchCandidates(ctx context.Context, query string, limit int) ([]matching.Candidate, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func (f *blockingStream) GetStream(ctx context.Context, nativeID string, quality music.Quality) (*music.StreamInfo, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func TestResolveStream_HungProviderTimesOutAndFallsThrough(t *testing.T) {
	reg := registry.NewService(nil)
	working := &fakeStream{id: "working", candidates: []matching.Candidate{
		{ID: "w-1", Title: "Billie Jean", Artist: "Michael Jackson", Duration: 294},
	}}
	registerStream(t, reg, "hung", 90, &blockingStream{})
	registerStream(t, reg, "working", 10, working)

	s := NewService(reg, nil, 50*time.Millisecond)
	start := time.Now()
	info := s.ResolveStream(context.Background(), testTrack(), "")

	if info == nil {
		t.Fatal("a hung provider must count as a failure, not block resolution")
	}
	if info.ProviderID != "working" {
		t.Errorf("expected fallback to working provider, got %q", info.ProviderID)
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Errorf("resolution must be bounded by the per-call timeout, took %v", elapsed)
	}
}

func TestResolveStreams_ConcurrencyNeverExceedsChunkSize(t *testing.T) {
	reg := registry.NewService(nil)
	slow := &slowStream{}
	registerStream(t, reg, "slow", 50, slow)

	tracks := make([]*music.Track, 9)
	for i := range tracks {
		tracks[i] = testTrack()
	}

	s := NewService(reg, nil, 0)
	s.ResolveStreams(context.Background(), tracks, "")

	if slow.maxInFlight > batchSize {
		t.Errorf("expected at most %d in-flight resolutions, observed %d", batchSize, slow.maxInFlight)
	}
	if slow.maxInFlight == 0 {
		t.Error("expected the slow provider to be called at all")
	}
}

func TestResolveStreams_OneResultPerTrack(t *testing.T) {
	reg := registry.NewService(nil)
	stream := &fakeStream{id: "tidewave", candidates: []matching.Candidate{
		{ID: "tw-1", Title: "Billie Jean", Artist: "Michael Jackson", Duration: 294},
	}}
	registerStream(t, reg, "tidewave", 50, stream)

	tracks := []*music.Track{
		testTrack(),
		{ID: music.NewTrackID(), Title: "Unresolvable Obscurity", Artists: []music.ArtistRole{{Artist: &music.Artist{Name: "Nobody"}, Role: music.RoleMain}}, Duration: 100},
		testTrack(),
		testTrack(),
		{ID: music.NewTrackID(), Title: "Another Miss", Artists: []music.ArtistRole{{Artist: &music.Artist{Name: "No One"}, Role: music.RoleMain}}, Duration: 50},
		testTrack(),
		testTrack(),
	}

	s := NewService(reg, nil, 0)
	results := s.ResolveStreams(context.Background(), tracks, "")

	if len(results) != len(tracks) {
		t.Fatalf("expected %d result entries, got %d", len(tracks), len(results))
	}
	for _, track := range tracks {
		info, present := results[track.ID]
		if !present {
			t.Fatalf("missing result entry for track %q", track.Title)
		}
		resolvable := track.Title == "Billie Jean"
		if resolvable && info == nil {
			t.Errorf("expected a stream for %q", track.Title)
		}
		if !resolvable && info != nil {
			t.Errorf("expected nil for %q, got %v", track.Title, info)
		}
	}
}
