package resolving

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"harmonia/src/music"
)

// batchSize bounds in-flight resolutions so downstream providers are not
// overwhelmed or rate limited.
const batchSize = 3

// ResolveStreams resolves every track in the list, preserving exactly one
// result entry per input track ID (nil when that track has no stream).
// Tracks are processed sequentially in chunks of batchSize; within a chunk
// all resolutions run concurrently and the next chunk does not start until
// the current one fully completes, failures included.
func (s *Service) ResolveStreams(ctx context.Context, tracks []*music.Track, preferred music.Quality) map[string]*music.StreamInfo {
	results := make(map[string]*music.StreamInfo, len(tracks))
	var mu sync.Mutex

	for start := 0; start < len(tracks); start += batchSize {
		end := start + batchSize
		if end > len(tracks) {
			end = len(tracks)
		}

		g, chunkCtx := errgroup.WithContext(ctx)
		for _, track := range tracks[start:end] {
			track := track
			g.Go(func() error {
				info := s.ResolveStream(chunkCtx, track, preferred)
				mu.Lock()
				results[track.ID] = info
				mu.Unlock()
				return nil
			})
		}
		// Resolutions never return errors; Wait is a chunk barrier.
		_ = g.Wait()
	}
	return results
}
