package services

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"

	"github.com/clipdex/clipdex-cli/internal/core/domain"
	"github.com/clipdex/clipdex-cli/internal/core/ports/driven"
	"github.com/clipdex/clipdex-cli/internal/core/ports/driving"
	"github.com/clipdex/clipdex-cli/internal/logger"
)

// Ensure Builder implements the interface.
var _ driving.IndexService = (*Builder)(nil)

// Zero-segment records stay out of the index but carry no persistent skip
// marker, so every incremental build would re-read them. The limiter caps
// how often they are re-parsed; a force build always reconsiders everything.
const (
	emptyRecheckInterval = 30 * time.Second
	emptyRecheckBurst    = 10
)

// Builder populates the segment index from the transcript record store.
// Incremental by default: records whose video ID is already indexed are
// left alone. One builder instance is the index's sole writer.
type Builder struct {
	store driven.TranscriptStore
	index driven.SegmentIndex

	mu         sync.Mutex
	building   bool
	knownEmpty map[string]struct{}
	emptyRetry *rate.Limiter

	ready atomic.Bool
}

// NewBuilder creates an index builder.
func NewBuilder(store driven.TranscriptStore, index driven.SegmentIndex) *Builder {
	return &Builder{
		store:      store,
		index:      index,
		knownEmpty: make(map[string]struct{}),
		emptyRetry: rate.NewLimiter(rate.Every(emptyRecheckInterval), emptyRecheckBurst),
	}
}

// Build implements driving.IndexService.
//
// Source-data failures (unreadable or malformed records, empty segment
// lists) are logged, counted, and skipped; only index failures abort the
// build. Incremental builds are monotonic-additive, force builds are
// idempotent in content.
func (b *Builder) Build(ctx context.Context, force bool) (domain.BuildStats, error) {
	if b.index == nil {
		return domain.BuildStats{}, domain.ErrIndexUnavailable
	}
	if b.store == nil {
		return domain.BuildStats{}, domain.ErrStoreUnavailable
	}
	if !b.tryAcquire() {
		return domain.BuildStats{}, domain.ErrBuildInProgress
	}
	defer b.release()

	start := time.Now()
	logger.Section("Index Build")
	logger.Debug("Force: %t", force)

	ids, err := b.store.ListIDs(ctx)
	if err != nil {
		return domain.BuildStats{}, fmt.Errorf("list records: %w", err)
	}
	logger.Debug("Store records: %d", len(ids))

	pending := ids
	if force {
		if err := b.index.DeleteAll(ctx); err != nil {
			return domain.BuildStats{}, fmt.Errorf("clear index: %w", err)
		}
		b.resetKnownEmpty()
		logger.Info("Force rebuild: index cleared")
	} else {
		indexed, err := b.index.IndexedVideoIDs(ctx)
		if err != nil {
			return domain.BuildStats{}, fmt.Errorf("indexed videos: %w", err)
		}
		pending = pending[:0:0]
		for _, id := range ids {
			if _, ok := indexed[id]; !ok {
				pending = append(pending, id)
			}
		}
		if len(pending) == 0 {
			stats, err := b.index.Stats(ctx)
			if err != nil {
				return domain.BuildStats{}, fmt.Errorf("index stats: %w", err)
			}
			logger.Info("Index already covers all %d records, skipping build", len(ids))
			b.ready.Store(true)
			return domain.BuildStats{
				VideosIndexed:   stats.TotalVideos,
				SegmentsIndexed: stats.TotalSegments,
				Skipped:         true,
			}, nil
		}
		logger.Info("Indexing %d new records", len(pending))
	}

	stats := domain.BuildStats{}
	for _, id := range pending {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		if !force && b.shouldSkipEmpty(id) {
			stats.EmptyRecords++
			continue
		}

		rec, err := b.store.Load(ctx, id)
		if err != nil {
			logger.Warn("Skipping unreadable record %s: %v", id, err)
			stats.FailedRecords++
			continue
		}
		if rec.Empty() {
			logger.Debug("Skipping empty transcript %s", id)
			b.markEmpty(id)
			stats.EmptyRecords++
			continue
		}

		segments := make([]domain.TranscriptSegment, len(rec.Segments))
		for i, seg := range rec.Segments {
			segments[i] = domain.TranscriptSegment{
				VideoID:    rec.VideoID,
				VideoTitle: rec.VideoTitle,
				Text:       seg.Text,
				StartTime:  seg.StartTime,
				Method:     rec.Method,
			}
		}
		if err := b.index.Insert(ctx, segments); err != nil {
			return stats, fmt.Errorf("index %s: %w", id, err)
		}

		stats.VideosIndexed++
		stats.SegmentsIndexed += len(segments)
	}

	stats.ElapsedMS = time.Since(start).Milliseconds()
	logger.Info("Build complete: %d videos, %d segments in %dms (%d empty, %d failed)",
		stats.VideosIndexed, stats.SegmentsIndexed, stats.ElapsedMS,
		stats.EmptyRecords, stats.FailedRecords)

	b.ready.Store(true)
	return stats, nil
}

// BuildAsync implements driving.IndexService.
func (b *Builder) BuildAsync(ctx context.Context, force bool) <-chan driving.BuildResult {
	done := make(chan driving.BuildResult, 1)
	go func() {
		stats, err := b.Build(ctx, force)
		done <- driving.BuildResult{Stats: stats, Err: err}
		close(done)
	}()
	return done
}

// Ready implements driving.IndexService.
func (b *Builder) Ready() bool {
	return b.ready.Load()
}

func (b *Builder) tryAcquire() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.building {
		return false
	}
	b.building = true
	return true
}

func (b *Builder) release() {
	b.mu.Lock()
	b.building = false
	b.mu.Unlock()
}

// shouldSkipEmpty reports whether a record previously seen without
// segments should be skipped this build instead of re-parsed.
func (b *Builder) shouldSkipEmpty(id string) bool {
	b.mu.Lock()
	_, known := b.knownEmpty[id]
	b.mu.Unlock()
	return known && !b.emptyRetry.Allow()
}

func (b *Builder) markEmpty(id string) {
	b.mu.Lock()
	b.knownEmpty[id] = struct{}{}
	b.mu.Unlock()
}

func (b *Builder) resetKnownEmpty() {
	b.mu.Lock()
	b.knownEmpty = make(map[string]struct{})
	b.mu.Unlock()
}
