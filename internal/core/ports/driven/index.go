package driven

import (
	"context"

	"github.com/clipdex/clipdex-cli/internal/core/domain"
)

// SegmentIndex is the full-text index over transcript segments.
// Backed by a SQLite FTS5 virtual table.
//
// Sole writer is the index builder; sole readers are the query planner and
// the context expander.
type SegmentIndex interface {
	// Insert adds segments to the index.
	Insert(ctx context.Context, segments []domain.TranscriptSegment) error

	// DeleteAll removes every indexed segment (force rebuild).
	DeleteAll(ctx context.Context) error

	// IndexedVideoIDs returns the set of distinct video IDs in the index.
	IndexedVideoIDs(ctx context.Context) (map[string]struct{}, error)

	// Search runs a boolean match expression (tokens joined with AND/OR)
	// and returns up to limit hits ordered by bm25 score ascending, each
	// with the engine's native highlighting applied.
	Search(ctx context.Context, match string, limit int) ([]IndexHit, error)

	// Window returns all segments of one video whose start time lies in
	// [fromSec, toSec], ordered by start time ascending.
	Window(ctx context.Context, videoID string, fromSec, toSec int) ([]domain.TranscriptSegment, error)

	// Stats returns distinct-video and segment counts.
	Stats(ctx context.Context) (domain.IndexStats, error)

	// Close releases the underlying storage.
	Close() error
}

// IndexHit is a raw full-text match before ranking and formatting.
type IndexHit struct {
	// Segment is the matched transcript segment.
	Segment domain.TranscriptSegment

	// Highlighted is the segment text with matched terms wrapped in
	// domain.HighlightOpen/HighlightClose markers.
	Highlighted string

	// Score is the bm25 relevance score. Lower is a closer match.
	Score float64
}
