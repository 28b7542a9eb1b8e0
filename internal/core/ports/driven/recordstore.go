package driven

import (
	"context"

	"github.com/clipdex/clipdex-cli/internal/core/domain"
)

// TranscriptStore reads per-video transcript records from wherever the
// extraction tooling deposits them. The core never writes to the store.
type TranscriptStore interface {
	// ListIDs returns the video IDs of every record present in the store.
	ListIDs(ctx context.Context) ([]string, error)

	// Load reads and decodes the record for a video ID.
	// Returns domain.ErrNotFound if no record exists for the ID.
	Load(ctx context.Context, videoID string) (*domain.TranscriptRecord, error)
}
