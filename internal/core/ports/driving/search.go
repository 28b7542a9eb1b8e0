package driving

import (
	"context"

	"github.com/clipdex/clipdex-cli/internal/core/domain"
)

// SearchService serves full-text search over indexed transcript segments.
type SearchService interface {
	// Search returns up to limit formatted results, best first. A query
	// that matches nothing, or that tokenizes to nothing, returns an
	// empty slice and no error. Index failures degrade to an empty slice
	// rather than propagating; they are reported through the logger.
	Search(ctx context.Context, query string, limit int) ([]domain.Result, error)

	// Stats returns index totals and the current result-cache size.
	Stats(ctx context.Context) (domain.Stats, error)
}
