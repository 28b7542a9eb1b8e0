package driving

import (
	"context"

	"github.com/clipdex/clipdex-cli/internal/core/domain"
)

// IndexService coordinates building the full-text index from the
// transcript record store.
type IndexService interface {
	// Build indexes store records not yet present in the index. With force
	// set, the index is wiped and rebuilt from scratch. Returns
	// domain.ErrBuildInProgress if another build is running.
	Build(ctx context.Context, force bool) (domain.BuildStats, error)

	// BuildAsync starts Build in the background and returns a channel that
	// delivers the single result when the build finishes. The build is
	// cancelled through ctx.
	BuildAsync(ctx context.Context, force bool) <-chan BuildResult

	// Ready reports whether at least one build has completed since startup.
	Ready() bool
}

// BuildResult is the outcome of a background build.
type BuildResult struct {
	// Stats summarises the build. Zero-valued when Err is set.
	Stats domain.BuildStats

	// Err is the build failure, if any.
	Err error
}
