package mcp

import (
	"github.com/clipdex/clipdex-cli/internal/core/ports/driving"
)

// Ports aggregates the driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Search provides transcript search capabilities.
	Search driving.SearchService

	// Index manages index builds. Optional; the build_index tool is
	// registered only when it is set.
	Index driving.IndexService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Search == nil {
		return ErrMissingSearchService
	}
	return nil
}
