package mcp

import (
	"context"

	"github.com/clipdex/clipdex-cli/internal/core/domain"
	"github.com/clipdex/clipdex-cli/internal/core/ports/driving"
)

// mockSearchService is a mock implementation of driving.SearchService.
type mockSearchService struct {
	results   []domain.Result
	stats     domain.Stats
	err       error
	lastQuery string
	lastLimit int
}

func (m *mockSearchService) Search(_ context.Context, query string, limit int) ([]domain.Result, error) {
	m.lastQuery = query
	m.lastLimit = limit
	return m.results, m.err
}

func (m *mockSearchService) Stats(_ context.Context) (domain.Stats, error) {
	return m.stats, m.err
}

// mockIndexService is a mock implementation of driving.IndexService.
type mockIndexService struct {
	stats     domain.BuildStats
	err       error
	lastForce bool
}

func (m *mockIndexService) Build(_ context.Context, force bool) (domain.BuildStats, error) {
	m.lastForce = force
	return m.stats, m.err
}

func (m *mockIndexService) BuildAsync(ctx context.Context, force bool) <-chan driving.BuildResult {
	done := make(chan driving.BuildResult, 1)
	stats, err := m.Build(ctx, force)
	done <- driving.BuildResult{Stats: stats, Err: err}
	close(done)
	return done
}

func (m *mockIndexService) Ready() bool {
	return true
}
