package cli

import (
	"context"
	"testing"

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
	stats      domain.BuildStats
	err        error
	lastForce  bool
	buildCalls int
}

func (m *mockIndexService) Build(_ context.Context, force bool) (domain.BuildStats, error) {
	m.buildCalls++
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
	return m.buildCalls > 0
}

// setupTestServices wires mock services into the command tree and returns
// the mocks plus a cleanup restoring the previous wiring.
func setupTestServices(t *testing.T) (*mockSearchService, *mockIndexService, func()) {
	t.Helper()

	prevSearch, prevIndex := searchService, indexService
	search := &mockSearchService{
		results: []domain.Result{{
			VideoID:         "abc123",
			VideoTitle:      "Test Video",
			Text:            "a test phrase",
			HighlightedText: "a " + domain.HighlightOpen + "test" + domain.HighlightClose + " phrase",
			ContextualText:  "a " + domain.HighlightOpen + "test" + domain.HighlightClose + " phrase",
			Start:           42,
			Method:          "json",
			MatchType:       domain.MatchExact,
			MatchInfo:       "exact match",
		}},
		stats: domain.Stats{
			IndexStats: domain.IndexStats{TotalVideos: 3, TotalSegments: 120},
			CacheSize:  2,
		},
	}
	index := &mockIndexService{
		stats: domain.BuildStats{VideosIndexed: 3, SegmentsIndexed: 120, ElapsedMS: 7},
	}

	searchService = search
	indexService = index

	return search, index, func() {
		searchService = prevSearch
		indexService = prevIndex
		searchLimit = 10
		searchJSONFlag = false
		statsJSONFlag = false
		indexForce = false
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	}
}
