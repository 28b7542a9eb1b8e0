package mcp

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clipdex/clipdex-cli/internal/core/domain"
)

func newTestServer(t *testing.T, search *mockSearchService, index *mockIndexService) *Server {
	t.Helper()

	server, err := NewServer(&Ports{Search: search, Index: index})
	require.NoError(t, err)
	return server
}

func TestHandleSearch(t *testing.T) {
	search := &mockSearchService{
		results: []domain.Result{{
			VideoID:        "abc123",
			VideoTitle:     "Test Video",
			Text:           "a test phrase",
			ContextualText: "before a test phrase after",
			Start:          42,
			MatchType:      domain.MatchExact,
			MatchInfo:      "exact match",
			RelevanceScore: -1.5,
		}},
	}
	server := newTestServer(t, search, nil)

	_, out, err := server.handleSearch(context.Background(), nil, SearchInput{Query: "test phrase"})
	require.NoError(t, err)

	assert.Equal(t, "test phrase", search.lastQuery)
	assert.Equal(t, 10, search.lastLimit, "limit defaults to 10")
	assert.Equal(t, 1, out.Count)
	require.Len(t, out.Results, 1)
	assert.Equal(t, "abc123", out.Results[0].VideoID)
	assert.Equal(t, 42, out.Results[0].Start)
	assert.Equal(t, "exact", out.Results[0].MatchType)
	assert.Equal(t, -1.5, out.Results[0].Score)
}

func TestHandleSearch_CustomLimit(t *testing.T) {
	search := &mockSearchService{}
	server := newTestServer(t, search, nil)

	_, out, err := server.handleSearch(context.Background(), nil, SearchInput{Query: "q", Limit: 3})
	require.NoError(t, err)
	assert.Equal(t, 3, search.lastLimit)
	assert.Zero(t, out.Count)
}

func TestHandleSearch_Error(t *testing.T) {
	search := &mockSearchService{err: errors.New("index unavailable")}
	server := newTestServer(t, search, nil)

	_, _, err := server.handleSearch(context.Background(), nil, SearchInput{Query: "q"})
	assert.Error(t, err)
}

func TestHandleBuildIndex(t *testing.T) {
	index := &mockIndexService{
		stats: domain.BuildStats{VideosIndexed: 2, SegmentsIndexed: 9, ElapsedMS: 12},
	}
	server := newTestServer(t, &mockSearchService{}, index)

	_, out, err := server.handleBuildIndex(context.Background(), nil, BuildIndexInput{Force: true})
	require.NoError(t, err)

	assert.True(t, index.lastForce)
	assert.Equal(t, 2, out.VideosIndexed)
	assert.Equal(t, 9, out.SegmentsIndexed)
	assert.Equal(t, int64(12), out.TimeMS)
	assert.False(t, out.Skipped)
}

func TestHandleBuildIndex_Error(t *testing.T) {
	index := &mockIndexService{err: domain.ErrBuildInProgress}
	server := newTestServer(t, &mockSearchService{}, index)

	_, _, err := server.handleBuildIndex(context.Background(), nil, BuildIndexInput{})
	assert.ErrorIs(t, err, domain.ErrBuildInProgress)
}
