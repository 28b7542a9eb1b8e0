package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// SearchInput is the input schema for the search tool.
type SearchInput struct {
	Query string `json:"query" jsonschema:"the phrase to search for in transcripts"`
	Limit int    `json:"limit,omitempty" jsonschema:"maximum number of results to return (default 10)"`
}

// SearchOutput is the output schema for the search tool.
type SearchOutput struct {
	Results []SearchResultOutput `json:"results"`
	Count   int                  `json:"count"`
}

// SearchResultOutput represents a single transcript match.
type SearchResultOutput struct {
	VideoID        string  `json:"video_id"`
	VideoTitle     string  `json:"video_title"`
	Start          int     `json:"start_seconds"`
	Text           string  `json:"text"`
	ContextualText string  `json:"contextual_text,omitempty"`
	Score          float64 `json:"score"`
	MatchType      string  `json:"match_type"`
	MatchInfo      string  `json:"match_info"`
}

// BuildIndexInput is the input schema for the build_index tool.
type BuildIndexInput struct {
	Force bool `json:"force,omitempty" jsonschema:"drop the index and rebuild it from scratch"`
}

// BuildIndexOutput is the output schema for the build_index tool.
type BuildIndexOutput struct {
	VideosIndexed   int   `json:"videos_indexed"`
	SegmentsIndexed int   `json:"segments_indexed"`
	EmptyRecords    int   `json:"empty_records"`
	FailedRecords   int   `json:"failed_records"`
	TimeMS          int64 `json:"time_ms"`
	Skipped         bool  `json:"skipped"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search",
		Description: "Search indexed video transcripts for a phrase and return timestamped matches",
	}, s.handleSearch)

	if s.ports.Index != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "build_index",
			Description: "Build or rebuild the transcript search index",
		}, s.handleBuildIndex)
	}
}

// handleSearch handles the search_transcripts tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = 10
	}

	results, err := s.ports.Search.Search(ctx, input.Query, limit)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	output := SearchOutput{
		Results: make([]SearchResultOutput, len(results)),
		Count:   len(results),
	}

	for i := range results {
		output.Results[i] = SearchResultOutput{
			VideoID:        results[i].VideoID,
			VideoTitle:     results[i].VideoTitle,
			Start:          results[i].Start,
			Text:           results[i].Text,
			ContextualText: results[i].ContextualText,
			Score:          results[i].RelevanceScore,
			MatchType:      string(results[i].MatchType),
			MatchInfo:      results[i].MatchInfo,
		}
	}

	return nil, output, nil
}

// handleBuildIndex handles the build_index tool invocation.
func (s *Server) handleBuildIndex(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input BuildIndexInput,
) (*mcp.CallToolResult, BuildIndexOutput, error) {
	stats, err := s.ports.Index.Build(ctx, input.Force)
	if err != nil {
		return nil, BuildIndexOutput{}, err
	}

	return nil, BuildIndexOutput{
		VideosIndexed:   stats.VideosIndexed,
		SegmentsIndexed: stats.SegmentsIndexed,
		EmptyRecords:    stats.EmptyRecords,
		FailedRecords:   stats.FailedRecords,
		TimeMS:          stats.ElapsedMS,
		Skipped:         stats.Skipped,
	}, nil
}
