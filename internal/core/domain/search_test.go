package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatMatchInfo(t *testing.T) {
	assert.Equal(t, "exact match", FormatMatchInfo(MatchExact, 0, 0))
	assert.Equal(t, "2/3 words matched", FormatMatchInfo(MatchPartial, 2, 3))
	assert.Equal(t, "1/1 words matched", FormatMatchInfo(MatchPartial, 1, 1))
}

func TestTranscriptRecord_Empty(t *testing.T) {
	assert.True(t, (&TranscriptRecord{}).Empty())
	assert.False(t, (&TranscriptRecord{
		Segments: []TranscriptSegment{{Text: "x"}},
	}).Empty())
}

func TestResult_JSONShape(t *testing.T) {
	exact := Result{
		VideoID:         "abc",
		VideoTitle:      "Title",
		Text:            "text",
		HighlightedText: "text",
		ContextualText:  "text",
		Start:           12,
		Method:          "json",
		RelevanceScore:  -0.5,
		MatchType:       MatchExact,
		MatchInfo:       "exact match",
	}

	data, err := json.Marshal(exact)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, "abc", decoded["videoId"])
	assert.Equal(t, float64(12), decoded["start"])
	assert.Equal(t, "exact", decoded["matchType"])
	assert.NotContains(t, decoded, "matchedWordsCount",
		"word counts are omitted for exact matches")

	partial := exact
	partial.MatchType = MatchPartial
	partial.MatchedWords = 1
	partial.TotalWords = 2

	data, err = json.Marshal(partial)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, float64(1), decoded["matchedWordsCount"])
	assert.Equal(t, float64(2), decoded["totalWordsCount"])
}
