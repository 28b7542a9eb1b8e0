package domain

import "fmt"

// HighlightOpen and HighlightClose wrap matched terms in highlighted and
// contextual text. They mirror the markers the FTS engine is configured with.
const (
	HighlightOpen  = "<mark>"
	HighlightClose = "</mark>"
)

// MatchType classifies how a result matched the query.
type MatchType string

const (
	// MatchExact means every query token is present (AND phase).
	MatchExact MatchType = "exact"

	// MatchPartial means only some query tokens are present (OR phase).
	MatchPartial MatchType = "partial"
)

// Result is a single formatted search hit. This is the shape that crosses
// the system boundary; callers add their own envelope fields on top.
type Result struct {
	// VideoID identifies the matched video.
	VideoID string `json:"videoId"`

	// VideoTitle is the display title of the matched video.
	VideoTitle string `json:"videoTitle"`

	// Text is the raw matched segment text.
	Text string `json:"text"`

	// HighlightedText is Text with matched terms wrapped in highlight markers.
	HighlightedText string `json:"highlightedText"`

	// ContextualText widens HighlightedText with temporally adjacent
	// segments of the same video, matched terms re-highlighted. Falls back
	// to HighlightedText when no context is available.
	ContextualText string `json:"contextualText"`

	// Start is the segment offset in seconds, used to seek the player.
	Start int `json:"start"`

	// Method is the provenance tag of the transcript extractor.
	Method string `json:"method"`

	// RelevanceScore is the index's native bm25 score. Lower is better.
	RelevanceScore float64 `json:"relevanceScore"`

	// MatchType is exact (all tokens) or partial (some tokens).
	MatchType MatchType `json:"matchType"`

	// MatchedWords counts distinct query tokens present in Text.
	// Only set for partial matches.
	MatchedWords int `json:"matchedWordsCount,omitempty"`

	// TotalWords is the token count of the query. Only set for partial matches.
	TotalWords int `json:"totalWordsCount,omitempty"`

	// MatchInfo is a human-readable match summary.
	MatchInfo string `json:"matchInfo"`
}

// FormatMatchInfo renders the match summary string for a result.
func FormatMatchInfo(matchType MatchType, matched, total int) string {
	if matchType == MatchPartial {
		return fmt.Sprintf("%d/%d words matched", matched, total)
	}
	return "exact match"
}
