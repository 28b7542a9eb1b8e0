package services

import (
	"context"
	"regexp"
	"sort"
	"strings"

	"github.com/clipdex/clipdex-cli/internal/core/domain"
	"github.com/clipdex/clipdex-cli/internal/core/ports/driven"
	"github.com/clipdex/clipdex-cli/internal/logger"
)

// Context expansion defaults: a 3-8 second transcript segment is usually a
// sentence fragment, so a matched segment is widened with its temporal
// neighbours before it is shown to the user.
const (
	defaultWindowSeconds    = 20
	defaultContextSentences = 2
)

// highlightedTerm captures the text between highlight markers.
var highlightedTerm = regexp.MustCompile(
	regexp.QuoteMeta(domain.HighlightOpen) + `(.*?)` + regexp.QuoteMeta(domain.HighlightClose),
)

// contextExpander reconstructs a window of temporally adjacent segments
// around a match and re-applies the match's highlighted terms across it.
type contextExpander struct {
	index            driven.SegmentIndex
	windowSeconds    int
	contextSentences int
}

func newContextExpander(index driven.SegmentIndex, windowSeconds, contextSentences int) *contextExpander {
	if windowSeconds <= 0 {
		windowSeconds = defaultWindowSeconds
	}
	if contextSentences <= 0 {
		contextSentences = defaultContextSentences
	}
	return &contextExpander{
		index:            index,
		windowSeconds:    windowSeconds,
		contextSentences: contextSentences,
	}
}

// expand returns the contextual excerpt for a matched segment. Every
// failure mode degrades to the unexpanded highlighted text; context is an
// enrichment and must never fail the search that requested it.
func (e *contextExpander) expand(ctx context.Context, videoID string, start int, original, highlighted string) string {
	window, err := e.index.Window(ctx, videoID, start-e.windowSeconds, start+e.windowSeconds)
	if err != nil {
		logger.Warn("Context window lookup failed for %s@%ds: %v", videoID, start, err)
		return highlighted
	}
	if len(window) < 2 {
		return highlighted
	}

	// Locate the matched segment inside the window. Matching on both start
	// time and text guards against duplicate text elsewhere in the window.
	matched := -1
	for i := range window {
		if window[i].StartTime == start && window[i].Text == original {
			matched = i
			break
		}
	}
	if matched == -1 {
		return highlighted
	}

	lo := matched - e.contextSentences
	if lo < 0 {
		lo = 0
	}
	hi := matched + e.contextSentences
	if hi > len(window)-1 {
		hi = len(window) - 1
	}

	terms := extractHighlightTerms(highlighted)
	if len(terms) == 0 {
		return highlighted
	}

	parts := make([]string, 0, hi-lo+1)
	for _, seg := range window[lo : hi+1] {
		parts = append(parts, applyHighlights(seg.Text, terms))
	}
	return strings.Join(parts, " ")
}

// extractHighlightTerms returns the distinct terms wrapped by highlight
// markers, in order of first appearance.
func extractHighlightTerms(highlighted string) []string {
	var terms []string
	seen := make(map[string]struct{})
	for _, m := range highlightedTerm.FindAllStringSubmatch(highlighted, -1) {
		key := strings.ToLower(m[1])
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		terms = append(terms, m[1])
	}
	return terms
}

// applyHighlights wraps every word-boundary occurrence of the terms in
// highlight markers, case-insensitively. All terms go through a single
// alternation pass over the raw text, so no term ever matches inside a
// marker inserted for another.
func applyHighlights(text string, terms []string) string {
	if len(terms) == 0 {
		return text
	}
	quoted := make([]string, len(terms))
	for i, term := range terms {
		quoted[i] = regexp.QuoteMeta(term)
	}
	// Longest alternative first; the engine prefers earlier branches.
	sort.Slice(quoted, func(i, j int) bool { return len(quoted[i]) > len(quoted[j]) })
	re, err := regexp.Compile(`(?i)\b(?:` + strings.Join(quoted, "|") + `)\b`)
	if err != nil {
		return text
	}
	return re.ReplaceAllString(text, domain.HighlightOpen+"$0"+domain.HighlightClose)
}
