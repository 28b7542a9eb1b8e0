package services

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/clipdex/clipdex-cli/internal/core/domain"
	"github.com/clipdex/clipdex-cli/internal/core/ports/driven"
	"github.com/clipdex/clipdex-cli/internal/core/ports/driving"
	"github.com/clipdex/clipdex-cli/internal/logger"
)

// Ensure Searcher implements the interface.
var _ driving.SearchService = (*Searcher)(nil)

// defaultSearchLimit applies when the caller passes a non-positive limit.
const defaultSearchLimit = 10

// exactPriority is the sort bucket for all-token matches. Partial matches
// start at exactPriority+1 and grow with each missing token, so no partial
// result ever outranks an exact one.
const exactPriority = 1

// nonWord strips everything outside [0-9A-Za-z_] from a query token.
var nonWord = regexp.MustCompile(`\W+`)

// SearcherOptions tune the search pipeline. Zero values select defaults.
type SearcherOptions struct {
	// CacheTTL is how long formatted results are served from cache.
	CacheTTL time.Duration

	// WindowSeconds bounds the context window around a match.
	WindowSeconds int

	// ContextSentences is the number of neighbour segments kept on each
	// side of a match when building the contextual excerpt.
	ContextSentences int
}

// Searcher is the query planner and ranker. It runs the two-phase AND/OR
// search against the segment index, merges the phases by priority, widens
// each hit with context, and memoizes the formatted output.
type Searcher struct {
	index    driven.SegmentIndex
	cache    *resultCache
	expander *contextExpander
}

// NewSearcher creates a search service over a segment index.
func NewSearcher(index driven.SegmentIndex, opts SearcherOptions) *Searcher {
	return &Searcher{
		index:    index,
		cache:    newResultCache(opts.CacheTTL),
		expander: newContextExpander(index, opts.WindowSeconds, opts.ContextSentences),
	}
}

// scoredHit is an intermediate result before formatting. priority is the
// primary sort key; lower sorts first.
type scoredHit struct {
	hit       driven.IndexHit
	matchType domain.MatchType
	matched   int
	total     int
	priority  int
}

// Search implements driving.SearchService.
//
// Phase ordering is load-bearing: the exact (AND) phase completes before
// the partial (OR) phase starts, because the partial phase de-duplicates
// against the exact phase's result set. Index failures inside a phase are
// logged and degrade the response instead of failing it.
func (s *Searcher) Search(ctx context.Context, query string, limit int) ([]domain.Result, error) {
	if s.index == nil {
		return nil, domain.ErrIndexUnavailable
	}
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	logger.Section("Search Execution")
	logger.Debug("Query: %q, limit: %d", query, limit)

	if cached, ok := s.cache.get(query, limit); ok {
		logger.Debug("Cache hit for %q", query)
		return cached, nil
	}

	tokens := tokenize(query)
	if len(tokens) == 0 {
		logger.Debug("Query tokenized to nothing, returning no results")
		return []domain.Result{}, nil
	}
	logger.Debug("Tokens: %v", tokens)

	start := time.Now()
	hits, exactErr := s.exactPhase(ctx, tokens, limit)
	hits, partialErr := s.partialPhase(ctx, tokens, limit, hits)
	sortHits(hits)
	if len(hits) > limit {
		hits = hits[:limit]
	}

	results := s.format(ctx, hits)
	logger.Info("Search %q: %d results in %s", query, len(results), time.Since(start).Round(time.Millisecond))

	// A degraded response is never cached; a recovered index must serve
	// real results on the next call, not an empty list for a whole TTL.
	if exactErr == nil && partialErr == nil {
		s.cache.put(query, limit, results)
	}
	return results, nil
}

// Stats implements driving.SearchService.
func (s *Searcher) Stats(ctx context.Context) (domain.Stats, error) {
	if s.index == nil {
		return domain.Stats{}, domain.ErrIndexUnavailable
	}
	idx, err := s.index.Stats(ctx)
	if err != nil {
		return domain.Stats{}, err
	}
	return domain.Stats{IndexStats: idx, CacheSize: s.cache.size()}, nil
}

// exactPhase requires every token (AND). Only meaningful for multi-token
// queries; a single token's AND and OR queries are identical, so the
// single-token case is left entirely to the partial phase.
func (s *Searcher) exactPhase(ctx context.Context, tokens []string, limit int) ([]scoredHit, error) {
	if len(tokens) < 2 {
		return nil, nil
	}

	raw, err := s.index.Search(ctx, matchExpr(tokens, "AND"), limit)
	if err != nil {
		logger.Error("Exact phase failed: %v", err)
		return nil, err
	}
	logger.Debug("Exact phase: %d hits", len(raw))

	hits := make([]scoredHit, len(raw))
	for i, h := range raw {
		hits[i] = scoredHit{
			hit:       h,
			matchType: domain.MatchExact,
			priority:  exactPriority,
		}
	}
	return hits, nil
}

// partialPhase fills remaining slots with any-token (OR) matches. It
// over-fetches twice the limit so de-duplication against the exact phase
// still leaves enough candidates.
func (s *Searcher) partialPhase(ctx context.Context, tokens []string, limit int, hits []scoredHit) ([]scoredHit, error) {
	if len(hits) >= limit {
		return hits, nil
	}

	raw, err := s.index.Search(ctx, matchExpr(tokens, "OR"), limit*2)
	if err != nil {
		logger.Error("Partial phase failed: %v", err)
		return hits, err
	}
	logger.Debug("Partial phase: %d candidates", len(raw))

	seen := make(map[string]struct{}, len(hits))
	for _, h := range hits {
		seen[dedupeKey(h.hit.Segment)] = struct{}{}
	}

	for _, h := range raw {
		if len(hits) >= limit {
			break
		}
		key := dedupeKey(h.Segment)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}

		matched := countMatchedTokens(h.Segment.Text, tokens)
		hits = append(hits, scoredHit{
			hit:       h,
			matchType: domain.MatchPartial,
			matched:   matched,
			total:     len(tokens),
			priority:  exactPriority + 1 + (len(tokens) - matched),
		})
	}
	return hits, nil
}

// sortHits orders by priority ascending, then matched-token count
// descending where both sides carry one, then bm25 score ascending as the
// last-resort tiebreak.
func sortHits(hits []scoredHit) {
	sort.SliceStable(hits, func(i, j int) bool {
		a, b := hits[i], hits[j]
		if a.priority != b.priority {
			return a.priority < b.priority
		}
		if a.matched > 0 && b.matched > 0 && a.matched != b.matched {
			return a.matched > b.matched
		}
		return a.hit.Score < b.hit.Score
	})
}

// format turns ranked hits into boundary results, widening each with its
// contextual excerpt.
func (s *Searcher) format(ctx context.Context, hits []scoredHit) []domain.Result {
	results := make([]domain.Result, len(hits))
	for i, h := range hits {
		seg := h.hit.Segment
		results[i] = domain.Result{
			VideoID:         seg.VideoID,
			VideoTitle:      seg.VideoTitle,
			Text:            seg.Text,
			HighlightedText: h.hit.Highlighted,
			ContextualText:  s.expander.expand(ctx, seg.VideoID, seg.StartTime, seg.Text, h.hit.Highlighted),
			Start:           seg.StartTime,
			Method:          seg.Method,
			RelevanceScore:  h.hit.Score,
			MatchType:       h.matchType,
			MatchedWords:    h.matched,
			TotalWords:      h.total,
			MatchInfo:       domain.FormatMatchInfo(h.matchType, h.matched, h.total),
		}
	}
	return results
}

// tokenize splits on whitespace, strips non-word runes, and drops empty or
// duplicate tokens while preserving order.
func tokenize(query string) []string {
	var tokens []string
	seen := make(map[string]struct{})
	for _, field := range strings.Fields(query) {
		tok := nonWord.ReplaceAllString(field, "")
		if tok == "" {
			continue
		}
		key := strings.ToLower(tok)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		tokens = append(tokens, tok)
	}
	return tokens
}

// matchExpr joins quoted tokens into an FTS5 boolean expression.
func matchExpr(tokens []string, op string) string {
	quoted := make([]string, len(tokens))
	for i, tok := range tokens {
		quoted[i] = `"` + tok + `"`
	}
	return strings.Join(quoted, " "+op+" ")
}

// countMatchedTokens counts query tokens textually contained in the
// segment text, case-insensitively and independent of what the index
// matched on.
func countMatchedTokens(text string, tokens []string) int {
	textLower := strings.ToLower(text)
	matched := 0
	for _, tok := range tokens {
		if strings.Contains(textLower, strings.ToLower(tok)) {
			matched++
		}
	}
	return matched
}

// dedupeKey identifies a segment by (videoID, startTime). No two entries
// of one search response share a key.
func dedupeKey(seg domain.TranscriptSegment) string {
	return fmt.Sprintf("%s_%d", seg.VideoID, seg.StartTime)
}
