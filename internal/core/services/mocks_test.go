package services

import (
	"context"
	"strings"

	"github.com/clipdex/clipdex-cli/internal/core/domain"
	"github.com/clipdex/clipdex-cli/internal/core/ports/driven"
)

// mockIndex is an in-memory implementation of driven.SegmentIndex backed
// by naive substring matching. Errors can be injected per method.
type mockIndex struct {
	segments []domain.TranscriptSegment

	searchHits   []driven.IndexHit
	searchErr    error
	insertErr    error
	deleteErr    error
	indexedErr   error
	windowErr    error
	statsErr     error
	searchCalls  []string
	insertCalls  int
	deleteCalled bool
}

func (m *mockIndex) Insert(_ context.Context, segments []domain.TranscriptSegment) error {
	if m.insertErr != nil {
		return m.insertErr
	}
	m.insertCalls++
	m.segments = append(m.segments, segments...)
	return nil
}

func (m *mockIndex) DeleteAll(_ context.Context) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	m.deleteCalled = true
	m.segments = nil
	return nil
}

func (m *mockIndex) IndexedVideoIDs(_ context.Context) (map[string]struct{}, error) {
	if m.indexedErr != nil {
		return nil, m.indexedErr
	}
	ids := make(map[string]struct{})
	for _, seg := range m.segments {
		ids[seg.VideoID] = struct{}{}
	}
	return ids, nil
}

// Search honours the AND/OR operator of the match expression against the
// stored segments, or returns canned hits when searchHits is set.
func (m *mockIndex) Search(_ context.Context, match string, limit int) ([]driven.IndexHit, error) {
	m.searchCalls = append(m.searchCalls, match)
	if m.searchErr != nil {
		return nil, m.searchErr
	}
	if m.searchHits != nil {
		if len(m.searchHits) > limit {
			return m.searchHits[:limit], nil
		}
		return m.searchHits, nil
	}

	op := " OR "
	if strings.Contains(match, " AND ") {
		op = " AND "
	}
	var terms []string
	for _, part := range strings.Split(match, op) {
		terms = append(terms, strings.ToLower(strings.Trim(part, `"`)))
	}

	var hits []driven.IndexHit
	for _, seg := range m.segments {
		if len(hits) >= limit {
			break
		}
		text := strings.ToLower(seg.Text)
		matched := 0
		for _, term := range terms {
			if strings.Contains(text, term) {
				matched++
			}
		}
		ok := matched > 0
		if op == " AND " {
			ok = matched == len(terms)
		}
		if !ok {
			continue
		}
		highlighted := seg.Text
		for _, term := range terms {
			highlighted = highlightTermForTest(highlighted, term)
		}
		hits = append(hits, driven.IndexHit{
			Segment:     seg,
			Highlighted: highlighted,
			Score:       -float64(matched),
		})
	}
	return hits, nil
}

func (m *mockIndex) Window(_ context.Context, videoID string, fromSec, toSec int) ([]domain.TranscriptSegment, error) {
	if m.windowErr != nil {
		return nil, m.windowErr
	}
	var window []domain.TranscriptSegment
	for _, seg := range m.segments {
		if seg.VideoID == videoID && seg.StartTime >= fromSec && seg.StartTime <= toSec {
			window = append(window, seg)
		}
	}
	return window, nil
}

func (m *mockIndex) Stats(_ context.Context) (domain.IndexStats, error) {
	if m.statsErr != nil {
		return domain.IndexStats{}, m.statsErr
	}
	ids := make(map[string]struct{})
	for _, seg := range m.segments {
		ids[seg.VideoID] = struct{}{}
	}
	return domain.IndexStats{TotalVideos: len(ids), TotalSegments: len(m.segments)}, nil
}

func (m *mockIndex) Close() error { return nil }

// highlightTermForTest wraps whole-word occurrences of term, ignoring
// case, the way the real index's highlight() does.
func highlightTermForTest(text, term string) string {
	lower := strings.ToLower(text)
	var b strings.Builder
	for {
		i := strings.Index(lower, term)
		if i < 0 {
			b.WriteString(text)
			return b.String()
		}
		b.WriteString(text[:i])
		b.WriteString(domain.HighlightOpen)
		b.WriteString(text[i : i+len(term)])
		b.WriteString(domain.HighlightClose)
		text = text[i+len(term):]
		lower = lower[i+len(term):]
	}
}

// mockStore is an in-memory driven.TranscriptStore.
type mockStore struct {
	records map[string]*domain.TranscriptRecord
	listErr error
	loadErr map[string]error

	loadCalls map[string]int
}

func newMockStore() *mockStore {
	return &mockStore{
		records:   make(map[string]*domain.TranscriptRecord),
		loadErr:   make(map[string]error),
		loadCalls: make(map[string]int),
	}
}

func (m *mockStore) add(rec *domain.TranscriptRecord) {
	m.records[rec.VideoID] = rec
}

func (m *mockStore) ListIDs(_ context.Context) ([]string, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var ids []string
	for id := range m.records {
		ids = append(ids, id)
	}
	return ids, nil
}

func (m *mockStore) Load(_ context.Context, videoID string) (*domain.TranscriptRecord, error) {
	m.loadCalls[videoID]++
	if err, ok := m.loadErr[videoID]; ok {
		return nil, err
	}
	rec, ok := m.records[videoID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return rec, nil
}
