// Package file implements the TranscriptStore port over a directory of
// per-video JSON documents deposited by external extraction tooling, and a
// watcher that reacts to new deposits. Field names vary between extractors
// (snake_case and camelCase both occur in the wild), so decoding is
// deliberately tolerant.
package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/clipdex/clipdex-cli/internal/core/domain"
	"github.com/clipdex/clipdex-cli/internal/core/ports/driven"
	"github.com/clipdex/clipdex-cli/internal/logger"
)

// Ensure RecordStore implements the interface.
var _ driven.TranscriptStore = (*RecordStore)(nil)

// legacySuffix is the file suffix older extractors used for verified
// transcripts. It is stripped when deriving a video ID from a file name.
const legacySuffix = "_real.json"

// RecordStore reads transcript records from a directory of JSON files,
// one file per video.
type RecordStore struct {
	dir string
}

// NewRecordStore creates a store over dir. If dir is empty, defaults to
// ~/.clipdex/transcripts. The directory is not required to exist; a
// missing directory reads as an empty store.
func NewRecordStore(dir string) (*RecordStore, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dir = filepath.Join(home, ".clipdex", "transcripts")
	}
	return &RecordStore{dir: dir}, nil
}

// Dir returns the directory the store reads from.
func (s *RecordStore) Dir() string {
	return s.dir
}

// ListIDs implements driven.TranscriptStore.
func (s *RecordStore) ListIDs(_ context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Debug("Transcript directory %s does not exist, treating store as empty", s.dir)
			return []string{}, nil
		}
		return nil, fmt.Errorf("reading transcript directory: %w", err)
	}

	var ids []string
	seen := make(map[string]struct{})
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		id := videoIDFromFilename(entry.Name())
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	sort.Strings(ids)

	return ids, nil
}

// Load implements driven.TranscriptStore.
func (s *RecordStore) Load(_ context.Context, videoID string) (*domain.TranscriptRecord, error) {
	path, err := s.resolve(videoID)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading record %s: %w", videoID, err)
	}

	var raw recordJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decoding record %s: %w", videoID, err)
	}

	return raw.toDomain(videoID), nil
}

// resolve finds the record file for a video ID, preferring the legacy
// "_real.json" naming when both exist.
func (s *RecordStore) resolve(videoID string) (string, error) {
	for _, name := range []string{videoID + legacySuffix, videoID + ".json"} {
		path := filepath.Join(s.dir, name)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("record %s: %w", videoID, domain.ErrNotFound)
}

func videoIDFromFilename(name string) string {
	if strings.HasSuffix(name, legacySuffix) {
		return strings.TrimSuffix(name, legacySuffix)
	}
	return strings.TrimSuffix(name, ".json")
}

// recordJSON tolerates both snake_case and camelCase field names.
type recordJSON struct {
	VideoID      string        `json:"video_id"`
	VideoIDCamel string        `json:"videoId"`
	Title        string        `json:"video_title"`
	TitleCamel   string        `json:"videoTitle"`
	Method       string        `json:"method"`
	Transcript   []segmentJSON `json:"transcript"`
	Segments     []segmentJSON `json:"segments"`
}

type segmentJSON struct {
	Text           string   `json:"text"`
	Start          *float64 `json:"start"`
	StartTime      *float64 `json:"start_time"`
	StartTimeCamel *float64 `json:"startTime"`
}

// toDomain normalises a decoded record. fallbackID is the ID derived from
// the file name, used when the document carries none.
func (r *recordJSON) toDomain(fallbackID string) *domain.TranscriptRecord {
	rec := &domain.TranscriptRecord{
		VideoID:    firstNonEmpty(r.VideoID, r.VideoIDCamel, fallbackID),
		VideoTitle: firstNonEmpty(r.Title, r.TitleCamel, "Unknown Video"),
		Method:     firstNonEmpty(r.Method, "json"),
	}

	segments := r.Transcript
	if len(segments) == 0 {
		segments = r.Segments
	}
	for _, seg := range segments {
		if strings.TrimSpace(seg.Text) == "" {
			continue
		}
		rec.Segments = append(rec.Segments, domain.TranscriptSegment{
			VideoID:    rec.VideoID,
			VideoTitle: rec.VideoTitle,
			Text:       seg.Text,
			StartTime:  seg.startSeconds(),
			Method:     rec.Method,
		})
	}

	return rec
}

// startSeconds picks whichever start field the extractor wrote, truncated
// to whole seconds.
func (s *segmentJSON) startSeconds() int {
	for _, v := range []*float64{s.Start, s.StartTime, s.StartTimeCamel} {
		if v != nil {
			return int(*v)
		}
	}
	return 0
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
