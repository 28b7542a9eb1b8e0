package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/clipdex/clipdex-cli/internal/adapters/driven/index/sqlite/migrations"
	"github.com/clipdex/clipdex-cli/internal/core/domain"
	"github.com/clipdex/clipdex-cli/internal/core/ports/driven"
)

// Ensure Index implements the interface.
var _ driven.SegmentIndex = (*Index)(nil)

// Index is the FTS5-backed segment index.
type Index struct {
	db   *sql.DB
	path string
}

// NewIndex opens (or creates) the index database under dataDir.
// If dataDir is empty, defaults to ~/.clipdex/data/index.db.
func NewIndex(dataDir string) (*Index, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".clipdex", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "index.db")

	// WAL mode keeps searches readable while a build is writing.
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	idx := &Index{
		db:   db,
		path: dbPath,
	}

	if err := idx.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return idx, nil
}

// Close closes the database connection.
func (x *Index) Close() error {
	return x.db.Close()
}

// Path returns the database file path.
func (x *Index) Path() string {
	return x.path
}

// migrate runs all pending migrations.
func (x *Index) migrate(fsys embed.FS) error {
	_, err := x.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := x.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".up.sql") {
			upFiles = append(upFiles, entry.Name())
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := x.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}

		if _, err := x.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// Insert adds segments inside a single transaction.
func (x *Index) Insert(ctx context.Context, segments []domain.TranscriptSegment) error {
	if len(segments) == 0 {
		return nil
	}

	tx, err := x.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO transcript_search (video_id, video_title, text, start_time, method)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer stmt.Close()

	for _, seg := range segments {
		if _, err := stmt.ExecContext(ctx, seg.VideoID, seg.VideoTitle, seg.Text,
			seg.StartTime, seg.Method); err != nil {
			return fmt.Errorf("inserting segment: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// DeleteAll wipes the index.
func (x *Index) DeleteAll(ctx context.Context) error {
	if _, err := x.db.ExecContext(ctx, "DELETE FROM transcript_search"); err != nil {
		return fmt.Errorf("clearing index: %w", err)
	}
	return nil
}

// IndexedVideoIDs returns the distinct video IDs present in the index.
func (x *Index) IndexedVideoIDs(ctx context.Context) (map[string]struct{}, error) {
	rows, err := x.db.QueryContext(ctx, "SELECT DISTINCT video_id FROM transcript_search")
	if err != nil {
		return nil, fmt.Errorf("querying indexed videos: %w", err)
	}
	defer rows.Close()

	ids := make(map[string]struct{})
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning video id: %w", err)
		}
		ids[id] = struct{}{}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating videos: %w", err)
	}

	return ids, nil
}

// Search runs an FTS5 MATCH expression, best (lowest bm25) first.
func (x *Index) Search(ctx context.Context, match string, limit int) ([]driven.IndexHit, error) {
	rows, err := x.db.QueryContext(ctx, `
		SELECT
			video_id,
			video_title,
			text,
			start_time,
			method,
			highlight(transcript_search, 2, ?, ?) AS highlighted_text,
			bm25(transcript_search) AS relevance_score
		FROM transcript_search
		WHERE transcript_search MATCH ?
		ORDER BY relevance_score ASC
		LIMIT ?
	`, domain.HighlightOpen, domain.HighlightClose, match, limit)
	if err != nil {
		return nil, fmt.Errorf("querying index: %w", err)
	}
	defer rows.Close()

	var hits []driven.IndexHit //nolint:prealloc // size unknown from query
	for rows.Next() {
		var hit driven.IndexHit
		if err := rows.Scan(&hit.Segment.VideoID, &hit.Segment.VideoTitle, &hit.Segment.Text,
			&hit.Segment.StartTime, &hit.Segment.Method, &hit.Highlighted, &hit.Score); err != nil {
			return nil, fmt.Errorf("scanning hit: %w", err)
		}
		hits = append(hits, hit)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating hits: %w", err)
	}

	return hits, nil
}

// Window returns one video's segments with start times in [fromSec, toSec].
func (x *Index) Window(ctx context.Context, videoID string, fromSec, toSec int) ([]domain.TranscriptSegment, error) {
	rows, err := x.db.QueryContext(ctx, `
		SELECT video_id, video_title, text, start_time, method
		FROM transcript_search
		WHERE video_id = ? AND CAST(start_time AS INTEGER) BETWEEN ? AND ?
		ORDER BY CAST(start_time AS INTEGER) ASC
	`, videoID, fromSec, toSec)
	if err != nil {
		return nil, fmt.Errorf("querying window: %w", err)
	}
	defer rows.Close()

	var segments []domain.TranscriptSegment //nolint:prealloc // size unknown from query
	for rows.Next() {
		var seg domain.TranscriptSegment
		if err := rows.Scan(&seg.VideoID, &seg.VideoTitle, &seg.Text,
			&seg.StartTime, &seg.Method); err != nil {
			return nil, fmt.Errorf("scanning segment: %w", err)
		}
		segments = append(segments, seg)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating segments: %w", err)
	}

	return segments, nil
}

// Stats returns distinct-video and segment counts.
func (x *Index) Stats(ctx context.Context) (domain.IndexStats, error) {
	var stats domain.IndexStats
	row := x.db.QueryRowContext(ctx, `
		SELECT COUNT(DISTINCT video_id), COUNT(*) FROM transcript_search
	`)
	if err := row.Scan(&stats.TotalVideos, &stats.TotalSegments); err != nil {
		return domain.IndexStats{}, fmt.Errorf("scanning stats: %w", err)
	}
	return stats, nil
}
