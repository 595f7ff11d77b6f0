package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/capcom6/filetracker/internal/tracker"

	_ "modernc.org/sqlite"
)

// Record is a persisted change.
type Record struct {
	ID         int64
	Path       string
	Digest     string
	Previous   string
	LogFile    string
	DetectedAt time.Time
}

// Store keeps the change history inside a SQLite database.
type Store struct {
	db *sql.DB
}

func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("database path cannot be empty")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("can't create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("can't open sqlite database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			db.Close()
			return nil, fmt.Errorf("can't apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, err
	}

	return store, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) initSchema() error {
	const schema = `
CREATE TABLE IF NOT EXISTS changes (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        path TEXT NOT NULL,
        digest TEXT NOT NULL,
        previous TEXT NOT NULL,
        log_file TEXT NOT NULL,
        detected_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_changes_path ON changes(path);
`

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("can't initialize schema: %w", err)
	}
	return nil
}

// Changed stores change. It satisfies tracker.Sink.
func (s *Store) Changed(ctx context.Context, change tracker.Change) error {
	_, err := s.db.ExecContext(ctx, `
INSERT INTO changes(path, digest, previous, log_file, detected_at)
VALUES(?, ?, ?, ?, ?)
`, change.Path, change.Digest, change.Previous, change.LogFile, change.DetectedAt.UnixNano())
	if err != nil {
		return fmt.Errorf("can't insert change of %s: %w", change.Path, err)
	}
	return nil
}

// List returns the changes of path, newest first.
func (s *Store) List(ctx context.Context, path string) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT id, path, digest, previous, log_file, detected_at
FROM changes
WHERE path = ?
ORDER BY detected_at DESC, id DESC
`, path)
	if err != nil {
		return nil, fmt.Errorf("can't query changes: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var (
			record     Record
			detectedAt int64
		)
		if scanErr := rows.Scan(
			&record.ID,
			&record.Path,
			&record.Digest,
			&record.Previous,
			&record.LogFile,
			&detectedAt,
		); scanErr != nil {
			return nil, fmt.Errorf("can't scan change: %w", scanErr)
		}

		record.DetectedAt = time.Unix(0, detectedAt)
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("can't iterate changes: %w", err)
	}

	return records, nil
}
