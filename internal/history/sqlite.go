package history

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store on a sqlite database. WAL journaling makes
// every committed selection crash-safe: a mid-write crash rolls back to the
// last committed state instead of corrupting the file.
type SQLiteStore struct {
	db *sql.DB
}

var _ Store = (*SQLiteStore)(nil)

// OpenSQLite opens (creating if needed) the history database at path.
func OpenSQLite(path string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create history directory: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}

	// sqlite behaves best with a single writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect to history database: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate history database: %w", err)
	}
	return s, nil
}

// OpenOrFallback opens the sqlite store at path, degrading to an empty
// in-memory store if the database is unreadable or corrupt. History loss is
// logged but never aborts startup.
func OpenOrFallback(path string, logger *log.Logger) Store {
	s, err := OpenSQLite(path)
	if err != nil {
		logger.Warn("history database unavailable, starting with empty history",
			"path", path, "err", err)
		return NewMemoryStore()
	}
	return s
}

func (s *SQLiteStore) migrate() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS usage (
			identity          TEXT PRIMARY KEY,
			use_count         INTEGER NOT NULL DEFAULT 0,
			last_used_unix_ms INTEGER NOT NULL DEFAULT 0,
			pinned            INTEGER NOT NULL DEFAULT 0
		)
	`)
	return err
}

func (s *SQLiteStore) Get(identity string) (Record, bool) {
	var (
		count  int64
		lastMs int64
		pinned int
	)
	err := s.db.QueryRow(`
		SELECT use_count, last_used_unix_ms, pinned FROM usage WHERE identity = ?
	`, identity).Scan(&count, &lastMs, &pinned)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, false
	}
	if err != nil {
		// A read failure degrades to "no history", matching the
		// fail-closed contract of the store as a whole.
		return Record{}, false
	}

	rec := Record{UseCount: count, Pinned: pinned != 0}
	if lastMs > 0 {
		rec.LastUsed = time.UnixMilli(lastMs)
	}
	return rec, true
}

func (s *SQLiteStore) RecordUse(identity string, now time.Time) error {
	_, err := s.db.Exec(`
		INSERT INTO usage (identity, use_count, last_used_unix_ms, pinned)
		VALUES (?, 1, ?, 0)
		ON CONFLICT(identity) DO UPDATE SET
			use_count = use_count + 1,
			last_used_unix_ms = excluded.last_used_unix_ms
	`, identity, now.UnixMilli())
	if err != nil {
		return fmt.Errorf("record use: %w", err)
	}
	return nil
}

func (s *SQLiteStore) SetPinned(identity string, pinned bool) error {
	p := 0
	if pinned {
		p = 1
	}
	_, err := s.db.Exec(`
		INSERT INTO usage (identity, use_count, last_used_unix_ms, pinned)
		VALUES (?, 0, 0, ?)
		ON CONFLICT(identity) DO UPDATE SET pinned = excluded.pinned
	`, identity, p)
	if err != nil {
		return fmt.Errorf("set pinned: %w", err)
	}
	return nil
}

func (s *SQLiteStore) ClearAll() error {
	if _, err := s.db.Exec(`DELETE FROM usage`); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	return nil
}

// Close checkpoints the WAL and closes the database.
func (s *SQLiteStore) Close() error {
	_, _ = s.db.Exec("PRAGMA wal_checkpoint(TRUNCATE)")
	return s.db.Close()
}
