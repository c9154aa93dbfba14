package history

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	wsterror "github.com/msto63/wsterm/foundation/core/error"
)

// SQLiteStore implements Store using SQLite
type SQLiteStore struct {
	db    *sql.DB
	mu    sync.RWMutex
	limit int
	now   func() time.Time
}

// SQLiteConfig holds configuration for the SQLite store
type SQLiteConfig struct {
	Path  string
	Limit int
}

// NewSQLiteStore opens or creates the history database at cfg.Path
func NewSQLiteStore(cfg SQLiteConfig) (*SQLiteStore, error) {
	if cfg.Limit <= 0 {
		cfg.Limit = DefaultLimit
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0755); err != nil {
		return nil, dbError(err, "create history directory", "history.Open")
	}

	db, err := sql.Open("sqlite3", cfg.Path+"?_journal_mode=WAL&_synchronous=NORMAL")
	if err != nil {
		return nil, dbError(err, "open history database", "history.Open")
	}

	store := &SQLiteStore{db: db, limit: cfg.Limit, now: time.Now}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, dbError(err, "initialize history schema", "history.Open")
	}

	return store, nil
}

func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS history (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		id TEXT NOT NULL UNIQUE,
		line TEXT NOT NULL,
		created_at DATETIME NOT NULL
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Append records line and trims the table to the configured limit
func (s *SQLiteStore) Append(ctx context.Context, line string) error {
	if isBlank(line) {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return dbError(err, "begin transaction", "history.Append")
	}
	defer tx.Rollback()

	var newest string
	err = tx.QueryRowContext(ctx, `SELECT line FROM history ORDER BY seq DESC LIMIT 1`).Scan(&newest)
	switch {
	case err == nil && newest == line:
		return nil
	case err != nil && !errors.Is(err, sql.ErrNoRows):
		return dbError(err, "read newest entry", "history.Append")
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO history (id, line, created_at) VALUES (?, ?, ?)`,
		uuid.NewString(), line, s.now().UTC(),
	)
	if err != nil {
		return dbError(err, "insert entry", "history.Append")
	}

	_, err = tx.ExecContext(ctx, `
		DELETE FROM history WHERE seq NOT IN (
			SELECT seq FROM history ORDER BY seq DESC LIMIT ?
		)`, s.limit)
	if err != nil {
		return dbError(err, "trim history", "history.Append")
	}

	if err := tx.Commit(); err != nil {
		return dbError(err, "commit", "history.Append")
	}
	return nil
}

// List returns the newest limit entries oldest first
func (s *SQLiteStore) List(ctx context.Context, limit int) ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = -1
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, line, created_at FROM (
			SELECT seq, id, line, created_at FROM history ORDER BY seq DESC LIMIT ?
		) ORDER BY seq ASC`, limit)
	if err != nil {
		return nil, dbError(err, "list entries", "history.List")
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Line, &e.CreatedAt); err != nil {
			return nil, dbError(err, "scan entry", "history.List")
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, dbError(err, "list entries", "history.List")
	}

	return entries, nil
}

// Clear deletes all entries
func (s *SQLiteStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.ExecContext(ctx, `DELETE FROM history`); err != nil {
		return dbError(err, "clear history", "history.Clear")
	}
	return nil
}

// Count returns the number of entries
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM history`).Scan(&n); err != nil {
		return 0, dbError(err, "count entries", "history.Count")
	}
	return n, nil
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func dbError(err error, message, operation string) error {
	return wsterror.Wrap(err, message).
		WithCode(wsterror.CodeDatabaseError).
		WithOperation(operation)
}
