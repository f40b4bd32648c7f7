package journal

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

// SQLite is a Journal persisted in a sqlite database.
type SQLite struct {
	db    *sql.DB
	runID string
	now   func() time.Time
}

// Open creates or opens the journal database at path and starts a new run.
func Open(path string) (*SQLite, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("journal path is required")
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open journal: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to journal: %w", err)
	}

	// sqlite allows a single writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply pragmas: %w", err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply journal schema: %w", err)
	}

	return &SQLite{
		db:    db,
		runID: uuid.NewString(),
		now:   func() time.Time { return time.Now().UTC() },
	}, nil
}

func (s *SQLite) RunID() string {
	return s.runID
}

func (s *SQLite) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *SQLite) Lookup(ctx context.Context, key string) (Entry, bool, error) {
	if strings.TrimSpace(key) == "" {
		return Entry{}, false, ErrEmptyKey
	}

	var entry Entry
	var recordedAt string
	err := s.db.QueryRowContext(ctx, `
		SELECT key, run_id, uri, address, transaction_id, recorded_at
		FROM steps
		WHERE key = ?
	`, key).Scan(&entry.Key, &entry.RunID, &entry.URI, &entry.Address, &entry.TransactionID, &recordedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, fmt.Errorf("query journal entry %s: %w", key, err)
	}

	entry.RecordedAt, err = time.Parse(time.RFC3339Nano, recordedAt)
	if err != nil {
		return Entry{}, false, fmt.Errorf("parse journal timestamp for %s: %w", key, err)
	}
	return entry, true, nil
}

func (s *SQLite) Record(ctx context.Context, entry Entry) error {
	if strings.TrimSpace(entry.Key) == "" {
		return ErrEmptyKey
	}
	if entry.RunID == "" {
		entry.RunID = s.runID
	}
	if entry.RecordedAt.IsZero() {
		entry.RecordedAt = s.now()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO steps (key, run_id, uri, address, transaction_id, recorded_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			run_id = excluded.run_id,
			uri = excluded.uri,
			address = excluded.address,
			transaction_id = excluded.transaction_id,
			recorded_at = excluded.recorded_at
	`, entry.Key, entry.RunID, entry.URI, entry.Address, entry.TransactionID,
		entry.RecordedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("record journal entry %s: %w", entry.Key, err)
	}
	return nil
}

// RunEntries returns the entries recorded by a run, oldest first.
func (s *SQLite) RunEntries(ctx context.Context, runID string) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT key, run_id, uri, address, transaction_id, recorded_at
		FROM steps
		WHERE run_id = ?
		ORDER BY recorded_at ASC, key COLLATE BINARY ASC
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("query run entries: %w", err)
	}
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		var entry Entry
		var recordedAt string
		if err := rows.Scan(&entry.Key, &entry.RunID, &entry.URI, &entry.Address, &entry.TransactionID, &recordedAt); err != nil {
			return nil, fmt.Errorf("scan run entry: %w", err)
		}
		entry.RecordedAt, err = time.Parse(time.RFC3339Nano, recordedAt)
		if err != nil {
			return nil, fmt.Errorf("parse journal timestamp for %s: %w", entry.Key, err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate run entries: %w", err)
	}
	return entries, nil
}

func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}
	return nil
}
