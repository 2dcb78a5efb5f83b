package journal

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteStore persists records in a SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (creating if needed) a SQLite-backed store at path.
// Use ":memory:" for an ephemeral store.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// SQLite allows one writer; a single connection avoids lock contention
	// between the pool's connections on the events table.
	db.SetMaxOpenConns(1)

	store := &SQLiteStore{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return store, nil
}

func (s *SQLiteStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS events (
		seq        INTEGER PRIMARY KEY AUTOINCREMENT,
		id         TEXT NOT NULL UNIQUE,
		stream     TEXT NOT NULL,
		version    INTEGER NOT NULL,
		type       TEXT NOT NULL,
		data       TEXT NOT NULL,
		created_at TEXT NOT NULL,
		UNIQUE(stream, version)
	);
	CREATE INDEX IF NOT EXISTS idx_events_stream ON events(stream, version);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Append adds records to a stream inside one transaction.
func (s *SQLiteStore) Append(ctx context.Context, stream string, expectedVersion int, recs []*Record) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return -1, err
	}
	defer tx.Rollback()

	current, err := streamVersionTx(ctx, tx, stream)
	if err != nil {
		return -1, err
	}
	if current != expectedVersion {
		return -1, ErrConcurrencyConflict
	}

	version := current
	for _, r := range recs {
		version++
		r.Stream = stream
		r.Version = version
		_, err := tx.ExecContext(ctx,
			`INSERT INTO events (id, stream, version, type, data, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
			r.ID, r.Stream, r.Version, r.Type, string(r.Data), r.Timestamp.UTC().Format(time.RFC3339Nano),
		)
		if err != nil {
			return -1, fmt.Errorf("insert event: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return -1, err
	}
	return version, nil
}

// Read returns a stream's records from fromVersion onward.
func (s *SQLiteStore) Read(ctx context.Context, stream string, fromVersion int) ([]*Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, stream, version, type, data, created_at FROM events
		 WHERE stream = ? AND version >= ? ORDER BY version`,
		stream, fromVersion,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanRecords(rows)
}

// ReadAll returns records matching the filter in append order.
func (s *SQLiteStore) ReadAll(ctx context.Context, f Filter) ([]*Record, error) {
	query := `SELECT id, stream, version, type, data, created_at FROM events`
	var conds []string
	var args []any
	if f.Stream != "" {
		conds = append(conds, "stream = ?")
		args = append(args, f.Stream)
	}
	if len(f.Types) > 0 {
		placeholders := strings.Repeat("?,", len(f.Types))
		conds = append(conds, "type IN ("+placeholders[:len(placeholders)-1]+")")
		for _, t := range f.Types {
			args = append(args, t)
		}
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY seq"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanRecords(rows)
}

// StreamVersion returns the stream's current version, -1 if absent.
func (s *SQLiteStore) StreamVersion(ctx context.Context, stream string) (int, error) {
	var version sql.NullInt64
	err := s.db.QueryRowContext(ctx,
		`SELECT MAX(version) FROM events WHERE stream = ?`, stream,
	).Scan(&version)
	if err != nil {
		return -1, err
	}
	if !version.Valid {
		return -1, nil
	}
	return int(version.Int64), nil
}

// DeleteStream removes a stream and its records.
func (s *SQLiteStore) DeleteStream(ctx context.Context, stream string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM events WHERE stream = ?`, stream)
	return err
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func streamVersionTx(ctx context.Context, tx *sql.Tx, stream string) (int, error) {
	var version sql.NullInt64
	err := tx.QueryRowContext(ctx,
		`SELECT MAX(version) FROM events WHERE stream = ?`, stream,
	).Scan(&version)
	if err != nil {
		return -1, err
	}
	if !version.Valid {
		return -1, nil
	}
	return int(version.Int64), nil
}

func scanRecords(rows *sql.Rows) ([]*Record, error) {
	var out []*Record
	for rows.Next() {
		var r Record
		var data, createdAt string
		if err := rows.Scan(&r.ID, &r.Stream, &r.Version, &r.Type, &data, &createdAt); err != nil {
			return nil, err
		}
		r.Data = []byte(data)
		ts, err := time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return nil, fmt.Errorf("parse timestamp: %w", err)
		}
		r.Timestamp = ts
		out = append(out, &r)
	}
	return out, rows.Err()
}

// Ensure SQLiteStore implements Store.
var _ Store = (*SQLiteStore)(nil)
