package eventstore

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteStore is a Store backed by a SQLite database file. Use ":memory:"
// for an ephemeral database.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (and migrates) a SQLite-backed store.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("eventstore: open database: %w", err)
	}
	// The sqlite driver serializes writes; one connection avoids lock
	// contention between overlapping transactions.
	db.SetMaxOpenConns(1)

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("eventstore: migrate: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS events (
		stream    TEXT    NOT NULL,
		version   INTEGER NOT NULL,
		id        TEXT    NOT NULL,
		type      TEXT    NOT NULL,
		data      BLOB,
		timestamp TEXT    NOT NULL,
		PRIMARY KEY (stream, version)
	);
	CREATE INDEX IF NOT EXISTS idx_events_stream ON events(stream);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Append implements Store.
func (s *SQLiteStore) Append(ctx context.Context, stream string, expectedVersion int, events []*Event) (int, error) {
	if len(events) == 0 {
		return s.Version(ctx, stream)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("eventstore: begin: %w", err)
	}
	defer tx.Rollback()

	var current int
	err = tx.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(version), -1) FROM events WHERE stream = ?`, stream,
	).Scan(&current)
	if err != nil {
		return 0, fmt.Errorf("eventstore: read version: %w", err)
	}
	if current != expectedVersion {
		return 0, ErrConcurrencyConflict
	}

	version := current
	for _, ev := range events {
		version++
		_, err = tx.ExecContext(ctx,
			`INSERT INTO events (stream, version, id, type, data, timestamp) VALUES (?, ?, ?, ?, ?, ?)`,
			stream, version, ev.ID, ev.Type, []byte(ev.Data), ev.Timestamp.UTC().Format(time.RFC3339Nano),
		)
		if err != nil {
			return 0, fmt.Errorf("eventstore: insert: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("eventstore: commit: %w", err)
	}
	return version, nil
}

// Read implements Store.
func (s *SQLiteStore) Read(ctx context.Context, stream string, fromVersion int) ([]*Event, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT version, id, type, data, timestamp FROM events
		 WHERE stream = ? AND version >= ? ORDER BY version`,
		stream, fromVersion,
	)
	if err != nil {
		return nil, fmt.Errorf("eventstore: query: %w", err)
	}
	defer rows.Close()

	var out []*Event
	for rows.Next() {
		ev := &Event{Stream: stream}
		var ts string
		var data []byte
		if err := rows.Scan(&ev.Version, &ev.ID, &ev.Type, &data, &ts); err != nil {
			return nil, fmt.Errorf("eventstore: scan: %w", err)
		}
		if len(data) > 0 {
			ev.Data = data
		}
		ev.Timestamp, err = time.Parse(time.RFC3339Nano, ts)
		if err != nil {
			return nil, fmt.Errorf("eventstore: parse timestamp: %w", err)
		}
		out = append(out, ev)
	}
	return out, rows.Err()
}

// Version implements Store.
func (s *SQLiteStore) Version(ctx context.Context, stream string) (int, error) {
	var current int
	err := s.db.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(version), -1) FROM events WHERE stream = ?`, stream,
	).Scan(&current)
	if err != nil {
		return 0, fmt.Errorf("eventstore: read version: %w", err)
	}
	return current, nil
}

// Streams implements Store.
func (s *SQLiteStore) Streams(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT DISTINCT stream FROM events ORDER BY stream`)
	if err != nil {
		return nil, fmt.Errorf("eventstore: query streams: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("eventstore: scan stream: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// Close implements Store.
func (s *SQLiteStore) Close() error { return s.db.Close() }

var _ Store = (*SQLiteStore)(nil)
