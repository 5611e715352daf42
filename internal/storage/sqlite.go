package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"time"

	_ "modernc.org/sqlite"
)

var tablePattern = regexp.MustCompile(`^[a-z_]+$`)

// SQLiteStore keeps records as JSON documents in one table of a SQLite
// database. It satisfies Storer.
type SQLiteStore[T ValidatingSpec] struct {
	db    *sql.DB
	table string
}

// OpenSQLite opens (creating if needed) the database file at path.
func OpenSQLite(path string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database: %w", err)
	}
	// One writer at a time keeps SQLite from reporting a busy database.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("pinging sqlite database: %w", err)
	}
	return db, nil
}

func NewSQLiteStore[T ValidatingSpec](ctx context.Context, db *sql.DB, table string) (*SQLiteStore[T], error) {
	if !tablePattern.MatchString(table) {
		return nil, fmt.Errorf("invalid table name %q", table)
	}

	schema := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		id TEXT PRIMARY KEY,
		version INTEGER NOT NULL,
		spec TEXT NOT NULL,
		updated_at DATETIME NOT NULL
	);`, table)
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return nil, fmt.Errorf("creating %s table: %w", table, err)
	}

	return &SQLiteStore[T]{db: db, table: table}, nil
}

func (s *SQLiteStore[T]) Save(id string, o T) error {
	asset := &Asset[T]{Version: AssetVersion, Identifier: id, Spec: o}
	if err := asset.Validate(); err != nil {
		return fmt.Errorf("validating %s: %w", id, err)
	}

	data, err := json.Marshal(o)
	if err != nil {
		return fmt.Errorf("marshalling json: %w", err)
	}

	query := fmt.Sprintf(`INSERT INTO %s (id, version, spec, updated_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET version = excluded.version, spec = excluded.spec, updated_at = excluded.updated_at`, s.table)
	if _, err := s.db.Exec(query, id, asset.Version, string(data), time.Now().UTC()); err != nil {
		return fmt.Errorf("saving %s: %w", id, err)
	}
	return nil
}

// Get returns the record for id, or the zero value when it is missing or
// unreadable.
func (s *SQLiteStore[T]) Get(id string) T {
	var zero T

	var data string
	query := fmt.Sprintf(`SELECT spec FROM %s WHERE id = ?`, s.table)
	err := s.db.QueryRow(query, id).Scan(&data)
	if err == sql.ErrNoRows {
		return zero
	}
	if err != nil {
		slog.Warn("reading record", "table", s.table, "id", id, "error", err)
		return zero
	}

	v, err := s.decode(data)
	if err != nil {
		slog.Warn("decoding record", "table", s.table, "id", id, "error", err)
		return zero
	}
	return v
}

func (s *SQLiteStore[T]) GetAll() map[string]T {
	vals := map[string]T{}

	rows, err := s.db.Query(fmt.Sprintf(`SELECT id, spec FROM %s`, s.table))
	if err != nil {
		slog.Warn("listing records", "table", s.table, "error", err)
		return vals
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var id, data string
		if err := rows.Scan(&id, &data); err != nil {
			slog.Warn("scanning record", "table", s.table, "error", err)
			continue
		}
		v, err := s.decode(data)
		if err != nil {
			slog.Warn("decoding record", "table", s.table, "id", id, "error", err)
			continue
		}
		vals[id] = v
	}
	if err := rows.Err(); err != nil {
		slog.Warn("listing records", "table", s.table, "error", err)
	}
	return vals
}

func (s *SQLiteStore[T]) decode(data string) (T, error) {
	var v T
	if err := json.Unmarshal([]byte(data), &v); err != nil {
		return v, err
	}
	return v, nil
}
