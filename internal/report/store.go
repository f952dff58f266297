// Package report persists batch extraction results to SQLite so a run over a
// findings list leaves a queryable record of every extracted function.
package report

import (
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/mattn/go-sqlite3"
)

const schema = `
CREATE TABLE IF NOT EXISTS extractions (
	id          TEXT PRIMARY KEY,
	location    TEXT NOT NULL,
	line        INTEGER NOT NULL,
	language    TEXT NOT NULL,
	start_line  INTEGER NOT NULL,
	end_line    INTEGER NOT NULL,
	kind        TEXT NOT NULL,
	compressed  INTEGER NOT NULL,
	text        TEXT NOT NULL,
	error       TEXT NOT NULL DEFAULT '',
	created_at  TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_extractions_location ON extractions(location);
`

// Record is one extraction outcome: either Text is set, or Error explains
// why the location yielded nothing.
type Record struct {
	ID         string
	Location   string
	Line       int
	Language   string
	StartLine  int
	EndLine    int
	Kind       string
	Compressed bool
	Text       string
	Error      string
	CreatedAt  time.Time
}

// Store writes extraction records to a SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the report database and ensures the schema exists.
func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open report database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create report schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Write persists a batch of records atomically.
func (s *Store) Write(records []Record) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() // Safe to call even after commit

	for _, r := range records {
		_, err := sq.Insert("extractions").
			Columns("id", "location", "line", "language", "start_line", "end_line", "kind", "compressed", "text", "error", "created_at").
			Values(
				r.ID,
				r.Location,
				r.Line,
				r.Language,
				r.StartLine,
				r.EndLine,
				r.Kind,
				r.Compressed,
				r.Text,
				r.Error,
				r.CreatedAt.UTC().Format(time.RFC3339),
			).
			RunWith(tx).
			Exec()
		if err != nil {
			return fmt.Errorf("failed to insert record %s: %w", r.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// ByLocation returns the stored records for one location, newest first.
func (s *Store) ByLocation(location string) ([]Record, error) {
	rows, err := sq.Select("id", "location", "line", "language", "start_line", "end_line", "kind", "compressed", "text", "error", "created_at").
		From("extractions").
		Where(sq.Eq{"location": location}).
		OrderBy("created_at DESC").
		RunWith(s.db).
		Query()
	if err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

// All returns every stored record, newest first.
func (s *Store) All() ([]Record, error) {
	rows, err := sq.Select("id", "location", "line", "language", "start_line", "end_line", "kind", "compressed", "text", "error", "created_at").
		From("extractions").
		OrderBy("created_at DESC").
		RunWith(s.db).
		Query()
	if err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

func scanRecords(rows *sql.Rows) ([]Record, error) {
	var out []Record
	for rows.Next() {
		var r Record
		var createdAt string
		if err := rows.Scan(&r.ID, &r.Location, &r.Line, &r.Language, &r.StartLine, &r.EndLine, &r.Kind, &r.Compressed, &r.Text, &r.Error, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		t, err := time.Parse(time.RFC3339, createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse created_at %q: %w", createdAt, err)
		}
		r.CreatedAt = t
		out = append(out, r)
	}
	return out, rows.Err()
}
