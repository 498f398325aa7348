// Package store persists accepted extractions in a local SQLite database.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/orcado/orcado/internal/extractor"
)

// ErrNotFound is returned when no extraction has the requested id.
var ErrNotFound = errors.New("extraction not found")

const schema = `
CREATE TABLE IF NOT EXISTS extractions (
	id         TEXT PRIMARY KEY,
	source     TEXT NOT NULL,
	model_used TEXT NOT NULL,
	confidence REAL NOT NULL,
	quote      TEXT NOT NULL,
	created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_extractions_created_at ON extractions(created_at);
`

// Extraction is one persisted extraction row.
type Extraction struct {
	ID        string
	Source    string
	Quote     *extractor.Quote
	CreatedAt time.Time
}

// Store wraps the SQLite database holding extraction history.
type Store struct {
	db *sql.DB
}

// Open opens (and if needed creates) the database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save persists one accepted extraction and returns its id.
func (s *Store) Save(ctx context.Context, source string, q *extractor.Quote) (string, error) {
	payload, err := json.Marshal(q)
	if err != nil {
		return "", fmt.Errorf("encoding quote: %w", err)
	}

	id := uuid.NewString()
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO extractions (id, source, model_used, confidence, quote, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		id, source, q.ModelUsed, q.Confidence, string(payload),
		time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return "", fmt.Errorf("inserting extraction: %w", err)
	}
	return id, nil
}

// Get returns the extraction with the given id.
func (s *Store) Get(ctx context.Context, id string) (*Extraction, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, source, quote, created_at FROM extractions WHERE id = ?`, id)

	ext, err := scanExtraction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading extraction %s: %w", id, err)
	}
	return ext, nil
}

// List returns up to limit extractions, newest first. A limit of 0 means
// no limit.
func (s *Store) List(ctx context.Context, limit int) ([]*Extraction, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, source, quote, created_at FROM extractions
		 ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing extractions: %w", err)
	}
	defer rows.Close()

	var exts []*Extraction
	for rows.Next() {
		ext, err := scanExtraction(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning extraction: %w", err)
		}
		exts = append(exts, ext)
	}
	return exts, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanExtraction(row scanner) (*Extraction, error) {
	var ext Extraction
	var payload, createdAt string
	if err := row.Scan(&ext.ID, &ext.Source, &payload, &createdAt); err != nil {
		return nil, err
	}

	var q extractor.Quote
	if err := json.Unmarshal([]byte(payload), &q); err != nil {
		return nil, fmt.Errorf("decoding quote: %w", err)
	}
	ext.Quote = &q

	ts, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parsing timestamp: %w", err)
	}
	ext.CreatedAt = ts

	return &ext, nil
}
