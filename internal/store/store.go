// Package store keeps harvested entries and harvest bookkeeping in a local
// SQLite database.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"hepharvest/internal/bibtex"
)

// Entry is one stored harvest result.
type Entry struct {
	Key       string
	Type      string
	Title     string
	DOI       string
	ArxivID   string
	RecordID  string
	Bibtex    string
	FetchedAt time.Time
}

// Store is a SQLite-backed entry store.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the store at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("creating store directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}

	// SQLite doesn't support concurrent writes
	db.SetMaxOpenConns(1)

	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS entries (
			key TEXT PRIMARY KEY,
			type TEXT NOT NULL,
			title TEXT,
			doi TEXT,
			arxiv_id TEXT,
			record_id TEXT,
			bibtex TEXT NOT NULL,
			fetched_at TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_entries_doi ON entries(doi) WHERE doi != '';
		CREATE INDEX IF NOT EXISTS idx_entries_record_id ON entries(record_id) WHERE record_id != '';

		CREATE TABLE IF NOT EXISTS _meta (
			key TEXT PRIMARY KEY,
			value TEXT
		);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("creating store schema: %w", err)
	}
	return nil
}

// Save inserts or replaces the stored entry for e's citation key.
func (s *Store) Save(e bibtex.Entry) error {
	if e.Key == "" {
		return fmt.Errorf("entry has no citation key")
	}

	_, err := s.db.Exec(`
		INSERT OR REPLACE INTO entries (key, type, title, doi, arxiv_id, record_id, bibtex, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, e.Key, e.Type, e.Title, e.DOI, e.ArxivID, e.RecordID, e.Bibtex,
		time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("saving entry %s: %w", e.Key, err)
	}
	return nil
}

// Get retrieves the stored entry for a citation key, or nil when absent.
func (s *Store) Get(key string) (*Entry, error) {
	row := s.db.QueryRow(`
		SELECT key, type, title, doi, arxiv_id, record_id, bibtex, fetched_at
		FROM entries WHERE key = ?
	`, key)

	e, err := scanEntry(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading entry %s: %w", key, err)
	}
	return e, nil
}

// List returns all stored entries, most recently fetched first.
func (s *Store) List() ([]Entry, error) {
	rows, err := s.db.Query(`
		SELECT key, type, title, doi, arxiv_id, record_id, bibtex, fetched_at
		FROM entries ORDER BY fetched_at DESC, key
	`)
	if err != nil {
		return nil, fmt.Errorf("listing entries: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning entry: %w", err)
		}
		entries = append(entries, *e)
	}
	return entries, rows.Err()
}

type scannable interface {
	Scan(dest ...any) error
}

func scanEntry(row scannable) (*Entry, error) {
	var e Entry
	var fetchedAt string
	if err := row.Scan(&e.Key, &e.Type, &e.Title, &e.DOI, &e.ArxivID, &e.RecordID, &e.Bibtex, &fetchedAt); err != nil {
		return nil, err
	}
	if t, err := time.Parse(time.RFC3339, fetchedAt); err == nil {
		e.FetchedAt = t
	}
	return &e, nil
}

// LastHarvestDate returns the end date (YYYY-MM-DD) of the previous
// cumulative harvest, or "" when none was recorded.
func (s *Store) LastHarvestDate() (string, error) {
	var value sql.NullString
	err := s.db.QueryRow("SELECT value FROM _meta WHERE key = 'last_harvest'").Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("reading last harvest date: %w", err)
	}
	return value.String, nil
}

// SetLastHarvestDate records the end date of a cumulative harvest so the
// next run can start where this one stopped.
func (s *Store) SetLastHarvestDate(date string) error {
	_, err := s.db.Exec(`INSERT OR REPLACE INTO _meta (key, value) VALUES ('last_harvest', ?)`, date)
	if err != nil {
		return fmt.Errorf("recording last harvest date: %w", err)
	}
	return nil
}
