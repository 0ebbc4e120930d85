package devlogs

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// pageStore persists generated detail-page entries in a local SQLite file so
// a restarted process can serve previously generated pages (stale, pending
// revalidation) instead of refetching every slug cold. It is the disk half of
// the page cache; the remote content store stays the source of truth.
type pageStore struct {
	db *sql.DB
}

// newPageStore opens (or creates) the SQLite database at path, ensures the
// data directory exists, and runs schema setup.
func newPageStore(path string) (*pageStore, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// WAL so the background revalidator can write while requests read, and a
	// busy timeout so writers wait instead of failing with SQLITE_BUSY.
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
	`); err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	s := &pageStore{db: db}
	if err := s.ensureSchema(); err != nil {
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *pageStore) Close() error {
	return s.db.Close()
}

func (s *pageStore) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS pages (
    slug TEXT PRIMARY KEY,
    data TEXT NOT NULL,
    not_found INTEGER NOT NULL DEFAULT 0,
    fetched TEXT NOT NULL
);
`)
	return err
}

// Save upserts one generated entry.
func (s *pageStore) Save(slug string, e pageEntry) error {
	data, err := json.Marshal(e.Post)
	if err != nil {
		return fmt.Errorf("encode page %q: %w", slug, err)
	}
	notFound := 0
	if e.NotFound {
		notFound = 1
	}
	_, err = s.db.Exec(`INSERT OR REPLACE INTO pages (slug, data, not_found, fetched) VALUES (?, ?, ?, ?)`,
		slug, string(data), notFound, e.Fetched.UTC().Format(time.RFC3339Nano))
	return err
}

// LoadAll returns every persisted entry keyed by slug. Rows that no longer
// decode are skipped rather than failing startup.
func (s *pageStore) LoadAll() (map[string]pageEntry, error) {
	rows, err := s.db.Query(`SELECT slug, data, not_found, fetched FROM pages`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make(map[string]pageEntry)
	for rows.Next() {
		var slug, data, fetched string
		var notFound int
		if err := rows.Scan(&slug, &data, &notFound, &fetched); err != nil {
			return nil, err
		}
		e := pageEntry{NotFound: notFound == 1}
		if t, err := time.Parse(time.RFC3339Nano, fetched); err == nil {
			e.Fetched = t
		}
		if !e.NotFound {
			if err := json.Unmarshal([]byte(data), &e.Post); err != nil {
				continue
			}
		}
		entries[slug] = e
	}
	return entries, rows.Err()
}
