package store

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"jobsift/internal/model"
)

// SQLiteStore persists extracted postings in a SQLite database, keyed by the
// normalized-title fingerprint, for cross-run newness detection and browsing.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) a SQLite database at dbPath and ensures
// the postings table exists.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	// Verify the connection is alive.
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging sqlite db: %w", err)
	}

	createTable := `CREATE TABLE IF NOT EXISTS postings (
		fingerprint TEXT PRIMARY KEY,
		title       TEXT NOT NULL,
		location    TEXT NOT NULL,
		description TEXT NOT NULL,
		first_seen  DATETIME DEFAULT CURRENT_TIMESTAMP
	)`
	if _, err := db.Exec(createTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating postings table: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// HasSeen returns true if a posting with the given fingerprint has already
// been recorded.
func (s *SQLiteStore) HasSeen(fingerprint string) (bool, error) {
	var exists int
	err := s.db.QueryRow("SELECT 1 FROM postings WHERE fingerprint = ?", fingerprint).Scan(&exists)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking seen status for %s: %w", fingerprint, err)
	}
	return true, nil
}

// SavePosting records a posting. An existing fingerprint keeps its
// first_seen timestamp but picks up the fresher location and description,
// since later runs may merge in details earlier runs missed.
func (s *SQLiteStore) SavePosting(p model.Posting) error {
	_, err := s.db.Exec(`INSERT INTO postings (fingerprint, title, location, description)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(fingerprint) DO UPDATE SET location = excluded.location, description = excluded.description`,
		p.Fingerprint(), p.Title, p.Location, p.Description)
	if err != nil {
		return fmt.Errorf("saving posting %s: %w", p.Fingerprint(), err)
	}
	return nil
}

// ListPostings returns all stored postings in first-seen order.
func (s *SQLiteStore) ListPostings() ([]model.Posting, error) {
	rows, err := s.db.Query("SELECT title, location, description FROM postings ORDER BY first_seen, fingerprint")
	if err != nil {
		return nil, fmt.Errorf("listing postings: %w", err)
	}
	defer rows.Close()

	var postings []model.Posting
	for rows.Next() {
		var p model.Posting
		if err := rows.Scan(&p.Title, &p.Location, &p.Description); err != nil {
			return nil, fmt.Errorf("scanning posting row: %w", err)
		}
		postings = append(postings, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating posting rows: %w", err)
	}
	return postings, nil
}

// Cleanup deletes postings first seen longer ago than the given duration.
func (s *SQLiteStore) Cleanup(olderThan time.Duration) error {
	// first_seen is CURRENT_TIMESTAMP, which SQLite writes in UTC.
	cutoff := time.Now().UTC().Add(-olderThan)
	_, err := s.db.Exec("DELETE FROM postings WHERE first_seen < ?", cutoff)
	if err != nil {
		return fmt.Errorf("cleaning up postings older than %v: %w", olderThan, err)
	}
	return nil
}

// IsEmpty returns true if the postings table has no entries.
func (s *SQLiteStore) IsEmpty() (bool, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM postings").Scan(&count)
	if err != nil {
		return false, fmt.Errorf("checking if store is empty: %w", err)
	}
	return count == 0, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
