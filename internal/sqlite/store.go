// Package sqlite implements the persistent variable store on top of a SQLite
// database file. The database is opened lazily on first use so that a broken
// file degrades Load to an empty mapping instead of failing construction.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/envgod/pkg/types"
)

var _ types.Store = (*Store)(nil)

// Store implements types.Store with a single variables table.
type Store struct {
	mu   sync.Mutex
	path string
	db   *sql.DB
}

// NewStore returns a store for the database file at path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// openLocked opens the database and applies the schema if not already done.
// The caller must hold s.mu.
func (s *Store) openLocked() error {
	if s.db != nil {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", s.path, err)
	}
	for _, ddl := range schemaDDL {
		if _, err := db.Exec(ddl); err != nil {
			db.Close()
			return fmt.Errorf("applying schema: %w", err)
		}
	}
	s.db = db
	return nil
}

// Load returns every stored variable. Open or query failures yield an empty
// mapping and the error.
func (s *Store) Load() (map[string]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	vars := make(map[string]string)
	if err := s.openLocked(); err != nil {
		return vars, err
	}

	rows, err := s.db.Query("SELECT name, value FROM variables")
	if err != nil {
		return map[string]string{}, fmt.Errorf("querying variables: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var name, value string
		if err := rows.Scan(&name, &value); err != nil {
			return map[string]string{}, fmt.Errorf("scanning variable: %w", err)
		}
		vars[name] = value
	}
	if err := rows.Err(); err != nil {
		return map[string]string{}, fmt.Errorf("iterating variables: %w", err)
	}
	return vars, nil
}

// Save replaces the table content with vars inside one transaction.
func (s *Store) Save(vars map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.openLocked(); err != nil {
		return err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM variables"); err != nil {
		return fmt.Errorf("clearing variables: %w", err)
	}

	stmt, err := tx.Prepare("INSERT INTO variables (name, value, updated_at) VALUES (?, ?, ?)")
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC().Format(time.RFC3339)
	for name, value := range vars {
		if _, err := stmt.Exec(name, value, now); err != nil {
			return fmt.Errorf("inserting %s: %w", name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing: %w", err)
	}
	return nil
}

// Close releases the database handle. Close is idempotent.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}
