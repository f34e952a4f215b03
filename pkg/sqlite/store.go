// Package sqlite provides the public API for the SQLite variable store.
// This package exposes the factory function while keeping implementation
// details internal.
package sqlite

import (
	"github.com/mesh-intelligence/envgod/internal/sqlite"
	"github.com/mesh-intelligence/envgod/pkg/types"
)

// NewStore creates a SQLite-backed store for the database file at path.
// The database is opened on first Load or Save; call Close when done.
//
// Example:
//
//	store := sqlite.NewStore(filepath.Join(dataDir, types.DefaultSQLiteStore))
//	defer store.Close()
//	vars, err := store.Load()
func NewStore(path string) types.Store {
	return sqlite.NewStore(path)
}
