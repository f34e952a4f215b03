package types

import "errors"

// Environment is the ambient name/value namespace visible to the current
// process and inherited by the children it spawns. The real implementation
// wraps the process environment; tests use an in-memory map.
type Environment interface {
	// Lookup returns the value of name and whether it is set.
	Lookup(name string) (string, bool)

	// Set assigns value to name, overwriting any previous value.
	// Returns ErrInvalidName or ErrInvalidValue for values the namespace
	// cannot hold.
	Set(name, value string) error

	// Unset removes name. Removing an unset name is not an error.
	Unset(name string) error

	// Snapshot returns a copy of every variable visible at call time.
	Snapshot() map[string]string
}

// Store is a name/value mapping that survives process restarts.
// Save always rewrites the full mapping.
type Store interface {
	// Load returns the persisted mapping. A missing backing file yields an
	// empty mapping and a nil error. An unreadable or corrupt one yields an
	// empty mapping and a non-nil error the caller may log.
	Load() (map[string]string, error)

	// Save replaces the persisted mapping with vars.
	Save(vars map[string]string) error

	// Close releases backend resources. Close is idempotent.
	Close() error
}

// Persister synchronizes variables with the operating system's per-user
// persistent environment so future login sessions see them.
type Persister interface {
	SetPersistent(name, value string) error
	DeletePersistent(name string) error
}

// Input errors.
var (
	ErrInvalidName  = errors.New("invalid variable name")
	ErrInvalidValue = errors.New("invalid variable value")
	ErrNotObject    = errors.New("document is not an object")
)
