package osenv

import "github.com/mesh-intelligence/envgod/pkg/types"

// Nop is a persister that does nothing. It is the default on platforms
// without a per-user environment registry and in tests.
type Nop struct{}

var _ types.Persister = Nop{}

// SetPersistent does nothing.
func (Nop) SetPersistent(name, value string) error { return nil }

// DeletePersistent does nothing.
func (Nop) DeletePersistent(name string) error { return nil }

// NewPersister returns the persister for the running platform.
func NewPersister() types.Persister {
	return newPlatformPersister()
}
