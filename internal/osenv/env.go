// Package osenv provides the process environment behind the
// types.Environment interface, an in-memory stand-in for tests, and the
// platform persister that writes variables into the per-user OS
// environment.
package osenv

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/mesh-intelligence/envgod/pkg/types"
)

var (
	_ types.Environment = Process{}
	_ types.Environment = (*Map)(nil)
)

// ValidateName rejects names the process environment cannot hold: empty
// names and names containing '=' or NUL.
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", types.ErrInvalidName)
	}
	if strings.ContainsAny(name, "=\x00") {
		return fmt.Errorf("%w: %q contains '=' or NUL", types.ErrInvalidName, name)
	}
	return nil
}

// ValidateValue rejects values containing NUL.
func ValidateValue(value string) error {
	if strings.ContainsRune(value, 0) {
		return fmt.Errorf("%w: contains NUL", types.ErrInvalidValue)
	}
	return nil
}

// Process is the live process environment. Changes are visible to this
// process and inherited by children it spawns afterwards.
type Process struct{}

// Lookup returns the value of name.
func (Process) Lookup(name string) (string, bool) {
	return os.LookupEnv(name)
}

// Set assigns value to name.
func (Process) Set(name, value string) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	if err := ValidateValue(value); err != nil {
		return err
	}
	if err := os.Setenv(name, value); err != nil {
		return fmt.Errorf("setenv %s: %w", name, err)
	}
	return nil
}

// Unset removes name.
func (Process) Unset(name string) error {
	if err := os.Unsetenv(name); err != nil {
		return fmt.Errorf("unsetenv %s: %w", name, err)
	}
	return nil
}

// Snapshot returns every variable currently set.
func (Process) Snapshot() map[string]string {
	return parseEnviron(os.Environ())
}

// parseEnviron splits KEY=VALUE entries. Windows reports per-drive entries
// like "=C:=C:\dir" whose name starts with '='; the separator search skips
// that leading byte.
func parseEnviron(environ []string) map[string]string {
	out := make(map[string]string, len(environ))
	for _, kv := range environ {
		if kv == "" {
			continue
		}
		i := strings.IndexByte(kv[1:], '=')
		if i < 0 {
			out[kv] = ""
			continue
		}
		out[kv[:i+1]] = kv[i+2:]
	}
	return out
}

// Map is an in-memory environment. It applies the same validation as
// Process so tests see the same failures.
type Map struct {
	mu    sync.RWMutex
	items map[string]string
}

// NewMap returns a Map seeded with a copy of initial.
func NewMap(initial map[string]string) *Map {
	items := make(map[string]string, len(initial))
	for k, v := range initial {
		items[k] = v
	}
	return &Map{items: items}
}

// Lookup returns the value of name.
func (m *Map) Lookup(name string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.items[name]
	return v, ok
}

// Set assigns value to name.
func (m *Map) Set(name, value string) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	if err := ValidateValue(value); err != nil {
		return err
	}
	m.mu.Lock()
	m.items[name] = value
	m.mu.Unlock()
	return nil
}

// Unset removes name.
func (m *Map) Unset(name string) error {
	m.mu.Lock()
	delete(m.items, name)
	m.mu.Unlock()
	return nil
}

// Snapshot returns a copy of every variable.
func (m *Map) Snapshot() map[string]string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[string]string, len(m.items))
	for k, v := range m.items {
		out[k] = v
	}
	return out
}
