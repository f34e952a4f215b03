// Package manager implements the variable manager: the single surface
// through which front-ends read and change environment variables, persist
// them, and are stopped from deleting critical ones.
package manager

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/mesh-intelligence/envgod/internal/backup"
	"github.com/mesh-intelligence/envgod/internal/flatten"
	"github.com/mesh-intelligence/envgod/internal/format"
	"github.com/mesh-intelligence/envgod/internal/osenv"
	"github.com/mesh-intelligence/envgod/internal/safety"
	"github.com/mesh-intelligence/envgod/pkg/types"
)

// ErrNoStore is returned by New when Options.Store is nil.
var ErrNoStore = errors.New("manager requires a store")

// Options wires a Manager to its collaborators.
type Options struct {
	// Env is the live namespace. Defaults to the process environment.
	Env types.Environment
	// Store holds persisted variables. Required.
	Store types.Store
	// Backup receives a record before a persisted variable is deleted.
	// Nil disables the deletion log.
	Backup *backup.Log
	// Persister mirrors persisted changes into the OS. Defaults to a no-op.
	Persister types.Persister
	// Separator joins keys when flattening imports. Defaults to "_".
	Separator string
	// Logger receives degraded-persistence warnings.
	Logger *slog.Logger
}

// DeleteOptions controls Delete.
type DeleteOptions struct {
	// Persist also removes the variable from the store and the OS.
	Persist bool
	// Force bypasses the protected and sensitive checks.
	Force bool
}

// ImportOptions controls Import.
type ImportOptions struct {
	// Persist stores every imported variable.
	Persist bool
	// Flatten joins nested keys instead of storing nested objects as JSON.
	Flatten bool
}

// Manager orchestrates the live environment, the persistent store, the
// deletion log, and the OS persister. All methods are safe for concurrent
// use; calls are serialized.
type Manager struct {
	mu        sync.Mutex
	env       types.Environment
	store     types.Store
	backup    *backup.Log
	persister types.Persister
	separator string
	logger    *slog.Logger

	// saved is the in-memory view of the store; it stays authoritative when
	// a save fails.
	saved map[string]string
}

// New builds a Manager and loads the store once. A store that cannot be
// loaded is logged and treated as empty.
func New(opts Options) (*Manager, error) {
	if opts.Store == nil {
		return nil, ErrNoStore
	}
	m := &Manager{
		env:       opts.Env,
		store:     opts.Store,
		backup:    opts.Backup,
		persister: opts.Persister,
		separator: opts.Separator,
		logger:    opts.Logger,
	}
	if m.env == nil {
		m.env = osenv.Process{}
	}
	if m.persister == nil {
		m.persister = osenv.Nop{}
	}
	if m.separator == "" {
		m.separator = flatten.DefaultSeparator
	}
	if m.logger == nil {
		m.logger = slog.Default()
	}

	saved, err := m.store.Load()
	if err != nil {
		m.logger.Warn("persistent store unreadable, starting empty", "error", err)
	}
	if saved == nil {
		saved = map[string]string{}
	}
	m.saved = saved
	return m, nil
}

// Close releases the store.
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.store.Close()
}

// GetAll returns a snapshot of every live variable.
func (m *Manager) GetAll() map[string]string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.env.Snapshot()
}

// Get returns the live value of name and whether it is set.
func (m *Manager) Get(name string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.env.Lookup(name)
}

// Saved returns a copy of the persisted variables.
func (m *Manager) Saved() map[string]string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return copyMap(m.saved)
}

// Set writes name=value into the live environment. With persist it also
// stores the pair and mirrors it into the OS; failures there are logged and
// do not undo the live change.
func (m *Manager) Set(name, value string, persist bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.setLocked(name, value, persist)
}

func (m *Manager) setLocked(name, value string, persist bool) error {
	if err := m.env.Set(name, value); err != nil {
		return fmt.Errorf("set %s: %w", name, err)
	}
	if !persist {
		return nil
	}

	m.saved[name] = value
	m.saveLocked()
	if err := m.persister.SetPersistent(name, value); err != nil {
		m.logger.Warn("OS environment update failed", "name", name, "error", err)
	}
	return nil
}

// Delete removes name from the live environment and, with Persist, from the
// store and the OS. Protected and sensitive names are refused with a
// *types.SafetyError unless Force is set; nothing changes in that case.
// Before a persisted variable with a value is removed, a record is appended
// to the deletion log; if that fails the deletion is abandoned.
func (m *Manager) Delete(name string, opts DeleteOptions) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !opts.Force {
		if class := safety.Classify(name); class != types.Normal {
			return &types.SafetyError{
				Name:           name,
				Class:          class,
				Recommendation: safety.Recommendation(name),
			}
		}
	}

	if opts.Persist && m.backup != nil {
		if old, ok := m.priorValueLocked(name); ok {
			if _, err := m.backup.Append(name, old); err != nil {
				return fmt.Errorf("backup %s before delete: %w", name, err)
			}
		}
	}

	if _, ok := m.env.Lookup(name); ok {
		if err := m.env.Unset(name); err != nil {
			return fmt.Errorf("unset %s: %w", name, err)
		}
	}

	if !opts.Persist {
		return nil
	}
	if _, ok := m.saved[name]; ok {
		delete(m.saved, name)
		m.saveLocked()
	}
	if err := m.persister.DeletePersistent(name); err != nil {
		m.logger.Debug("OS environment delete skipped", "name", name, "error", err)
	}
	return nil
}

// priorValueLocked returns the value worth backing up: the live value, else
// the stored one. Empty values are not backed up.
func (m *Manager) priorValueLocked(name string) (string, bool) {
	if v, ok := m.env.Lookup(name); ok && v != "" {
		return v, true
	}
	if v, ok := m.saved[name]; ok && v != "" {
		return v, true
	}
	return "", false
}

// Search returns every live variable whose name or value contains term,
// ignoring case.
func (m *Manager) Search(term string) map[string]string {
	m.mu.Lock()
	defer m.mu.Unlock()

	needle := strings.ToLower(term)
	out := make(map[string]string)
	for name, value := range m.env.Snapshot() {
		if strings.Contains(strings.ToLower(name), needle) ||
			strings.Contains(strings.ToLower(value), needle) {
			out[name] = value
		}
	}
	return out
}

// Export writes the live environment, or only the listed names that are
// set, to path. The format follows the file extension; JSON is the default.
func (m *Manager) Export(path string, names []string) error {
	m.mu.Lock()
	vars := m.exportSetLocked(names)
	m.mu.Unlock()

	if err := format.WriteFile(path, vars); err != nil {
		return fmt.Errorf("export to %s: %w", path, err)
	}
	return nil
}

func (m *Manager) exportSetLocked(names []string) map[string]string {
	if len(names) == 0 {
		return m.env.Snapshot()
	}
	out := make(map[string]string, len(names))
	for _, name := range names {
		if v, ok := m.env.Lookup(name); ok {
			out[name] = v
		}
	}
	return out
}

// Import reads variables from path and sets each one as Set would, in
// document order. Nested documents are flattened when Flatten is set;
// otherwise nested values are stored as their JSON text. There is no
// rollback: on failure the variables set so far stay set. Returns how many
// variables were set.
func (m *Manager) Import(path string, opts ImportOptions) (int, error) {
	doc, err := format.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("import from %s: %w", path, err)
	}

	var vars flatten.Pairs
	if opts.Flatten && flatten.IsNested(doc) {
		vars = flatten.Flatten(doc, m.separator)
	} else {
		vars = flatten.Shallow(doc)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for _, v := range vars {
		if err := m.setLocked(v.Name, v.Value, opts.Persist); err != nil {
			return n, fmt.Errorf("import from %s: %w", path, err)
		}
		n++
	}
	return n, nil
}

// ClassifySafety returns the safety summary for name.
func (m *Manager) ClassifySafety(name string) safety.Info {
	return safety.Describe(name)
}

// saveLocked writes the in-memory view to the store, logging failures.
func (m *Manager) saveLocked() {
	if err := m.store.Save(copyMap(m.saved)); err != nil {
		m.logger.Warn("persistent store save failed", "error", err)
	}
}

func copyMap(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
