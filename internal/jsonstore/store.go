// Package jsonstore implements the persistent variable store as a single
// JSON object file, rewritten in full on every save.
package jsonstore

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/mesh-intelligence/envgod/internal/atomicfile"
	"github.com/mesh-intelligence/envgod/pkg/types"
)

var _ types.Store = (*Store)(nil)

// Store is a types.Store backed by a JSON file of string→string pairs.
type Store struct {
	path string
}

// New returns a store for path. The file is not touched until Load or Save.
func New(path string) *Store {
	return &Store{path: path}
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads the backing file. A missing file yields an empty mapping and a
// nil error; a corrupt one yields an empty mapping and the parse error.
func (s *Store) Load() (map[string]string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return map[string]string{}, nil
		}
		return map[string]string{}, fmt.Errorf("reading %s: %w", s.path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return map[string]string{}, nil
	}

	vars := make(map[string]string)
	if err := json.Unmarshal(data, &vars); err != nil {
		return map[string]string{}, fmt.Errorf("parsing %s: %w", s.path, err)
	}
	return vars, nil
}

// Save writes vars as a 4-space indented JSON object, atomically.
func (s *Store) Save(vars map[string]string) error {
	if vars == nil {
		vars = map[string]string{}
	}
	data, err := json.MarshalIndent(vars, "", "    ")
	if err != nil {
		return fmt.Errorf("marshal store: %w", err)
	}
	data = append(data, '\n')
	return atomicfile.WriteFile(s.path, data, 0o600)
}

// Close is a no-op; the file is not held open between calls.
func (s *Store) Close() error {
	return nil
}
