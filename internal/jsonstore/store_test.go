package jsonstore

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileIsEmpty(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "env_config.json"))

	vars, err := s.Load()
	require.NoError(t, err)
	assert.Empty(t, vars)
}

func TestLoadCorruptFileIsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "env_config.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	vars, err := New(path).Load()
	assert.Error(t, err)
	assert.NotNil(t, vars)
	assert.Empty(t, vars)
}

func TestLoadNonStringValuesIsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "env_config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"A": 1}`), 0o644))

	vars, err := New(path).Load()
	assert.Error(t, err)
	assert.Empty(t, vars)
}

func TestSaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "env_config.json")
	s := New(path)

	want := map[string]string{"A": "1", "B": "two words"}
	require.NoError(t, s.Save(want))

	got, err := New(path).Load()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestSaveUsesFourSpaceIndent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "env_config.json")
	require.NoError(t, New(path).Save(map[string]string{"A": "1"}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "\n    \"A\": \"1\""), "got %q", data)
}

func TestSaveNilWritesEmptyObject(t *testing.T) {
	path := filepath.Join(t.TempDir(), "env_config.json")
	require.NoError(t, New(path).Save(nil))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{}\n", string(data))
}
