package paths

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/envgod/pkg/types"
)

// fakePlatform pins the platform lookups for the duration of a test.
func fakePlatform(t *testing.T, goos, home, userConfig string) {
	t.Helper()
	orig := platformDir
	platformDir.goos = goos
	platformDir.homeDir = func() (string, error) { return home, nil }
	platformDir.userConfigDir = func() (string, error) { return userConfig, nil }
	t.Cleanup(func() { platformDir = orig })
}

func TestDefaultDirsLinux(t *testing.T) {
	home := filepath.FromSlash("/home/dev")
	fakePlatform(t, "linux", home, "unused")

	t.Run("XDG variables win", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", filepath.FromSlash("/xdg/config"))
		t.Setenv("XDG_DATA_HOME", filepath.FromSlash("/xdg/data"))

		got, err := DefaultConfigDir()
		require.NoError(t, err)
		assert.Equal(t, filepath.FromSlash("/xdg/config/envgod"), got)

		got, err = DefaultDataDir()
		require.NoError(t, err)
		assert.Equal(t, filepath.FromSlash("/xdg/data/envgod"), got)
	})

	t.Run("home fallbacks", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "")
		t.Setenv("XDG_DATA_HOME", "")

		got, err := DefaultConfigDir()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(home, ".config", "envgod"), got)

		got, err = DefaultDataDir()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(home, ".local", "share", "envgod"), got)
	})

	t.Run("home lookup failure", func(t *testing.T) {
		t.Setenv("XDG_DATA_HOME", "")
		platformDir.homeDir = func() (string, error) { return "", errors.New("no home") }

		_, err := DefaultDataDir()
		assert.ErrorContains(t, err, "no home")
	})
}

func TestDefaultDirsElsewhereShareUserConfigDir(t *testing.T) {
	for _, goos := range []string{"darwin", "windows"} {
		t.Run(goos, func(t *testing.T) {
			root := filepath.FromSlash("/Users/dev/Library/Application Support")
			fakePlatform(t, goos, "unused", root)
			t.Setenv("XDG_CONFIG_HOME", filepath.FromSlash("/ignored"))

			cfg, err := DefaultConfigDir()
			require.NoError(t, err)
			data, err := DefaultDataDir()
			require.NoError(t, err)

			assert.Equal(t, filepath.Join(root, "envgod"), cfg)
			assert.Equal(t, cfg, data)
		})
	}
}

func TestResolveConfigDir(t *testing.T) {
	fakePlatform(t, "darwin", "unused", filepath.FromSlash("/platform"))

	tests := []struct {
		name   string
		flag   string
		envVal string
		want   string
	}{
		{"flag wins over env", "/explicit/config", "/env/config", "/explicit/config"},
		{"env wins when flag empty", "", "/env/config", "/env/config"},
		{"platform default when both empty", "", "", "/platform/envgod"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvConfigDir, filepath.FromSlash(tt.envVal))
			got, err := ResolveConfigDir(filepath.FromSlash(tt.flag))
			require.NoError(t, err)

			want, err := filepath.Abs(filepath.FromSlash(tt.want))
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestResolveDataDir(t *testing.T) {
	fakePlatform(t, "darwin", "unused", filepath.FromSlash("/platform"))

	tests := []struct {
		name        string
		flag        string
		configValue string
		envVal      string
		want        string
	}{
		{"flag wins over all", "/flag/data", "/config/data", "/env/data", "/flag/data"},
		{"config.yaml wins over env", "", "/config/data", "/env/data", "/config/data"},
		{"env wins when flag and config empty", "", "", "/env/data", "/env/data"},
		{"platform default when all empty", "", "", "", "/platform/envgod"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvDataDir, filepath.FromSlash(tt.envVal))
			got, err := ResolveDataDir(filepath.FromSlash(tt.flag), filepath.FromSlash(tt.configValue))
			require.NoError(t, err)

			want, err := filepath.Abs(filepath.FromSlash(tt.want))
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestResolveMakesRelativePathsAbsolute(t *testing.T) {
	t.Setenv(EnvConfigDir, "")
	got, err := ResolveConfigDir("relative/path")
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(got), "expected absolute path, got %s", got)

	t.Setenv(EnvDataDir, "relative/env")
	got, err = ResolveDataDir("", "")
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(got), "expected absolute path, got %s", got)
}

func TestDataFiles(t *testing.T) {
	dataDir := filepath.FromSlash("/var/envgod")
	elsewhere, err := filepath.Abs(filepath.FromSlash("/srv/backups/deleted.json"))
	require.NoError(t, err)

	cfg := types.Config{
		DataDir:    dataDir,
		StoreFile:  types.DefaultJSONStore,
		BackupFile: elsewhere,
	}
	assert.Equal(t, filepath.Join(dataDir, types.DefaultJSONStore), StoreFile(cfg))
	assert.Equal(t, elsewhere, BackupFile(cfg))

	assert.Equal(t, filepath.Join(dataDir, "sub", "x.db"), InDataDir(dataDir, filepath.Join("sub", "x.db")))
	assert.Equal(t, filepath.Join("cfg", ConfigFileName), ConfigFile("cfg"))
}
