// Package paths locates envgod's configuration file, persistent store, and
// deletion log.
package paths

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/mesh-intelligence/envgod/pkg/types"
)

// appDirName is the directory created under the platform config and data
// roots.
const appDirName = "envgod"

// ConfigFileName is the configuration file inside the config directory.
const ConfigFileName = "config.yaml"

// Environment variable names for directory overrides.
const (
	EnvConfigDir = "ENVGOD_CONFIG_DIR"
	EnvDataDir   = "ENVGOD_DATA_DIR"
)

// platformDir holds platform lookups that tests override.
var platformDir = struct {
	goos          string
	homeDir       func() (string, error)
	userConfigDir func() (string, error)
}{
	goos:          runtime.GOOS,
	homeDir:       os.UserHomeDir,
	userConfigDir: os.UserConfigDir,
}

// userDir returns the envgod directory under a per-user root. On Linux the
// root is $xdgVar, or ~/<linuxFallback...> when unset. Elsewhere it is
// os.UserConfigDir: ~/Library/Application Support on macOS, %APPDATA% on
// Windows. Config and data share that root off Linux.
func userDir(xdgVar string, linuxFallback ...string) (string, error) {
	if platformDir.goos != "linux" {
		root, err := platformDir.userConfigDir()
		if err != nil {
			return "", fmt.Errorf("locate user config dir: %w", err)
		}
		return filepath.Join(root, appDirName), nil
	}
	if xdg := os.Getenv(xdgVar); xdg != "" {
		return filepath.Join(xdg, appDirName), nil
	}
	home, err := platformDir.homeDir()
	if err != nil {
		return "", fmt.Errorf("locate home dir: %w", err)
	}
	parts := append([]string{home}, linuxFallback...)
	return filepath.Join(append(parts, appDirName)...), nil
}

// DefaultConfigDir returns where config.yaml lives when nothing overrides it.
func DefaultConfigDir() (string, error) {
	return userDir("XDG_CONFIG_HOME", ".config")
}

// DefaultDataDir returns where the store and deletion log live when nothing
// overrides it.
func DefaultDataDir() (string, error) {
	return userDir("XDG_DATA_HOME", ".local", "share")
}

// firstAbs returns the first non-empty candidate as an absolute path, or
// the result of fallback when all are empty.
func firstAbs(fallback func() (string, error), candidates ...string) (string, error) {
	for _, c := range candidates {
		if c != "" {
			return filepath.Abs(c)
		}
	}
	return fallback()
}

// ResolveConfigDir picks the config directory: flag, then
// ENVGOD_CONFIG_DIR, then DefaultConfigDir.
func ResolveConfigDir(flag string) (string, error) {
	return firstAbs(DefaultConfigDir, flag, os.Getenv(EnvConfigDir))
}

// ResolveDataDir picks the data directory: flag, then the data_dir value
// from config.yaml, then ENVGOD_DATA_DIR, then DefaultDataDir.
func ResolveDataDir(flag, configValue string) (string, error) {
	return firstAbs(DefaultDataDir, flag, configValue, os.Getenv(EnvDataDir))
}

// ConfigFile returns the config.yaml path inside configDir.
func ConfigFile(configDir string) string {
	return filepath.Join(configDir, ConfigFileName)
}

// InDataDir places a store or log file name inside dataDir. Absolute names
// are returned unchanged so config.yaml can point a file elsewhere.
func InDataDir(dataDir, name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(dataDir, name)
}

// StoreFile returns the persistent store path for cfg.
func StoreFile(cfg types.Config) string {
	return InDataDir(cfg.DataDir, cfg.StoreFile)
}

// BackupFile returns the deletion log path for cfg.
func BackupFile(cfg types.Config) string {
	return InDataDir(cfg.DataDir, cfg.BackupFile)
}
