package types

import (
	"errors"
	"fmt"
)

// Config holds backend selection and file locations for the variable
// manager. Zero-valued fields are filled by WithDefaults.
type Config struct {
	Backend     string `json:"backend" yaml:"backend" mapstructure:"backend"`
	DataDir     string `json:"data_dir" yaml:"data_dir" mapstructure:"data_dir"`
	StoreFile   string `json:"store_file" yaml:"store_file" mapstructure:"store_file"`
	BackupFile  string `json:"backup_file" yaml:"backup_file" mapstructure:"backup_file"`
	BackupLimit int    `json:"backup_limit" yaml:"backup_limit" mapstructure:"backup_limit"`
	Separator   string `json:"separator" yaml:"separator" mapstructure:"separator"`
	LogLevel    string `json:"log_level" yaml:"log_level" mapstructure:"log_level"`
	LogFormat   string `json:"log_format" yaml:"log_format" mapstructure:"log_format"`
}

// Supported store backends.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// Defaults applied by WithDefaults.
const (
	DefaultBackend     = BackendJSON
	DefaultJSONStore   = "env_config.json"
	DefaultSQLiteStore = "env_config.db"
	DefaultBackupFile  = "backup_vars.json"
	DefaultBackupLimit = 50
	DefaultSeparator   = "_"
	DefaultLogLevel    = "warn"
	DefaultLogFormat   = "text"
)

// Config validation errors.
var (
	ErrBackendEmpty       = errors.New("backend must not be empty")
	ErrBackendUnknown     = errors.New("unknown backend")
	ErrBackupLimitInvalid = errors.New("backup limit must be positive")
	ErrSeparatorEmpty     = errors.New("separator must not be empty")
	ErrLogFormatUnknown   = errors.New("unknown log format")
)

// knownBackends lists the backends that Validate accepts.
var knownBackends = map[string]bool{
	BackendJSON:   true,
	BackendSQLite: true,
}

// WithDefaults returns a copy of c with empty fields replaced by defaults.
// The store file default depends on the backend.
func (c Config) WithDefaults() Config {
	if c.Backend == "" {
		c.Backend = DefaultBackend
	}
	if c.StoreFile == "" {
		if c.Backend == BackendSQLite {
			c.StoreFile = DefaultSQLiteStore
		} else {
			c.StoreFile = DefaultJSONStore
		}
	}
	if c.BackupFile == "" {
		c.BackupFile = DefaultBackupFile
	}
	if c.BackupLimit == 0 {
		c.BackupLimit = DefaultBackupLimit
	}
	if c.Separator == "" {
		c.Separator = DefaultSeparator
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	if c.LogFormat == "" {
		c.LogFormat = DefaultLogFormat
	}
	return c
}

// Validate checks that the Config is well-formed. It returns a sentinel error
// from this package on failure.
func (c Config) Validate() error {
	if c.Backend == "" {
		return ErrBackendEmpty
	}
	if !knownBackends[c.Backend] {
		return fmt.Errorf("%w: %q", ErrBackendUnknown, c.Backend)
	}
	if c.BackupLimit <= 0 {
		return ErrBackupLimitInvalid
	}
	if c.Separator == "" {
		return ErrSeparatorEmpty
	}
	switch c.LogFormat {
	case "", "text", "json":
	default:
		return fmt.Errorf("%w: %q", ErrLogFormatUnknown, c.LogFormat)
	}
	return nil
}
