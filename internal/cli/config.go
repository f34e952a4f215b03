package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"

	"github.com/mesh-intelligence/envgod/internal/paths"
	"github.com/mesh-intelligence/envgod/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"

	envPrefix = "ENVGOD"

	cfgKeyBackend     = "backend"
	cfgKeyDataDir     = "data_dir"
	cfgKeyStoreFile   = "store_file"
	cfgKeyBackupFile  = "backup_file"
	cfgKeyBackupLimit = "backup_limit"
	cfgKeySeparator   = "separator"
	cfgKeyLogLevel    = "log_level"
	cfgKeyLogFormat   = "log_format"
)

// envKeys may be overridden by ENVGOD_<KEY>. data_dir is left to
// paths.ResolveDataDir so that config.yaml keeps precedence over
// ENVGOD_DATA_DIR.
var envKeys = []string{
	cfgKeyBackend,
	cfgKeyStoreFile,
	cfgKeyBackupFile,
	cfgKeyBackupLimit,
	cfgKeySeparator,
	cfgKeyLogLevel,
	cfgKeyLogFormat,
}

// settings is the resolved configuration for one command invocation.
type settings struct {
	configDir string
	cfg       types.Config
}

// loadConfig reads config.yaml from configDir using Viper. A missing
// config.yaml is not an error; defaults apply.
func loadConfig(configDir string) (*viper.Viper, error) {
	v := viper.New()
	v.SetDefault(cfgKeyBackend, types.DefaultBackend)
	v.SetDefault(cfgKeyBackupFile, types.DefaultBackupFile)
	v.SetDefault(cfgKeyBackupLimit, types.DefaultBackupLimit)
	v.SetDefault(cfgKeySeparator, types.DefaultSeparator)
	v.SetDefault(cfgKeyLogLevel, types.DefaultLogLevel)
	v.SetDefault(cfgKeyLogFormat, types.DefaultLogFormat)

	v.SetEnvPrefix(envPrefix)
	for _, key := range envKeys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", key, err)
		}
	}

	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return v, nil
}

// loadSettings resolves directories, reads configuration, applies the
// --log-level flag, and validates the result.
func loadSettings() (*settings, error) {
	configDir, err := paths.ResolveConfigDir(flags.configDir)
	if err != nil {
		return nil, fmt.Errorf("resolve config dir: %w", err)
	}

	v, err := loadConfig(configDir)
	if err != nil {
		return nil, err
	}

	cfg := types.Config{
		Backend:     v.GetString(cfgKeyBackend),
		DataDir:     v.GetString(cfgKeyDataDir),
		StoreFile:   v.GetString(cfgKeyStoreFile),
		BackupFile:  v.GetString(cfgKeyBackupFile),
		BackupLimit: v.GetInt(cfgKeyBackupLimit),
		Separator:   v.GetString(cfgKeySeparator),
		LogLevel:    v.GetString(cfgKeyLogLevel),
		LogFormat:   v.GetString(cfgKeyLogFormat),
	}
	if flags.logLevel != "" {
		cfg.LogLevel = flags.logLevel
	}
	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	dataDir, err := paths.ResolveDataDir(flags.dataDir, cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("resolve data dir: %w", err)
	}
	cfg.DataDir = dataDir

	return &settings{configDir: configDir, cfg: cfg}, nil
}
