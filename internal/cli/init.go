package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/envgod/internal/paths"
	"github.com/mesh-intelligence/envgod/pkg/types"
)

// configFile holds the structure written to config.yaml.
type configFile struct {
	Backend     string `yaml:"backend"`
	DataDir     string `yaml:"data_dir,omitempty"`
	StoreFile   string `yaml:"store_file"`
	BackupFile  string `yaml:"backup_file"`
	BackupLimit int    `yaml:"backup_limit"`
	Separator   string `yaml:"separator"`
	LogLevel    string `yaml:"log_level"`
	LogFormat   string `yaml:"log_format"`
}

const configHeader = "# envgod configuration\n" +
	"# Every key may be overridden by ENVGOD_<KEY>, except data_dir.\n" +
	"# Relative store_file and backup_file names live in data_dir.\n" +
	"# store_file follows the backend it was written for; update it when switching backends.\n\n"

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize envgod configuration and storage",
		Long:  "Create the configuration and data directories, write a default config.yaml, and create an empty store.",
		Args:  cobra.NoArgs,
		RunE:  runInit,
	}
}

func runInit(cmd *cobra.Command, args []string) error {
	s, err := loadSettings()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(s.configDir, 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	configPath := paths.ConfigFile(s.configDir)
	if err := writeConfigIfMissing(configPath, s.cfg); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	if err := os.MkdirAll(s.cfg.DataDir, 0o755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}
	if err := initStore(s); err != nil {
		return fmt.Errorf("initialize store: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "envgod initialized successfully")
	fmt.Fprintf(out, "config: %s\n", configPath)
	fmt.Fprintf(out, "store:  %s\n", paths.StoreFile(s.cfg))
	return nil
}

// initStore creates an empty store unless one already exists.
func initStore(s *settings) error {
	if _, err := os.Stat(paths.StoreFile(s.cfg)); err == nil {
		return nil
	}
	store := newStore(s)
	defer store.Close()
	return store.Save(map[string]string{})
}

// writeConfigIfMissing creates config.yaml from cfg if the file does not
// exist. If it already exists, the function returns nil (idempotent).
func writeConfigIfMissing(path string, cfg types.Config) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	file := configFile{
		Backend:     cfg.Backend,
		DataDir:     flags.dataDir,
		StoreFile:   cfg.StoreFile,
		BackupFile:  cfg.BackupFile,
		BackupLimit: cfg.BackupLimit,
		Separator:   cfg.Separator,
		LogLevel:    cfg.LogLevel,
		LogFormat:   cfg.LogFormat,
	}
	if file.DataDir != "" {
		file.DataDir = cfg.DataDir
	}

	data, err := yaml.Marshal(&file)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	return os.WriteFile(path, append([]byte(configHeader), data...), 0o644)
}
