package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/envgod/internal/backup"
	"github.com/mesh-intelligence/envgod/internal/jsonstore"
	"github.com/mesh-intelligence/envgod/internal/logging"
	"github.com/mesh-intelligence/envgod/internal/manager"
	"github.com/mesh-intelligence/envgod/internal/osenv"
	"github.com/mesh-intelligence/envgod/internal/paths"
	"github.com/mesh-intelligence/envgod/pkg/sqlite"
	"github.com/mesh-intelligence/envgod/pkg/types"
)

// platform supplies the live environment and the OS persister. Tests swap
// both for in-memory fakes.
var platform = struct {
	environment func() types.Environment
	persister   func() types.Persister
}{
	environment: func() types.Environment { return osenv.Process{} },
	persister:   osenv.NewPersister,
}

// newStore returns the store selected by cfg.Backend.
func newStore(s *settings) types.Store {
	if s.cfg.Backend == types.BackendSQLite {
		return sqlite.NewStore(paths.StoreFile(s.cfg))
	}
	return jsonstore.New(paths.StoreFile(s.cfg))
}

// withManager loads settings, opens a manager over the configured store,
// runs fn, and closes the manager.
func withManager(cmd *cobra.Command, fn func(*manager.Manager) error) error {
	s, err := loadSettings()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(s.cfg.DataDir, 0o755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}

	logger := logging.New(cmd.ErrOrStderr(), s.cfg.LogLevel, s.cfg.LogFormat)
	m, err := manager.New(manager.Options{
		Env:   platform.environment(),
		Store: newStore(s),
		Backup: backup.New(paths.BackupFile(s.cfg),
			backup.WithLimit(s.cfg.BackupLimit),
			backup.WithLogger(logger)),
		Persister: platform.persister(),
		Separator: s.cfg.Separator,
		Logger:    logger,
	})
	if err != nil {
		return fmt.Errorf("open manager: %w", err)
	}
	defer func() {
		if err := m.Close(); err != nil {
			logger.Warn("close store failed", "error", err)
		}
	}()

	return fn(m)
}

// printJSON writes v as indented JSON.
func printJSON(w io.Writer, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	fmt.Fprintln(w, string(out))
	return nil
}

// printVars writes "NAME = value" lines in name order.
func printVars(w io.Writer, vars map[string]string) {
	for _, name := range sortedNames(vars) {
		fmt.Fprintf(w, "%s = %s\n", name, vars[name])
	}
}

func sortedNames(vars map[string]string) []string {
	names := make([]string, 0, len(vars))
	for name := range vars {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func persistenceLabel(persist bool) string {
	if persist {
		return "persistent"
	}
	return "temporary"
}
