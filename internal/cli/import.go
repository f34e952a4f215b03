package cli

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/envgod/internal/manager"
)

func newImportCmd() *cobra.Command {
	var (
		persist   bool
		noFlatten bool
	)
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Set variables from a file",
		Long: `Import reads a JSON, YAML, or dotenv file and sets every variable in it.
Nested objects are flattened into NAME_CHILD keys unless --no-flatten is
given, in which case they are stored as JSON text.

Example:
  envgod import settings.json
  envgod import -p .env`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := manager.ImportOptions{Persist: persist, Flatten: !noFlatten}
			return withManager(cmd, func(m *manager.Manager) error {
				return runImport(cmd, m, args[0], opts)
			})
		},
	}
	cmd.Flags().BoolVarP(&persist, "persist", "p", false, "save imported variables across sessions")
	cmd.Flags().BoolVar(&noFlatten, "no-flatten", false, "keep nested objects as JSON values")
	return cmd
}

func runImport(cmd *cobra.Command, m *manager.Manager, path string, opts manager.ImportOptions) error {
	out := cmd.OutOrStdout()

	n, err := m.Import(path, opts)
	if errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(out, "File not found: %s\n", path)
		return errReported
	}
	if err != nil {
		if n > 0 {
			fmt.Fprintf(out, "[WARNING] %d variables were set before the failure\n", n)
		}
		fmt.Fprintf(out, "[ERROR] Failed to import variables from: %s (%v)\n", path, err)
		return errReported
	}

	mode := "flattened"
	if !opts.Flatten {
		mode = "as-is"
	}
	fmt.Fprintf(out, "[OK] Imported %d %s variables from: %s (%s)\n", n, persistenceLabel(opts.Persist), path, mode)
	return nil
}
