package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/envgod/internal/manager"
)

func newExportCmd() *cobra.Command {
	var vars []string
	cmd := &cobra.Command{
		Use:   "export <file> [name...]",
		Short: "Write variables to a file",
		Long: `Export writes the live environment, or only the named variables, to a file.
The format follows the extension: .yaml and .yml write YAML, .env writes
dotenv, anything else writes JSON.

Example:
  envgod export env.json
  envgod export subset.env --vars HOME,EDITOR
  envgod export subset.yaml HOME EDITOR`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			names := append(append([]string{}, vars...), args[1:]...)
			return withManager(cmd, func(m *manager.Manager) error {
				return runExport(cmd, m, args[0], names)
			})
		},
	}
	cmd.Flags().StringSliceVar(&vars, "vars", nil, "export only these variables")
	return cmd
}

func runExport(cmd *cobra.Command, m *manager.Manager, path string, names []string) error {
	out := cmd.OutOrStdout()
	if err := m.Export(path, names); err != nil {
		fmt.Fprintf(out, "[ERROR] Failed to export variables to: %s (%v)\n", path, err)
		return errReported
	}
	fmt.Fprintf(out, "[OK] Exported variables to: %s\n", path)
	return nil
}
