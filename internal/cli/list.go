package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/envgod/internal/manager"
)

func newListCmd() *cobra.Command {
	var saved bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List environment variables",
		Long: `List prints every live environment variable, or with --saved only the
variables kept in the local store.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withManager(cmd, func(m *manager.Manager) error {
				return runList(cmd, m, saved)
			})
		},
	}
	cmd.Flags().BoolVarP(&saved, "saved", "s", false, "list only persisted variables")
	return cmd
}

func runList(cmd *cobra.Command, m *manager.Manager, saved bool) error {
	out := cmd.OutOrStdout()

	vars := m.GetAll()
	title := "All environment variables:"
	if saved {
		vars = m.Saved()
		title = "Saved persistent variables:"
	}

	if flags.jsonMode {
		return printJSON(out, vars)
	}
	if len(vars) == 0 {
		fmt.Fprintln(out, "No variables found.")
		return nil
	}
	fmt.Fprintln(out, title)
	printVars(out, vars)
	fmt.Fprintf(out, "\nTotal: %d variables\n", len(vars))
	return nil
}
