package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/envgod/internal/manager"
)

func newSetCmd() *cobra.Command {
	var persist bool
	cmd := &cobra.Command{
		Use:   "set <name> <value>",
		Short: "Set an environment variable",
		Long: `Set writes a variable into the environment. With --persist the variable
is also saved to the local store and, where the platform supports it, to the
user's persistent environment.

Example:
  envgod set API_URL https://example.com
  envgod set -p EDITOR vim`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withManager(cmd, func(m *manager.Manager) error {
				return runSet(cmd, m, args[0], args[1], persist)
			})
		},
	}
	cmd.Flags().BoolVarP(&persist, "persist", "p", false, "save the variable across sessions")
	return cmd
}

func runSet(cmd *cobra.Command, m *manager.Manager, name, value string, persist bool) error {
	out := cmd.OutOrStdout()
	if err := m.Set(name, value, persist); err != nil {
		fmt.Fprintf(out, "[ERROR] Failed to set variable: %s (%v)\n", name, err)
		return errReported
	}
	fmt.Fprintf(out, "[OK] Set %s variable: %s = %s\n", persistenceLabel(persist), name, value)
	return nil
}
