package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/envgod/internal/manager"
)

// variableJSON is the --json rendering of a single variable.
type variableJSON struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

func newGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <name>",
		Short: "Print the value of an environment variable",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withManager(cmd, func(m *manager.Manager) error {
				return runGet(cmd, m, args[0])
			})
		},
	}
}

func runGet(cmd *cobra.Command, m *manager.Manager, name string) error {
	out := cmd.OutOrStdout()
	value, ok := m.Get(name)
	if !ok {
		fmt.Fprintf(out, "Variable not found: %s\n", name)
		return errReported
	}
	if flags.jsonMode {
		return printJSON(out, variableJSON{Name: name, Value: value})
	}
	fmt.Fprintf(out, "%s = %s\n", name, value)
	return nil
}
