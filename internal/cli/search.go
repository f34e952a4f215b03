package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/envgod/internal/manager"
)

func newSearchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search <term>",
		Short: "Find variables by name or value",
		Long: `Search prints every live variable whose name or value contains the term,
ignoring case.

Example:
  envgod search path`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withManager(cmd, func(m *manager.Manager) error {
				return runSearch(cmd, m, args[0])
			})
		},
	}
}

func runSearch(cmd *cobra.Command, m *manager.Manager, term string) error {
	out := cmd.OutOrStdout()

	matches := m.Search(term)
	if flags.jsonMode {
		return printJSON(out, matches)
	}
	if len(matches) == 0 {
		fmt.Fprintf(out, "No variables found matching '%s'\n", term)
		return nil
	}
	fmt.Fprintf(out, "Variables matching '%s':\n", term)
	printVars(out, matches)
	fmt.Fprintf(out, "\nFound: %d variables\n", len(matches))
	return nil
}
