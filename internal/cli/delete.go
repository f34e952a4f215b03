package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/envgod/internal/manager"
	"github.com/mesh-intelligence/envgod/pkg/types"
)

func newDeleteCmd() *cobra.Command {
	var opts manager.DeleteOptions
	cmd := &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete an environment variable",
		Long: `Delete removes a variable from the environment. With --persist it is also
removed from the local store and the user's persistent environment, after its
value is recorded in the backup log.

Protected variables such as PATH and HOME, and sensitive ones such as TERM,
are refused unless --force is given.

Example:
  envgod delete OLD_TOKEN
  envgod delete -p OLD_TOKEN`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withManager(cmd, func(m *manager.Manager) error {
				return runDelete(cmd, m, args[0], opts)
			})
		},
	}
	cmd.Flags().BoolVarP(&opts.Persist, "persist", "p", false, "also delete the saved and OS-level copy")
	cmd.Flags().BoolVarP(&opts.Force, "force", "f", false, "delete protected or sensitive variables")
	return cmd
}

func runDelete(cmd *cobra.Command, m *manager.Manager, name string, opts manager.DeleteOptions) error {
	out := cmd.OutOrStdout()

	err := m.Delete(name, opts)
	var safetyErr *types.SafetyError
	switch {
	case errors.As(err, &safetyErr) && safetyErr.Class == types.Protected:
		fmt.Fprintf(out, "[ERROR] %s\n", safetyErr.Recommendation)
		fmt.Fprintf(out, "Use --force to override protection for '%s'\n", name)
		return errReported
	case errors.As(err, &safetyErr):
		fmt.Fprintf(out, "[WARNING] %s\n", safetyErr.Recommendation)
		fmt.Fprintf(out, "Use --force to confirm deletion of '%s'\n", name)
		return errReported
	case err != nil:
		fmt.Fprintf(out, "[ERROR] Failed to delete variable: %s (%v)\n", name, err)
		return errReported
	}

	if opts.Force {
		fmt.Fprintf(out, "[WARNING] Used force override to delete '%s'\n", name)
	}
	fmt.Fprintf(out, "[OK] Deleted %s variable: %s\n", persistenceLabel(opts.Persist), name)
	return nil
}
