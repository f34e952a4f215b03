package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/envgod/internal/safety"
)

func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info <name>",
		Short: "Show whether a variable is safe to delete",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo(cmd, args[0])
		},
	}
}

func runInfo(cmd *cobra.Command, name string) error {
	out := cmd.OutOrStdout()
	info := safety.Describe(name)
	if flags.jsonMode {
		return printJSON(out, info)
	}
	fmt.Fprintf(out, "Name:           %s\n", info.Name)
	fmt.Fprintf(out, "Class:          %s\n", info.Class)
	fmt.Fprintf(out, "Protected:      %s\n", yesNo(info.IsProtected))
	fmt.Fprintf(out, "Sensitive:      %s\n", yesNo(info.IsSensitive))
	fmt.Fprintf(out, "Recommendation: %s\n", info.Recommendation)
	return nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
