package cmd

import (
	"github.com/spf13/cobra"
	"tracehook.dev/pkg/tracehook/internal/domain"
)

// diffCmd represents the diff command.
var diffCmd = newDiffCmd()

func newDiffCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "diff <package> <method>",
		Short: "Preview the rewrite of one method",
		Long: `Instrument the module owning the method with the current hook selection
and print a unified diff of its disassembly. Nothing is written.

` + methodKeyHelp,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return workflow.Diff(cmd.Context(), domain.DiffArgs{
				HooksArgs: hooksArgs(args[0]),
				Method:    args[1],
			})
		},
	}
}

func init() {
	rootCmd.AddCommand(diffCmd)
}
