package cmd

import (
	"github.com/spf13/cobra"
)

// candidatesCmd represents the candidates command.
var candidatesCmd = newCandidatesCmd()

func newCandidatesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "candidates <package>",
		Short: "List methods that can be hooked",
		Long: `List every method with a body that is not a property accessor, together
with the hook flags currently selected for it.

` + methodKeyHelp,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return workflow.Candidates(cmd.Context(), hooksArgs(args[0]))
		},
	}
}

func init() {
	rootCmd.AddCommand(candidatesCmd)
}
