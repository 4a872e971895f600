package cmd

import (
	"github.com/spf13/cobra"
	"tracehook.dev/pkg/tracehook/internal/domain"
	m "tracehook.dev/pkg/tracehook/internal/model"
)

// cleanCmd represents the clean command.
var cleanCmd = newCleanCmd()

func newCleanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clean <package>",
		Short: "Remove the staging directory of a package",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return workflow.Clean(cmd.Context(), domain.PackageArgs{Package: m.Path(args[0])})
		},
	}
}

func init() {
	rootCmd.AddCommand(cleanCmd)
}
