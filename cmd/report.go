package cmd

import (
	"github.com/spf13/cobra"
	"tracehook.dev/pkg/tracehook/internal/domain"
	m "tracehook.dev/pkg/tracehook/internal/model"
)

// reportCmd represents the report command.
var reportCmd = newReportCmd()

func newReportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "report <package>",
		Short: "Show the report of the last patch run",
		Long:  "Show the outcomes and artifact of the last patch run of a package.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return workflow.Report(cmd.Context(), domain.PackageArgs{Package: m.Path(args[0])})
		},
	}
}

func init() {
	rootCmd.AddCommand(reportCmd)
}
