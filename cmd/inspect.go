package cmd

import (
	"github.com/spf13/cobra"
	"tracehook.dev/pkg/tracehook/internal/domain"
	m "tracehook.dev/pkg/tracehook/internal/model"
)

// inspectCmd represents the inspect command.
var inspectCmd = newInspectCmd()

func newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <package>",
		Short: "Show the modules, types and members of a package",
		Long: `Parse every module entry of the package and print its user-visible types
with their constructors, properties, methods and enum fields.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return workflow.Inspect(cmd.Context(), domain.PackageArgs{Package: m.Path(args[0])})
		},
	}
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}
