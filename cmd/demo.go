package cmd

import (
	"github.com/spf13/cobra"
	"tracehook.dev/pkg/tracehook/internal/domain"
	m "tracehook.dev/pkg/tracehook/internal/model"
)

const defaultDemoPackage = "demo.apk"

// demoCmd represents the demo command.
var demoCmd = newDemoCmd()

func newDemoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "demo [dest]",
		Short: "Write a sample package to try the other commands on",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dest := defaultDemoPackage
			if len(args) == 1 {
				dest = args[0]
			}

			if err := workflow.Demo(cmd.Context(), domain.DemoArgs{Dest: m.Path(dest)}); err != nil {
				return err
			}

			cmd.Println("wrote", dest)

			return nil
		},
	}
}

func init() {
	rootCmd.AddCommand(demoCmd)
}
