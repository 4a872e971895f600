package cmd

import (
	"github.com/spf13/cobra"
	"tracehook.dev/pkg/tracehook/internal/domain"
)

var emulateStepsFlag int

// emulateCmd represents the emulate command.
var emulateCmd = newEmulateCmd()

func newEmulateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "emulate <package> <method> [args...]",
		Short: "Run an instrumented method in the emulator",
		Long: `Instrument the module owning the method with the current hook selection,
run the method in the emulator and print the trace events it emits.
Arguments are parsed by parameter type; instance methods get a fresh
object as this. Events are also written below <package-dir>/<name>.tracehook/traces/.

` + methodKeyHelp,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return workflow.Emulate(cmd.Context(), domain.EmulateArgs{
				HooksArgs: hooksArgs(args[0]),
				Method:    args[1],
				Args:      args[2:],
				StepLimit: emulateStepsFlag,
			})
		},
	}

	cmd.Flags().IntVar(&emulateStepsFlag, "steps", 0, "maximum executed instructions (0 keeps the emulator default)")

	return cmd
}

func init() {
	rootCmd.AddCommand(emulateCmd)
}
