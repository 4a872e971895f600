package cmd

import (
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"tracehook.dev/pkg/tracehook/internal/domain"
)

var patchDeviceFlag string

// patchCmd represents the patch command.
var patchCmd = newPatchCmd()

func newPatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "patch <package>",
		Short: "Instrument hooked methods and stage a repackaged copy",
		Long: `Instrument every hooked method, write the staged package under
<package-dir>/<name>.tracehook/instrumented/ and save a run report.
With --device the staged package is installed with adb once it is ready.
Interrupting the command cancels the run before the next module.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			return workflow.Patch(ctx, domain.PatchArgs{
				HooksArgs: hooksArgs(args[0]),
				Device:    viper.GetString(deployDeviceKey),
			})
		},
	}

	configurePatchFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(patchCmd)
}

func configurePatchFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&patchDeviceFlag, deviceFlagName, "d", viper.GetString(deployDeviceKey), "adb serial of the device receiving the staged package")
	bindFlagToConfig(cmd.Flags().Lookup(deviceFlagName), deployDeviceKey)
}
