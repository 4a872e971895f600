package cmd

import (
	"github.com/spf13/cobra"
	"tracehook.dev/pkg/tracehook/internal/domain"
)

var hookNameFlag bool
var hookParamsFlag bool
var hookReturnFlag bool

// hooksCmd groups the hook selection commands.
var hooksCmd = newHooksCmd()

func newHooksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hooks",
		Short: "Edit the hook selection",
		Long: `Add, remove, list or clear hooked methods. The selection is stored in the
hooks file (--hooks, default hooks.yaml) and survives between sessions.

` + methodKeyHelp,
	}

	cmd.AddCommand(newHooksAddCmd(), newHooksRemoveCmd(), newHooksListCmd(), newHooksClearCmd())

	return cmd
}

func newHooksAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <package> <method>...",
		Short: "Hook methods, replacing their flags if already hooked",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return workflow.AddHooks(cmd.Context(), domain.HookArgs{
				HooksArgs:     hooksArgs(args[0]),
				Keys:          args[1:],
				LogName:       hookNameFlag,
				LogParameters: hookParamsFlag,
				LogReturn:     hookReturnFlag,
			})
		},
	}

	cmd.Flags().BoolVar(&hookNameFlag, "name", true, "log the method name")
	cmd.Flags().BoolVar(&hookParamsFlag, "params", true, "log the arguments on entry")
	cmd.Flags().BoolVar(&hookReturnFlag, "return", true, "log the returned value on exit")

	return cmd
}

func newHooksRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "remove <method>...",
		Aliases: []string{"rm"},
		Short:   "Unhook methods",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return workflow.RemoveHooks(cmd.Context(), domain.HookArgs{
				HooksArgs: hooksArgs(""),
				Keys:      args,
			})
		},
	}
}

func newHooksListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Show the hooked methods",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return workflow.ListHooks(cmd.Context(), hooksArgs(""))
		},
	}
}

func newHooksClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every hook",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return workflow.ClearHooks(cmd.Context(), hooksArgs(""))
		},
	}
}

func init() {
	rootCmd.AddCommand(hooksCmd)
}
