package cmd

import (
	"fmt"
	"runtime/debug"
	"strings"

	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show the version information",
		Long:  "Displays the tracehook build version, the VCS revision it was built from and the Go version used.",
		Run: func(cmd *cobra.Command, _ []string) {
			info, _ := debug.ReadBuildInfo()
			cmd.Println(versionLine(info))
		},
	}
}

// versionLine renders "tracehook <version> (<go version>, <revision>[+dirty])".
func versionLine(info *debug.BuildInfo) string {
	if info == nil || info.Main.Version == "" {
		return "tracehook version unknown"
	}

	details := []string{info.GoVersion}

	var revision string

	dirty := false

	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			revision = s.Value
		case "vcs.modified":
			dirty = s.Value == "true"
		}
	}

	if revision != "" {
		if len(revision) > 12 {
			revision = revision[:12]
		}

		if dirty {
			revision += "+dirty"
		}

		details = append(details, revision)
	}

	return fmt.Sprintf("tracehook %s (%s)", info.Main.Version, strings.Join(details, ", "))
}

// versionCmd represents the version command.
var versionCmd = newVersionCmd()

func init() {
	rootCmd.AddCommand(versionCmd)
}
