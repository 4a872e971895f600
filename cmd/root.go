// Package cmd provides the root command and CLI setup for tracehook.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"tracehook.dev/pkg/tracehook/internal/adapter"
	"tracehook.dev/pkg/tracehook/internal/controller"
	"tracehook.dev/pkg/tracehook/internal/domain"
	m "tracehook.dev/pkg/tracehook/internal/model"
)

var archiveAdapter adapter.ArchiveAdapter
var stagingFSAdapter adapter.StagingFSAdapter
var hookStore adapter.HookStore
var reportStore adapter.ReportStore
var deployer adapter.Deployer
var packageModel domain.PackageModel
var engine domain.Engine
var repackager domain.Repackager
var pipeline domain.Pipeline
var workflow domain.Workflow
var ui controller.UI

// hooksFileFlag is a root-level flag naming the hook selection file.
var hooksFileFlag string

// verboseFlag switches the log level to debug.
var verboseFlag bool

// logFileFlag overrides the log file location.
var logFileFlag string

func init() {
	configureRootFlags(rootCmd)

	// Initialize shared dependencies.
	ui = controller.NewUI(rootCmd, controller.IsTTY(os.Stdout))
	archiveAdapter = adapter.NewZipArchiveAdapter()
	stagingFSAdapter = adapter.NewLocalStagingFSAdapter()
	hookStore = adapter.NewYAMLHookStore()
	reportStore = adapter.NewYAMLReportStore()
	deployer = adapter.NewADBDeployer(viper.GetString(deployADBKey))
	packageModel = domain.NewPackageModel(archiveAdapter, stagingFSAdapter, domain.ModelOptions{
		Patterns: viper.GetStringSlice(modulePatternsKey),
		Threads:  viper.GetInt(runParallelConfigKey),
	})
	engine = domain.NewEngine()
	repackager = domain.NewRepackager(archiveAdapter, domain.RepackOptions{
		StripSignatures: viper.GetBool(stripSignaturesKey),
	})
	pipeline = domain.NewPipeline(
		stagingFSAdapter,
		engine,
		repackager,
		reportStore,
		deployer,
		domain.PipelineOptions{Threads: viper.GetInt(runParallelConfigKey)},
	)
	workflow = domain.NewWorkflow(domain.WorkflowDeps{
		Model:    packageModel,
		Engine:   engine,
		Pipeline: pipeline,
		Hooks:    hookStore,
		Reports:  reportStore,
		Archive:  archiveAdapter,
		UI:       ui,
	})
}

const methodKeyHelp = `Methods are selected by display key, e.g.
  "assemblies/Demo.App.dll!Demo.App.Calculator::Add(int32,int32)"
A trailing flag suffix such as " [name,params,return]" is accepted.`

const rootLongDescription = `Tracehook instruments methods of a packaged application with entry and
exit trace calls and repackages it, leaving everything else byte-identical.

Typical session:
  tracehook candidates app.apk
  tracehook hooks add app.apk <method>...
  tracehook patch app.apk --device emulator-5554

` + methodKeyHelp

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tracehook",
		Short: "Method tracing instrumentation for packaged applications",
		Long:  rootLongDescription,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			configureLogger(logFileFlag, verboseFlag)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().
		StringVar(
			&hooksFileFlag, hooksFlagName,
			viper.GetString(hooksFileKey),
			"file holding the hook selection",
		)
	bindFlagToConfig(cmd.PersistentFlags().Lookup(hooksFlagName), hooksFileKey)

	cmd.PersistentFlags().BoolVarP(&verboseFlag, verboseFlagName, "v", viper.GetBool(logVerboseKey), "log at debug level")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(verboseFlagName), logVerboseKey)

	cmd.PersistentFlags().StringVar(&logFileFlag, logFileFlagName, "", "log file (default from log.filename)")
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func hooksArgs(pkg string) domain.HooksArgs {
	return domain.HooksArgs{
		Package:   m.Path(pkg),
		HooksFile: m.Path(viper.GetString(hooksFileKey)),
	}
}
