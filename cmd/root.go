// Package cmd provides the root command and CLI setup for smudge.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/smudge-dev/smudge/internal/adapter"
	"github.com/smudge-dev/smudge/internal/controller"
	"github.com/smudge-dev/smudge/internal/domain"
	m "github.com/smudge-dev/smudge/internal/model"
)

var fsAdapter adapter.SourceFSAdapter
var reportStore adapter.ReportStore
var obfuscator domain.Obfuscator
var workflow domain.Workflow
var ui controller.UI

// outputDirFlag is a root-level flag shared by commands that read/write
// run reports.
var outputDirFlag string

// extensionFlag selects which files the traversal picks up.
var extensionFlag string

// excludePatterns filters candidate files for applicable commands.
var excludePatterns []string

// noReportFlag disables report persistence when set.
var noReportFlag bool

// verboseFlag raises the log level to debug.
var verboseFlag bool

func init() {
	configureLogger("", viper.GetBool(logVerboseKey))

	// Initialize shared dependencies.
	ui = controller.NewUI(rootCmd, controller.IsTTY(os.Stdout))
	fsAdapter = adapter.NewLocalSourceFSAdapter()
	reportStore = adapter.NewReportStore()
	obfuscator = domain.NewObfuscator(fsAdapter, rulesFromConfig())
	workflow = domain.NewWorkflow(fsAdapter, reportStore, ui, obfuscator)
}

const pathArgsHelp = `Paths default to the configured roots (paths.roots, "src" out of the box):
  - smudge run              rewrite everything under src
  - smudge run lib vendor   rewrite two trees
  - smudge plan src         preview without writing`

const rootLongDescription = `Smudge is a naive identifier obfuscator. It walks directory trees, finds
source files by extension, and renames identifiers declared via two
keywords (let -> var_<i>, fn -> func_<i>) with best-effort, whole-word
textual substitution, rewriting matched files in place.

It does not parse syntax: comments, strings and shadowed names are all
fair game for a rename. Use plan before run.

` + pathArgsHelp

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "smudge",
		Short: "Naive in-place identifier obfuscator",
		Long:  rootLongDescription,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	configureRootFlags(cmd)

	return cmd
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().
		StringVarP(
			&outputDirFlag, outputFlagName, "o",
			viper.GetString(outputFlagName),
			"output directory for run reports and backups",
		)
	bindFlagToConfig(cmd.PersistentFlags().Lookup(outputFlagName), outputFlagName)

	cmd.PersistentFlags().
		StringVarP(
			&extensionFlag, extensionFlagName, "e",
			viper.GetString(extensionConfigKey),
			"file name suffix that marks candidate files",
		)
	bindFlagToConfig(cmd.PersistentFlags().Lookup(extensionFlagName), extensionConfigKey)

	cmd.PersistentFlags().StringArrayVarP(&excludePatterns, excludeFlagName, "x", viper.GetStringSlice(excludeConfigKey), "exclude files matching regex (can be repeated)")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(excludeFlagName), excludeConfigKey)

	cmd.PersistentFlags().BoolVar(&noReportFlag, noReportFlagName, viper.GetBool(noReportConfigKey), "do not persist a run report")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(noReportFlagName), noReportConfigKey)

	cmd.PersistentFlags().BoolVarP(&verboseFlag, verboseFlagName, "v", viper.GetBool(logVerboseKey), "log at debug level")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(verboseFlagName), logVerboseKey)
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

// parsePaths turns positional args into root paths, falling back to the
// configured roots when none are given.
func parsePaths(args []string) []m.Path {
	if len(args) == 0 {
		args = viper.GetStringSlice(rootsConfigKey)
	}

	paths := make([]m.Path, 0, len(args))
	for _, arg := range args {
		paths = append(paths, m.Path(arg))
	}

	return paths
}
