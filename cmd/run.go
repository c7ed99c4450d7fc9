package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/smudge-dev/smudge/internal/domain"
	m "github.com/smudge-dev/smudge/internal/model"
)

var runParallelFlag int
var runBackupFlag bool

const runLongDescription = `Rewrite candidate files in place. Each file is read whole, both rename
rounds are applied (variables first, then functions), and the result is
written back over the original. There is no atomic replace; pass --backup
to journal original contents into the output directory first.

` + pathArgsHelp

// runCmd represents the run command.
var runCmd = newRunCmd()

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [paths...]",
		Short: "Obfuscate files in place",
		Long:  runLongDescription,
		RunE: func(_ *cobra.Command, args []string) error {
			return workflow.Run(context.Background(), domain.RunArgs{
				Paths:      parsePaths(args),
				Extension:  viper.GetString(extensionConfigKey),
				Exclude:    viper.GetStringSlice(excludeConfigKey),
				Parallel:   viper.GetInt(runParallelConfigKey),
				Reports:    m.Path(viper.GetString(outputFlagName)),
				SaveReport: !viper.GetBool(noReportConfigKey),
				Backup:     viper.GetBool(runBackupConfigKey),
			})
		},
	}

	configureRunFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func configureRunFlags(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&runParallelFlag, runParallelFlagName, "p", viper.GetInt(runParallelConfigKey), "number of parallel workers (1 = strictly sequential)")
	bindFlagToConfig(cmd.Flags().Lookup(runParallelFlagName), runParallelConfigKey)

	cmd.Flags().BoolVar(&runBackupFlag, runBackupFlagName, viper.GetBool(runBackupConfigKey), "journal original file contents before overwriting")
	bindFlagToConfig(cmd.Flags().Lookup(runBackupFlagName), runBackupConfigKey)
}
