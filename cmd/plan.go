package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/smudge-dev/smudge/internal/domain"
)

// planCmd represents the plan command.
var planCmd = newPlanCmd()

func newPlanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan [paths...]",
		Short: "Preview the rewrite as unified diffs without writing",
		Long: `Compute the exact rewrite that run would perform and print it as
per-file unified diffs. No file is modified and no report is saved.

` + pathArgsHelp,
		RunE: func(_ *cobra.Command, args []string) error {
			return workflow.Plan(context.Background(), domain.PlanArgs{
				Paths:     parsePaths(args),
				Extension: viper.GetString(extensionConfigKey),
				Exclude:   viper.GetStringSlice(excludeConfigKey),
			})
		},
	}

	return cmd
}

func init() {
	rootCmd.AddCommand(planCmd)
}
