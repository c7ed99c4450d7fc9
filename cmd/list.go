package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/smudge-dev/smudge/internal/domain"
)

// listCmd represents the list command.
var listCmd = newListCmd()

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list [paths...]",
		Short: "List candidate files and capture counts",
		Long: `List the files the traversal would pick up, together with the number
of variable and function declarations each rename round would capture.

` + pathArgsHelp,
		RunE: func(_ *cobra.Command, args []string) error {
			return workflow.List(context.Background(), domain.ListArgs{
				Paths:     parsePaths(args),
				Extension: viper.GetString(extensionConfigKey),
				Exclude:   viper.GetStringSlice(excludeConfigKey),
			})
		},
	}

	return cmd
}

func init() {
	rootCmd.AddCommand(listCmd)
}
