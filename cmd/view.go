package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/smudge-dev/smudge/internal/domain"
	m "github.com/smudge-dev/smudge/internal/model"
)

// viewCmd represents the view command.
var viewCmd = newViewCmd()

func newViewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view",
		Short: "View previously saved run reports",
		Long:  "View run reports previously saved into the output directory.",
		Args:  cobra.ExactArgs(0),
		RunE: func(_ *cobra.Command, _ []string) error {
			return workflow.View(context.Background(), domain.ViewArgs{
				Reports: m.Path(viper.GetString(outputFlagName)),
			})
		},
	}

	return cmd
}

func init() {
	rootCmd.AddCommand(viewCmd)
}
