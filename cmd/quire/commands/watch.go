package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/quire/internal/app"
)

func (c *CLI) newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch [tasks...]",
		Short: "Export on every change to the project sources",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")
			ignore, _ := cmd.Flags().GetStringSlice("ignore")
			return c.app.Watch(cmd.Context(), app.WatchOptions{
				Dir:    dir,
				Tasks:  args,
				Ignore: ignore,
			})
		},
	}
	cmd.Flags().StringSlice("ignore", nil, "Additional gitignore patterns to exclude from watching")
	return cmd
}
