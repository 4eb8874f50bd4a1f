package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the last export of every task",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dir, _ := cmd.Flags().GetString("dir")
			return c.app.Status(cmd.Context(), dir, cmd.OutOrStdout())
		},
	}
}
