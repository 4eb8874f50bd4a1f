package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/quire/internal/app"
)

func (c *CLI) newExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export [tasks...]",
		Short: "Export the project once",
		Long:  "Compile the project entry and run the named export tasks, or every task when none are named.",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")
			return c.app.Export(cmd.Context(), app.ExportOptions{
				Dir:   dir,
				Tasks: args,
			})
		},
	}
}
