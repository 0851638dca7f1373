package cli

import (
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/deployledger/internal/cli/render"
)

// NewTablesCmd creates the tables command
func NewTablesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tables",
		Short: "Regenerate the Markdown contract tables of a chain",
		Long: `Render coreTable.md and the vault, option reward and physically settled
option tables from the chain's deployment record.

Examples:
  deployledger tables --chain arbitrum`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			chain, err := resolveChain(cmd, app)
			if err != nil {
				return err
			}

			result, err := app.GenerateTables.Run(cmd.Context(), chain.ID)
			if err != nil {
				return err
			}
			return render.NewTablesRenderer(cmd.OutOrStdout()).Render(result)
		},
	}
}
