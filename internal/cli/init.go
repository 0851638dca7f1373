package cli

import (
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/deployledger/internal/cli/render"
	"github.com/trebuchet-org/deployledger/internal/config"
)

// NewInitCmd creates the init command
func NewInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create an empty deployment record for a chain",
		Long: `Create deployments/<chain>/metadata.json with every category present
and empty, and render its tables. Writes deployledger.toml with the default
settings when the project has none.

Examples:
  deployledger init --chain arbitrumSepolia`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			wrote, err := config.WriteDefaultLedgerFile(app.Config.ProjectRoot)
			if err != nil {
				return err
			}

			chain, err := resolveChain(cmd, app)
			if err != nil {
				return err
			}

			result, err := app.UpdateRecord.Init(cmd.Context(), chain.ID)
			if err != nil {
				return err
			}
			return render.NewInitRenderer(cmd.OutOrStdout(), wrote).Render(result)
		},
	}
}
