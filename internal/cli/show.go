package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/trebuchet-org/deployledger/internal/cli/render"
)

// NewShowCmd creates the show command
func NewShowCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "show [path]",
		Short: "Show the deployment record of a chain, or one of its entries",
		Long: `Show every address recorded for a chain, or the full entry at a path.

Examples:
  deployledger show --chain arbitrum
  deployledger show core.PoolFactoryProxy --chain arbitrum
  deployledger show vaults.pSV-WETH/USDC --json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			chain, err := resolveChain(cmd, app)
			if err != nil {
				return err
			}

			path := ""
			if len(args) == 1 {
				path = args[0]
			}

			result, err := app.ShowRecord.Run(cmd.Context(), chain.ID, path)
			if err != nil {
				return err
			}

			if jsonOutput {
				var value any = result.Record
				if result.Entry != nil {
					value = result.Entry
				}
				data, err := json.MarshalIndent(value, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to marshal JSON: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return nil
			}

			return render.NewRecordRenderer(cmd.OutOrStdout()).Render(result)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}
