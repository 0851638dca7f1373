package cli

import (
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/deployledger/internal/cli/render"
	"github.com/trebuchet-org/deployledger/internal/usecase"
)

// NewVerifyCmd creates the verify command
func NewVerifyCmd() *cobra.Command {
	var (
		contractName string
		contractPath string
		libraries    map[string]string
	)

	cmd := &cobra.Command{
		Use:   "verify <path>",
		Short: "Verify a recorded contract on the block explorer",
		Long: `Submit the sources of a recorded contract for verification with
forge verify-contract. The address and constructor arguments come from the
deployment record; the record itself is never modified.

Examples:
  deployledger verify core.PoolFactoryProxy --chain arbitrum
  deployledger verify vaults.pSV-WETH/USDC --contract UnderwriterVaultProxy
  deployledger verify core.PoolBase --library OptionMath=0x1234...`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			chain, err := resolveChain(cmd, app)
			if err != nil {
				return err
			}

			req, err := app.VerifyContract.RunForPath(cmd.Context(), chain.ID, args[0], usecase.VerifyOverrides{
				ContractName: contractName,
				ContractPath: contractPath,
				Libraries:    libraries,
			})
			if err != nil {
				return err
			}

			return render.NewVerifyRenderer(cmd.OutOrStdout(), app.Config.DryRun).Render(req)
		},
	}

	cmd.Flags().StringVar(&contractName, "contract", "", "Solidity contract name (defaults to the core role's contract)")
	cmd.Flags().StringVar(&contractPath, "contract-path", "", "Manual contract path (e.g., contracts/pool/PoolBase.sol:PoolBase)")
	cmd.Flags().StringToStringVar(&libraries, "library", nil, "Linked library as Name=0xaddress (repeatable)")

	return cmd
}
