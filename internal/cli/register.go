package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/trebuchet-org/deployledger/internal/cli/render"
	"github.com/trebuchet-org/deployledger/internal/domain/models"
	"github.com/trebuchet-org/deployledger/internal/usecase"
)

// NewRegisterCmd creates the register command
func NewRegisterCmd() *cobra.Command {
	var (
		contractType string
		txHash       string
		deployArgs   []string
		verify       bool
		contractName string
		contractPath string
		libraries    map[string]string
	)

	cmd := &cobra.Command{
		Use:   "register <path> <address>",
		Short: "Record a deployed contract in the chain's deployment record",
		Long: `Record a deployed contract at a path of the deployment record and
regenerate the chain's contract tables.

Paths name a core role, a fee converter slot or a named entry:
  core.PoolFactoryProxy, PoolFactoryProxy (bare core role)
  feeConverter.main
  vaults.pSV-WETH/USDC, optionReward.PREMIA/USDC

With --tx the command waits for the deployment transaction and records its
hash, block and timestamp.

Examples:
  deployledger register core.PoolFactoryProxy 0x1234... --type Proxy --chain arbitrum
  deployledger register vaults.pSV-WETH/USDC 0x1234... --type Proxy --tx 0xabcd... --verify --contract UnderwriterVaultProxy
  deployledger register core.PoolFactoryImplementation 0x1234... --type Implementation --args 0xaaaa... --args 0xbbbb...`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			ctype := models.ContractType(contractType)
			if !ctype.IsKnown() {
				app.Log.Warn("unknown contract type, storing as given", "type", contractType)
			}

			chain, err := resolveChain(cmd, app)
			if err != nil {
				return err
			}
			conn, err := connect(cmd, app, chain)
			if err != nil {
				return err
			}
			defer conn.Close()

			result, err := app.RegisterContract.Run(cmd.Context(), conn, usecase.RegisterRequest{
				Path:           args[0],
				ContractType:   ctype,
				Contract:       usecase.ContractRef{Address: args[1], TxHash: txHash},
				DeploymentArgs: deployArgs,
				Options: usecase.RegisterOptions{
					DryRun:         app.Config.DryRun,
					ConfirmReplace: !app.Config.NonInteractive,
				},
			})
			if err != nil {
				return err
			}

			if err := render.NewRegisterRenderer(cmd.OutOrStdout()).Render(result); err != nil {
				return err
			}

			if !verify {
				return nil
			}
			if contractName == "" {
				contractName = app.VerifyContract.ContractName(result.Target, result.Entry.ContractType)
			}
			req := usecase.VerifyRequest{
				ChainID:         chain.ID,
				Address:         result.Entry.Address,
				ContractName:    contractName,
				ConstructorArgs: result.Entry.DeploymentArgs,
				Libraries:       libraries,
				ContractPath:    contractPath,
			}
			// the entry is already stored, so a failed verification is only reported
			if err := app.VerifyContract.Run(cmd.Context(), req); err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), render.FormatWarning(fmt.Sprintf("verification failed: %v", err)))
				return nil
			}
			return render.NewVerifyRenderer(cmd.OutOrStdout(), app.Config.DryRun).Render(&req)
		},
	}

	cmd.Flags().StringVarP(&contractType, "type", "t", "", "Contract type (Standalone, Proxy, Implementation, DiamondProxy, DiamondFacet)")
	cmd.Flags().StringVar(&txHash, "tx", "", "Deployment transaction hash; waits for the receipt")
	cmd.Flags().StringArrayVar(&deployArgs, "args", nil, "Constructor argument (repeatable, in order)")
	cmd.Flags().BoolVar(&verify, "verify", false, "Verify the contract on the block explorer after recording it")
	cmd.Flags().StringVar(&contractName, "contract", "", "Solidity contract name to verify (defaults to the core role's contract)")
	cmd.Flags().StringVar(&contractPath, "contract-path", "", "Manual contract path (e.g., contracts/pool/PoolBase.sol:PoolBase)")
	cmd.Flags().StringToStringVar(&libraries, "library", nil, "Linked library as Name=0xaddress (repeatable)")
	_ = cmd.MarkFlagRequired("type")

	return cmd
}
