package cli

import (
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/deployledger/internal/cli/render"
	"github.com/trebuchet-org/deployledger/internal/config"
	"github.com/trebuchet-org/deployledger/internal/usecase"
)

// NewApplyCmd creates the apply command
func NewApplyCmd() *cobra.Command {
	var skipVerify bool

	cmd := &cobra.Command{
		Use:   "apply <plan.yaml>",
		Short: "Apply a deployment plan to a chain's record",
		Long: `Apply the steps of a YAML deployment plan in order. Register steps record
a contract and optionally verify it; token and address steps set plain
addresses. The first failing step stops the run; earlier steps stay recorded.
With --dry-run nothing is written: each step builds on the changes of the
steps before it and the combined record is printed at the end.

Plan format:
  chain: arbitrum          # optional, must match the RPC endpoint
  steps:
    - register:
        path: core.PoolFactoryProxy
        type: Proxy
        address: "0x1234..."
        txHash: "0xabcd..."
        args: ["0x5678..."]
        verify: true
    - token:
        symbol: WETH
        address: "0x82aF..."
    - address:
        key: treasury
        address: "0xa079..."`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			plan, err := app.Plans.ReadPlan(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if app.Config.Chain == nil && plan.Chain != "" {
				pinned, err := app.Chains.Resolve(plan.Chain)
				if err != nil {
					return err
				}
				app.Config.Chain = &pinned
			}
			chain, err := resolveChain(cmd, app)
			if err != nil {
				return err
			}
			if app.Config.RPCURL == "" {
				explicit, _ := cmd.Flags().GetString("rpc-url")
				app.Config.RPCURL = config.ResolveRPCURL(explicit, chain.Name, app.Config.Fork)
			}

			conn, err := connect(cmd, app, chain)
			if err != nil {
				return err
			}
			defer conn.Close()

			result, err := app.ApplyPlan.Run(cmd.Context(), conn, plan, usecase.ApplyOptions{
				DryRun:     app.Config.DryRun,
				SkipVerify: skipVerify,
			})
			if result != nil {
				if renderErr := render.NewPlanRenderer(cmd.OutOrStdout(), app.Config.DryRun).Render(result); renderErr != nil && err == nil {
					err = renderErr
				}
				if err == nil && app.Config.DryRun && result.Record != nil {
					err = render.NewRecordRenderer(cmd.OutOrStdout()).Render(&usecase.ShowResult{Chain: result.Chain, Record: result.Record})
				}
			}
			return err
		},
	}

	cmd.Flags().BoolVar(&skipVerify, "skip-verify", false, "Ignore the verify flag of every register step")

	return cmd
}
