package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/trebuchet-org/deployledger/internal/app"
	"github.com/trebuchet-org/deployledger/internal/config"
	domainconfig "github.com/trebuchet-org/deployledger/internal/domain/config"
	"github.com/trebuchet-org/deployledger/internal/usecase"
)

// resolveChain returns the chain given with --chain, or asks the operator to pick one
func resolveChain(cmd *cobra.Command, app *app.App) (domainconfig.Chain, error) {
	if app.Config.Chain != nil {
		return *app.Config.Chain, nil
	}

	chain, err := app.Selector.SelectChain(cmd.Context(), app.Chains.All())
	if err != nil {
		return domainconfig.Chain{}, err
	}

	explicit, _ := cmd.Flags().GetString("rpc-url")
	app.Config.Chain = &chain
	app.Config.RPCURL = config.ResolveRPCURL(explicit, chain.Name, app.Config.Fork)
	return chain, nil
}

// connect dials the RPC endpoint of chain and checks that it serves that chain
func connect(cmd *cobra.Command, app *app.App, chain domainconfig.Chain) (usecase.ChainConnection, error) {
	if app.Config.RPCURL == "" {
		return nil, fmt.Errorf("no RPC endpoint for %s: pass --rpc-url or set %s", chain.Name, config.RPCEnvVarName(chain.Name))
	}

	conn, err := app.Dialer.Dial(cmd.Context(), app.Config.RPCURL)
	if err != nil {
		return nil, err
	}

	chainID, err := conn.ChainID(cmd.Context())
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to read chain id from %s: %w", app.Config.RPCURL, err)
	}
	if chainID != chain.ID {
		conn.Close()
		return nil, fmt.Errorf("RPC endpoint serves chain %d, expected %s (%d)", chainID, chain.Name, chain.ID)
	}
	return conn, nil
}
