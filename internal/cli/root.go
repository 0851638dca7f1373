package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/trebuchet-org/deployledger/internal/app"
	"github.com/trebuchet-org/deployledger/internal/config"
)

// contextKey is the type for context keys
type contextKey string

const (
	// appKey is the context key for the app instance
	appKey contextKey = "app"
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "deployledger",
		Short: "Deployment ledger and contract table generator",
		Long: `deployledger records deployed protocol contracts per chain in
deployments/<chain>/metadata.json and regenerates the Markdown tables
documenting them.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Skip for help/version commands
			if cmd.Name() == "version" || cmd.Name() == "help" || cmd.Name() == "completion" {
				return nil
			}

			projectRoot, err := config.FindProjectRoot()
			if err != nil {
				// init creates the project file
				if cmd.Name() != "init" {
					return err
				}
				projectRoot = "."
			}

			v := config.SetupViper(projectRoot, cmd)

			appInstance, err := app.InitApp(v)
			if err != nil {
				return fmt.Errorf("failed to initialize app: %w", err)
			}

			cmd.SetContext(context.WithValue(cmd.Context(), appKey, appInstance))
			applyTimeout(cmd, appInstance.Config.Timeout)

			return nil
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringP("chain", "c", "", "Chain to operate on (name, display name or chain id)")
	rootCmd.PersistentFlags().String("rpc-url", "", "RPC endpoint (defaults to <CHAIN>_RPC_URL)")
	rootCmd.PersistentFlags().Bool("fork", false, "Use the local fork at "+config.DefaultForkRPCURL)
	rootCmd.PersistentFlags().Bool("dry-run", false, "Compute changes without writing anything")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug output")
	rootCmd.PersistentFlags().Bool("non-interactive", false, "Disable interactive prompts")
	rootCmd.PersistentFlags().Duration("timeout", 0, "Abort the command after this long (0 waits indefinitely)")

	rootCmd.AddGroup(&cobra.Group{
		ID:    "ledger",
		Title: "Ledger Commands",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "docs",
		Title: "Documentation Commands",
	})

	for _, cmd := range []*cobra.Command{
		NewInitCmd(),
		NewRegisterCmd(),
		NewApplyCmd(),
		NewVerifyCmd(),
	} {
		cmd.GroupID = "ledger"
		rootCmd.AddCommand(cmd)
	}

	for _, cmd := range []*cobra.Command{
		NewTablesCmd(),
		NewShowCmd(),
		NewExportCmd(),
		NewChainsCmd(),
	} {
		cmd.GroupID = "docs"
		rootCmd.AddCommand(cmd)
	}

	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

// Execute runs the root command. Contexts derived during the run are
// released when it returns, whether or not the command failed.
func Execute(ctx context.Context) error {
	return execute(ctx, NewRootCmd())
}

func execute(ctx context.Context, rootCmd *cobra.Command) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	return rootCmd.ExecuteContext(ctx)
}

// applyTimeout bounds the command context. A zero timeout leaves it unbounded,
// so receipt waits only end when the operator interrupts them.
func applyTimeout(cmd *cobra.Command, timeout time.Duration) {
	if timeout <= 0 {
		return
	}
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	cmd.PostRun = func(cmd *cobra.Command, args []string) {
		cancel()
	}
	cmd.SetContext(ctx)
}

// getApp retrieves the app instance from the command context
func getApp(cmd *cobra.Command) (*app.App, error) {
	appInstance := cmd.Context().Value(appKey)
	if appInstance == nil {
		return nil, fmt.Errorf("app not initialized")
	}

	app, ok := appInstance.(*app.App)
	if !ok {
		return nil, fmt.Errorf("invalid app instance")
	}

	return app, nil
}
