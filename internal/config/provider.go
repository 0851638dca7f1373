package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/trebuchet-org/deployledger/internal/adapters/chains"
	"github.com/trebuchet-org/deployledger/internal/domain/config"
)

// LedgerFileName marks the project root and holds project settings
const LedgerFileName = "deployledger.toml"

// DefaultForkRPCURL is used when --fork is set and no RPC URL is configured
const DefaultForkRPCURL = "http://127.0.0.1:8545"

// Provider creates RuntimeConfig for Wire dependency injection
func Provider(v *viper.Viper) (*config.RuntimeConfig, error) {
	projectRoot := v.GetString("project_root")
	if projectRoot == "" {
		var err error
		projectRoot, err = FindProjectRoot()
		if err != nil {
			return nil, fmt.Errorf("failed to find project root: %w", err)
		}
	}

	loadEnvFiles(projectRoot)

	ledgerFile, err := loadLedgerFile(projectRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", LedgerFileName, err)
	}

	cfg := &config.RuntimeConfig{
		ProjectRoot:    projectRoot,
		Fork:           v.GetBool("fork"),
		Debug:          v.GetBool("debug"),
		NonInteractive: v.GetBool("non_interactive"),
		Timeout:        v.GetDuration("timeout"),
		DryRun:         v.GetBool("dry_run"),
		ExplorerAPIKey: explorerAPIKey(v),
		Ledger:         ledgerFile.Ledger,
		Verify:         ledgerFile.Verify,
	}

	if chainName := v.GetString("chain"); chainName != "" {
		chain, err := chains.NewRegistry().Resolve(chainName)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve chain %s: %w", chainName, err)
		}
		cfg.Chain = &chain
		cfg.RPCURL = ResolveRPCURL(v.GetString("rpc_url"), chain.Name, cfg.Fork)
	}

	return cfg, nil
}

// FindProjectRoot walks up from the current directory to the first
// directory containing deployledger.toml or, failing that, .git
func FindProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	gitRoot := ""
	for {
		if _, err := os.Stat(filepath.Join(dir, LedgerFileName)); err == nil {
			return dir, nil
		}
		if gitRoot == "" {
			if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
				gitRoot = dir
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	if gitRoot != "" {
		return gitRoot, nil
	}
	return "", fmt.Errorf("not in a deployledger project (%s not found)", LedgerFileName)
}

// SetupViper creates and configures a viper instance bound to the command flags
func SetupViper(projectRoot string, cmd *cobra.Command) *viper.Viper {
	v := viper.New()

	// Set up environment variables
	v.SetEnvPrefix("DEPLOYLEDGER")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	// Set defaults
	v.SetDefault("timeout", "0s")
	v.SetDefault("debug", false)
	v.SetDefault("non_interactive", false)
	v.SetDefault("fork", false)
	v.SetDefault("dry_run", false)
	v.SetDefault("project_root", projectRoot)

	if cmd != nil {
		cmd.Flags().VisitAll(func(f *pflag.Flag) {
			if err := v.BindPFlag(strings.ReplaceAll(f.Name, "-", "_"), f); err != nil {
				panic(err)
			}
		})
	}

	return v
}

// explorerAPIKey reads the explorer key from DEPLOYLEDGER_ETHERSCAN_API_KEY or ETHERSCAN_API_KEY
func explorerAPIKey(v *viper.Viper) string {
	if key := v.GetString("etherscan_api_key"); key != "" {
		return key
	}
	return os.Getenv("ETHERSCAN_API_KEY")
}
