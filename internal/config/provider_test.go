package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/deployledger/internal/domain"
	"github.com/trebuchet-org/deployledger/internal/domain/config"
)

func TestLoadLedgerFile(t *testing.T) {
	t.Run("missing file yields defaults", func(t *testing.T) {
		cfg, err := loadLedgerFile(t.TempDir())
		require.NoError(t, err)
		assert.Equal(t, config.DefaultLedgerFile(), cfg)
	})

	t.Run("file overrides defaults key by key", func(t *testing.T) {
		root := t.TempDir()
		t.Setenv("LEDGER_REPO", "https://github.com/example/protocol")
		writeFile(t, filepath.Join(root, LedgerFileName), `
[ledger]
deployments_dir = "deploy"
repository_url = "${LEDGER_REPO}"

[verify]
requests_per_second = 2.5
`)

		cfg, err := loadLedgerFile(root)
		require.NoError(t, err)
		assert.Equal(t, "deploy", cfg.Ledger.DeploymentsDir)
		assert.Equal(t, "https://github.com/example/protocol", cfg.Ledger.RepositoryURL)
		assert.Equal(t, "contracts", cfg.Ledger.SourcesDir)
		assert.Equal(t, "Arbitrum Nova", cfg.Ledger.NoOpenCategories)
		assert.Equal(t, 2.5, cfg.Verify.RequestsPerSecond)
		assert.Equal(t, 1, cfg.Verify.Burst)
	})

	t.Run("unknown keys are rejected", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, filepath.Join(root, LedgerFileName), "[ledger]\ndeployment_dir = \"typo\"\n")

		_, err := loadLedgerFile(root)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "deployment_dir")
	})

	t.Run("invalid toml", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, filepath.Join(root, LedgerFileName), "[ledger\n")

		_, err := loadLedgerFile(root)
		assert.Error(t, err)
	})
}

func TestWriteDefaultLedgerFile(t *testing.T) {
	root := t.TempDir()

	created, err := WriteDefaultLedgerFile(root)
	require.NoError(t, err)
	assert.True(t, created)

	cfg, err := loadLedgerFile(root)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultLedgerFile(), cfg)

	created, err = WriteDefaultLedgerFile(root)
	require.NoError(t, err)
	assert.False(t, created)
}

func TestProvider(t *testing.T) {
	t.Run("resolves chain and rpc url", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, filepath.Join(root, ".env"), "ARBITRUM_SEPOLIA_RPC_URL=https://sepolia-rollup.example\nETHERSCAN_API_KEY=key-from-dotenv\n")
		t.Setenv("ARBITRUM_SEPOLIA_RPC_URL", "")
		os.Unsetenv("ARBITRUM_SEPOLIA_RPC_URL")
		t.Setenv("ETHERSCAN_API_KEY", "")
		os.Unsetenv("ETHERSCAN_API_KEY")

		v := viper.New()
		v.Set("project_root", root)
		v.Set("chain", "arbitrumSepolia")
		v.Set("dry_run", true)
		v.Set("timeout", "1m")

		cfg, err := Provider(v)
		require.NoError(t, err)
		require.NotNil(t, cfg.Chain)
		assert.Equal(t, uint64(421614), cfg.Chain.ID)
		assert.Equal(t, "https://sepolia-rollup.example", cfg.RPCURL)
		assert.Equal(t, "key-from-dotenv", cfg.ExplorerAPIKey)
		assert.True(t, cfg.DryRun)
		assert.Equal(t, time.Minute, cfg.Timeout)
		assert.Equal(t, "deployments", cfg.Ledger.DeploymentsDir)
	})

	t.Run("no chain selected", func(t *testing.T) {
		v := viper.New()
		v.Set("project_root", t.TempDir())

		cfg, err := Provider(v)
		require.NoError(t, err)
		assert.Nil(t, cfg.Chain)
		assert.Empty(t, cfg.RPCURL)
	})

	t.Run("unknown chain", func(t *testing.T) {
		v := viper.New()
		v.Set("project_root", t.TempDir())
		v.Set("chain", "mainnet")

		_, err := Provider(v)
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrUnknownChain))
	})
}

func TestSetupViper_Defaults(t *testing.T) {
	t.Setenv("DEPLOYLEDGER_DRY_RUN", "true")

	v := SetupViper("/project", nil)
	assert.Equal(t, "/project", v.GetString("project_root"))
	assert.Zero(t, v.GetDuration("timeout"))
	assert.True(t, v.GetBool("dry_run"))
	assert.False(t, v.GetBool("fork"))
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}
