package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/trebuchet-org/deployledger/internal/domain/config"
)

// loadLedgerFile reads deployledger.toml over the defaults.
// A missing file yields the defaults.
func loadLedgerFile(projectRoot string) (config.LedgerFile, error) {
	cfg := config.DefaultLedgerFile()

	ledgerPath := filepath.Join(projectRoot, LedgerFileName)
	if _, err := os.Stat(ledgerPath); os.IsNotExist(err) {
		return cfg, nil
	}

	meta, err := toml.DecodeFile(ledgerPath, &cfg)
	if err != nil {
		return cfg, fmt.Errorf("failed to parse %s: %w", LedgerFileName, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return cfg, fmt.Errorf("unknown key %q in %s", undecoded[0].String(), LedgerFileName)
	}

	cfg.Ledger.RepositoryURL = os.ExpandEnv(cfg.Ledger.RepositoryURL)
	if cfg.Verify.RequestsPerSecond <= 0 {
		return cfg, fmt.Errorf("verify.requests_per_second must be positive")
	}
	if cfg.Verify.Burst <= 0 {
		cfg.Verify.Burst = 1
	}

	return cfg, nil
}

// loadEnvFiles loads .env and .env.local from the project root.
// Variables already set in the environment win.
func loadEnvFiles(projectRoot string) {
	envFiles := []string{
		filepath.Join(projectRoot, ".env"),
		filepath.Join(projectRoot, ".env.local"),
	}

	for _, envFile := range envFiles {
		if _, err := os.Stat(envFile); err == nil {
			if err := godotenv.Load(envFile); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: Failed to load %s: %v\n", envFile, err)
			}
		}
	}
}

// WriteDefaultLedgerFile creates deployledger.toml with the default settings.
// An existing file is left untouched and reported as false.
func WriteDefaultLedgerFile(projectRoot string) (bool, error) {
	ledgerPath := filepath.Join(projectRoot, LedgerFileName)
	if _, err := os.Stat(ledgerPath); err == nil {
		return false, nil
	}

	f, err := os.Create(ledgerPath) //nolint:gosec // internal path
	if err != nil {
		return false, fmt.Errorf("failed to create %s: %w", LedgerFileName, err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(config.DefaultLedgerFile()); err != nil {
		return false, fmt.Errorf("failed to write %s: %w", LedgerFileName, err)
	}
	return true, nil
}
