package config

import (
	"time"
)

// RuntimeConfig represents the complete runtime configuration
// This is injected into use cases and contains all resolved settings
type RuntimeConfig struct {
	// Core settings
	ProjectRoot string

	// Target chain
	Chain  *Chain // nil if not specified
	RPCURL string
	Fork   bool

	// Execution settings
	Debug          bool
	NonInteractive bool
	Timeout        time.Duration

	// Command-specific settings (only populated for relevant commands)
	DryRun bool

	// Credentials
	ExplorerAPIKey string

	// Resolved project file
	Ledger LedgerConfig
	Verify VerifyConfig
}

// Chain represents one supported chain
type Chain struct {
	ID          uint64 `json:"chainId"`
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
	ExplorerURL string `json:"explorerUrl"`
}

// LedgerFile is the layout of deployledger.toml
type LedgerFile struct {
	Ledger LedgerConfig `toml:"ledger"`
	Verify VerifyConfig `toml:"verify"`
}

// LedgerConfig locates records, sources and generated documents
type LedgerConfig struct {
	DeploymentsDir   string `toml:"deployments_dir"`
	RepositoryURL    string `toml:"repository_url"`
	SourcesDir       string `toml:"sources_dir"`
	ArtifactsDir     string `toml:"artifacts_dir"`
	NoOpenCategories string `toml:"no_open_categories"`
}

// VerifyConfig tunes explorer verification
type VerifyConfig struct {
	RequestsPerSecond float64 `toml:"requests_per_second"`
	Burst             int     `toml:"burst"`
}

// DefaultLedgerFile returns the settings used when deployledger.toml omits a key
func DefaultLedgerFile() LedgerFile {
	return LedgerFile{
		Ledger: LedgerConfig{
			DeploymentsDir:   "deployments",
			RepositoryURL:    "https://github.com/Premian-Labs/premia-contracts-private",
			SourcesDir:       "contracts",
			ArtifactsDir:     "out",
			NoOpenCategories: "Arbitrum Nova",
		},
		Verify: VerifyConfig{
			RequestsPerSecond: 4,
			Burst:             1,
		},
	}
}
