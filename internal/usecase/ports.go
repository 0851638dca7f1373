package usecase

import (
	"context"

	"github.com/trebuchet-org/deployledger/internal/domain/config"
	"github.com/trebuchet-org/deployledger/internal/domain/models"
)

// UpsertOptions controls how a record mutation is persisted
type UpsertOptions struct {
	// DryRun applies the change in memory only; nothing is written
	DryRun bool
	// Base is the record a dry run builds on instead of the stored one
	Base *models.DeploymentRecord
}

// MetadataStore handles persistence of per-chain deployment records
type MetadataStore interface {
	Load(ctx context.Context, chainID uint64) (*models.DeploymentRecord, error)
	Upsert(ctx context.Context, chainID uint64, target models.Target, entry *models.ContractEntry, opts UpsertOptions) (*models.DeploymentRecord, error)
	Init(ctx context.Context, chainID uint64) (*models.DeploymentRecord, error)
	SetToken(ctx context.Context, chainID uint64, symbol, address string, opts UpsertOptions) (*models.DeploymentRecord, error)
	SetProtocolAddress(ctx context.Context, chainID uint64, key, address string, opts UpsertOptions) (*models.DeploymentRecord, error)
}

// ChainRegistry resolves static chain metadata
type ChainRegistry interface {
	Chain(chainID uint64) (config.Chain, error)
	DisplayName(chainID uint64) (string, error)
	ExplorerURL(chainID uint64) (string, error)
	MetadataPath(chainID uint64) (string, error)
	Resolve(input string) (config.Chain, error)
	All() []config.Chain
}

// ChainClient reads chain facts needed to stamp an entry
type ChainClient interface {
	ChainID(ctx context.Context) (uint64, error)
	// WaitForReceipt blocks until the transaction is mined or ctx is done
	WaitForReceipt(ctx context.Context, txHash string) (*models.Receipt, error)
	BlockTimestamp(ctx context.Context, blockNumber uint64) (uint64, error)
}

// OwnerProber reads owner() from a contract
type OwnerProber interface {
	ProbeOwner(ctx context.Context, address string) models.OwnerProbe
}

// ChainConnection is a live connection to one chain
type ChainConnection interface {
	ChainClient
	OwnerProber
	Close()
}

// ChainDialer opens chain connections
type ChainDialer interface {
	Dial(ctx context.Context, rpcURL string) (ChainConnection, error)
}

// SourceControl supplies the revision stamped on entries
type SourceControl interface {
	CurrentRevision(ctx context.Context) (string, error)
}

// FileIndex maps Solidity contract names to their source files
type FileIndex interface {
	// ResolveFilePath returns the source path of a contract relative to the project root
	ResolveFilePath(ctx context.Context, contractName string) (string, bool)
}

// ArtifactIndex locates compiled Foundry artifacts
type ArtifactIndex interface {
	FileIndex
	ResolveArtifact(ctx context.Context, contractName string) (*models.CompiledContract, error)
}

// DocumentWriter writes generated documents below the deployments directory
type DocumentWriter interface {
	WriteDocument(ctx context.Context, relPath string, content []byte) error
}

// TableRenderer turns a table document into its on-disk form
type TableRenderer interface {
	Render(doc *models.TableDocument) []byte
}

// PlanReader loads deployment plans
type PlanReader interface {
	ReadPlan(ctx context.Context, path string) (*models.Plan, error)
}

// VerificationRequest describes one contract to verify on a block explorer
type VerificationRequest struct {
	Chain           config.Chain
	Address         string
	ContractName    string
	ContractPath    string // optional "path/to/File.sol:Name" override
	ConstructorArgs []string
	Libraries       map[string]string // library name -> address
}

// ContractVerifier submits contract sources to a block explorer
type ContractVerifier interface {
	Verify(ctx context.Context, req VerificationRequest) error
}

// Confirmer asks the operator a yes/no question
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) (bool, error)
}

// ChainSelector lets the operator pick a chain when none was given
type ChainSelector interface {
	SelectChain(ctx context.Context, chains []config.Chain) (config.Chain, error)
}

// Progress tracking interfaces

// ProgressEvent represents a progress update
type ProgressEvent struct {
	Stage    string
	Current  int
	Total    int
	Message  string
	Spinner  bool
	Metadata interface{}
}

// ProgressSink receives progress events
type ProgressSink interface {
	OnProgress(ctx context.Context, event ProgressEvent)
	Info(message string)
	Error(message string)
}

// NopProgress is a no-op implementation of ProgressSink
type NopProgress struct{}

func (NopProgress) OnProgress(context.Context, ProgressEvent) {}
func (NopProgress) Info(string)                               {}
func (NopProgress) Error(string)                              {}
