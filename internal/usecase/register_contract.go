package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/trebuchet-org/deployledger/internal/domain/config"
	"github.com/trebuchet-org/deployledger/internal/domain/models"
)

// Progress stages reported while registering
const (
	StageWaitingForReceipt = "Waiting for receipt"
	StageProbingOwner      = "Reading owner"
	StageRenderingTables   = "Rendering tables"
)

// ContractRef points at the contract being registered: a bare address, or a
// live deployment whose transaction may still be pending
type ContractRef struct {
	Address string
	TxHash  string
}

// IsLive reports whether the reference carries a deployment transaction
func (r ContractRef) IsLive() bool {
	return r.TxHash != ""
}

// RegisterOptions tunes a registration
type RegisterOptions struct {
	// Receipt skips waiting for the deployment transaction
	Receipt *models.Receipt
	// DryRun computes the new record without writing anything
	DryRun bool
	// Log reports "<path>: <address> (<explorer link>)" once the entry is stored
	Log bool
	// ConfirmReplace asks before replacing an entry with a different address
	ConfirmReplace bool
	// Base is the record a dry run builds on instead of the stored one
	Base *models.DeploymentRecord
}

// RegisterRequest describes one contract to record
type RegisterRequest struct {
	Path           string
	ContractType   models.ContractType
	Contract       ContractRef
	DeploymentArgs []string
	Options        RegisterOptions
}

// RegisterResult is the outcome of a registration
type RegisterResult struct {
	Chain    config.Chain
	Target   models.Target
	Entry    *models.ContractEntry
	Previous *models.ContractEntry
	Record   *models.DeploymentRecord
	Tables   *TablesResult
	Owner    models.OwnerProbe
	DryRun   bool
}

// ErrRegistrationDeclined is returned when the operator refuses to replace an entry
var ErrRegistrationDeclined = errors.New("registration declined")

// RegisterContract resolves the on-chain facts of a contract and upserts its
// entry into the chain's deployment record
type RegisterContract struct {
	chains    ChainRegistry
	store     MetadataStore
	vcs       SourceControl
	tables    *GenerateTables
	confirmer Confirmer
	progress  ProgressSink
	log       *slog.Logger
}

// NewRegisterContract creates a new RegisterContract use case
func NewRegisterContract(
	chains ChainRegistry,
	store MetadataStore,
	vcs SourceControl,
	tables *GenerateTables,
	confirmer Confirmer,
	progress ProgressSink,
	log *slog.Logger,
) *RegisterContract {
	return &RegisterContract{
		chains:    chains,
		store:     store,
		vcs:       vcs,
		tables:    tables,
		confirmer: confirmer,
		progress:  progress,
		log:       log.With("component", "RegisterContract"),
	}
}

// Run registers the contract on the chain conn is connected to
func (uc *RegisterContract) Run(ctx context.Context, conn ChainConnection, req RegisterRequest) (*RegisterResult, error) {
	target, err := models.ParseTarget(req.Path)
	if err != nil {
		return nil, err
	}
	if err := validateAddress(req.Contract.Address); err != nil {
		return nil, err
	}

	chainID, err := conn.ChainID(ctx)
	if err != nil {
		return nil, err
	}
	chain, err := uc.chains.Chain(chainID)
	if err != nil {
		return nil, err
	}

	current := req.Options.Base
	if !req.Options.DryRun || current == nil {
		if current, err = uc.store.Load(ctx, chainID); err != nil {
			return nil, err
		}
	}
	previous, exists := current.Entry(target)
	if exists && req.Options.ConfirmReplace && !strings.EqualFold(previous.Address, req.Contract.Address) {
		ok, err := uc.confirmer.Confirm(ctx, fmt.Sprintf("Replace %s (%s) with %s", target.Path(), previous.Address, req.Contract.Address))
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrRegistrationDeclined, target.Path())
		}
	}

	// an empty event closes whichever stage is still open
	defer uc.progress.OnProgress(ctx, ProgressEvent{})

	receipt := req.Options.Receipt
	if receipt == nil && req.Contract.IsLive() {
		uc.progress.OnProgress(ctx, ProgressEvent{Stage: StageWaitingForReceipt, Message: req.Contract.TxHash, Spinner: true})
		receipt, err = conn.WaitForReceipt(ctx, req.Contract.TxHash)
		if err != nil {
			return nil, fmt.Errorf("failed to get receipt of %s: %w", req.Contract.TxHash, err)
		}
	}

	uc.progress.OnProgress(ctx, ProgressEvent{Stage: StageProbingOwner, Message: req.Contract.Address, Spinner: true})
	probe := conn.ProbeOwner(ctx, req.Contract.Address)
	if probe.Status != models.OwnerFound {
		uc.log.Debug("owner not recorded", "address", req.Contract.Address, "status", probe.Status, "error", probe.Err)
	}

	entry := &models.ContractEntry{
		Address:        req.Contract.Address,
		ContractType:   req.ContractType,
		DeploymentArgs: append([]string{}, req.DeploymentArgs...),
		Owner:          probe.OwnerOrEmpty(),
	}

	if receipt != nil {
		timestamp, err := conn.BlockTimestamp(ctx, receipt.BlockNumber)
		if err != nil {
			return nil, err
		}
		entry.TxHash = receipt.TxHash
		entry.Block = receipt.BlockNumber
		entry.Timestamp = timestamp
	}

	entry.CommitHash, err = uc.vcs.CurrentRevision(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read source revision: %w", err)
	}

	record, err := uc.store.Upsert(ctx, chainID, target, entry, UpsertOptions{DryRun: req.Options.DryRun, Base: req.Options.Base})
	if err != nil {
		return nil, err
	}

	result := &RegisterResult{
		Chain:    chain,
		Target:   target,
		Entry:    entry,
		Previous: previous,
		Record:   record,
		Owner:    probe,
		DryRun:   req.Options.DryRun,
	}

	if req.Options.Log {
		uc.progress.Info(RegistrationLine(chain, target, entry.Address))
	}

	if req.Options.DryRun {
		return result, nil
	}

	uc.progress.OnProgress(ctx, ProgressEvent{Stage: StageRenderingTables})
	result.Tables, err = uc.tables.RenderRecord(ctx, chainID, record)
	if err != nil {
		return nil, fmt.Errorf("%s was saved but regenerating tables failed: %w", target.Path(), err)
	}
	return result, nil
}

// RegistrationLine is the console line naming a stored entry
func RegistrationLine(chain config.Chain, target models.Target, address string) string {
	return fmt.Sprintf("%s: %s (%s)", target.Path(), address, explorerURL(chain, address))
}

func explorerURL(chain config.Chain, address string) string {
	return fmt.Sprintf("%s/address/%s", strings.TrimSuffix(chain.ExplorerURL, "/"), address)
}
