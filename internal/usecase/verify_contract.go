package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/trebuchet-org/deployledger/internal/domain"
	"github.com/trebuchet-org/deployledger/internal/domain/models"
)

// VerifyRequest describes one contract to verify on a block explorer
type VerifyRequest struct {
	ChainID         uint64
	Address         string
	ContractName    string
	ConstructorArgs []string
	Libraries       map[string]string
	// ContractPath overrides the "path/to/File.sol:Name" identifier
	ContractPath string
}

// VerifyOverrides adjusts verification of an entry already in the record
type VerifyOverrides struct {
	ContractName string
	ContractPath string
	Libraries    map[string]string
}

// VerifyContract submits contract sources for verification. It never touches
// the deployment record.
type VerifyContract struct {
	chains   ChainRegistry
	store    MetadataStore
	verifier ContractVerifier
	catalog  models.RoleCatalog
	log      *slog.Logger
}

// NewVerifyContract creates a new VerifyContract use case
func NewVerifyContract(
	chains ChainRegistry,
	store MetadataStore,
	verifier ContractVerifier,
	catalog models.RoleCatalog,
	log *slog.Logger,
) *VerifyContract {
	return &VerifyContract{
		chains:   chains,
		store:    store,
		verifier: verifier,
		catalog:  catalog,
		log:      log.With("component", "VerifyContract"),
	}
}

// Run verifies one contract
func (uc *VerifyContract) Run(ctx context.Context, req VerifyRequest) error {
	chain, err := uc.chains.Chain(req.ChainID)
	if err != nil {
		return err
	}
	if req.ContractName == "" {
		return fmt.Errorf("%w: contract name required for %s", domain.ErrVerificationFailed, req.Address)
	}

	uc.log.Debug("verifying", "chain", chain.Name, "contract", req.ContractName, "address", req.Address)
	return uc.verifier.Verify(ctx, VerificationRequest{
		Chain:           chain,
		Address:         req.Address,
		ContractName:    req.ContractName,
		ContractPath:    req.ContractPath,
		ConstructorArgs: req.ConstructorArgs,
		Libraries:       req.Libraries,
	})
}

// RunForPath verifies the entry stored at path, using its address and
// deployment arguments
func (uc *VerifyContract) RunForPath(ctx context.Context, chainID uint64, path string, overrides VerifyOverrides) (*VerifyRequest, error) {
	target, err := models.ParseTarget(path)
	if err != nil {
		return nil, err
	}
	record, err := uc.store.Load(ctx, chainID)
	if err != nil {
		return nil, err
	}
	entry, ok := record.Entry(target)
	if !ok {
		return nil, fmt.Errorf("no entry at %s", target.Path())
	}

	req := VerifyRequest{
		ChainID:         chainID,
		Address:         entry.Address,
		ContractName:    overrides.ContractName,
		ConstructorArgs: entry.DeploymentArgs,
		Libraries:       overrides.Libraries,
		ContractPath:    overrides.ContractPath,
	}
	if req.ContractName == "" {
		req.ContractName = uc.ContractName(target, entry.ContractType)
	}
	return &req, uc.Run(ctx, req)
}

// ContractName guesses the Solidity contract behind a target. Only core roles
// have a known contract; other targets need an explicit name.
func (uc *VerifyContract) ContractName(target models.Target, contractType models.ContractType) string {
	if core, ok := target.(models.CoreTarget); ok {
		return uc.catalog.Display(core.Role, contractType).Contract
	}
	return ""
}
