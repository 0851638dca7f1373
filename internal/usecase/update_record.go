package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/samber/lo"
	"github.com/trebuchet-org/deployledger/internal/domain"
	"github.com/trebuchet-org/deployledger/internal/domain/models"
)

// UpdateRecord maintains the parts of a record that are not contract entries
type UpdateRecord struct {
	chains ChainRegistry
	store  MetadataStore
	tables *GenerateTables
	log    *slog.Logger
}

// NewUpdateRecord creates a new UpdateRecord use case
func NewUpdateRecord(chains ChainRegistry, store MetadataStore, tables *GenerateTables, log *slog.Logger) *UpdateRecord {
	return &UpdateRecord{
		chains: chains,
		store:  store,
		tables: tables,
		log:    log.With("component", "UpdateRecord"),
	}
}

// InitResult is the outcome of creating a record
type InitResult struct {
	Path   string
	Record *models.DeploymentRecord
	Tables *TablesResult
}

// Init creates an empty record for a chain and renders its (empty) tables
func (uc *UpdateRecord) Init(ctx context.Context, chainID uint64) (*InitResult, error) {
	path, err := uc.chains.MetadataPath(chainID)
	if err != nil {
		return nil, err
	}
	record, err := uc.store.Init(ctx, chainID)
	if err != nil {
		return nil, err
	}
	tables, err := uc.tables.RenderRecord(ctx, chainID, record)
	if err != nil {
		return nil, err
	}
	return &InitResult{Path: path, Record: record, Tables: tables}, nil
}

// SetToken records the address of a token symbol
func (uc *UpdateRecord) SetToken(ctx context.Context, chainID uint64, symbol, address string, opts UpsertOptions) (*models.DeploymentRecord, error) {
	symbol = strings.TrimSpace(symbol)
	if symbol == "" {
		return nil, fmt.Errorf("token symbol is required")
	}
	if err := validateAddress(address); err != nil {
		return nil, err
	}
	uc.log.Debug("setting token", "symbol", symbol, "address", address)
	return uc.store.SetToken(ctx, chainID, symbol, address, opts)
}

// SetProtocolAddress records one of the protocol-wide singleton addresses
func (uc *UpdateRecord) SetProtocolAddress(ctx context.Context, chainID uint64, key, address string, opts UpsertOptions) (*models.DeploymentRecord, error) {
	if err := validateAddress(address); err != nil {
		return nil, err
	}
	if !lo.Contains(models.ProtocolAddressKeys, key) {
		return nil, fmt.Errorf("unknown protocol address %q (expected one of %s)", key, strings.Join(models.ProtocolAddressKeys, ", "))
	}
	return uc.store.SetProtocolAddress(ctx, chainID, key, address, opts)
}

func validateAddress(address string) error {
	if !common.IsHexAddress(address) {
		return fmt.Errorf("%w: %q", domain.ErrInvalidAddress, address)
	}
	return nil
}
