package usecase

import (
	"context"
	"fmt"

	"github.com/trebuchet-org/deployledger/internal/domain/config"
	"github.com/trebuchet-org/deployledger/internal/domain/models"
)

// ShowResult is a record, or a single entry of it when a path was given
type ShowResult struct {
	Chain  config.Chain
	Record *models.DeploymentRecord
	Target models.Target
	Entry  *models.ContractEntry
}

// ShowRecord reads a deployment record for display
type ShowRecord struct {
	chains ChainRegistry
	store  MetadataStore
}

// NewShowRecord creates a new ShowRecord use case
func NewShowRecord(chains ChainRegistry, store MetadataStore) *ShowRecord {
	return &ShowRecord{chains: chains, store: store}
}

// Run loads the record of a chain and, when path is not empty, the entry at path
func (uc *ShowRecord) Run(ctx context.Context, chainID uint64, path string) (*ShowResult, error) {
	chain, err := uc.chains.Chain(chainID)
	if err != nil {
		return nil, err
	}
	record, err := uc.store.Load(ctx, chainID)
	if err != nil {
		return nil, err
	}

	result := &ShowResult{Chain: chain, Record: record}
	if path == "" {
		return result, nil
	}

	result.Target, err = models.ParseTarget(path)
	if err != nil {
		return nil, err
	}
	entry, ok := record.Entry(result.Target)
	if !ok {
		return nil, fmt.Errorf("no entry at %s on %s", result.Target.Path(), chain.DisplayName)
	}
	result.Entry = entry
	return result, nil
}
