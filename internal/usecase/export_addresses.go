package usecase

import (
	"context"
	"slices"

	"github.com/samber/lo"
	"github.com/trebuchet-org/deployledger/internal/domain/config"
	"github.com/trebuchet-org/deployledger/internal/domain/models"
)

// AddressBookEntry is one named address of a chain
type AddressBookEntry struct {
	Key     string
	Address string
}

// AddressBook is the flattened address list of a chain, in a stable order
type AddressBook struct {
	Chain   config.Chain
	Entries []AddressBookEntry
}

// ExportAddresses flattens a deployment record into an address book
type ExportAddresses struct {
	chains ChainRegistry
	store  MetadataStore
}

// NewExportAddresses creates a new ExportAddresses use case
func NewExportAddresses(chains ChainRegistry, store MetadataStore) *ExportAddresses {
	return &ExportAddresses{chains: chains, store: store}
}

// Run loads the record of a chain and flattens it
func (uc *ExportAddresses) Run(ctx context.Context, chainID uint64) (*AddressBook, error) {
	chain, err := uc.chains.Chain(chainID)
	if err != nil {
		return nil, err
	}
	record, err := uc.store.Load(ctx, chainID)
	if err != nil {
		return nil, err
	}
	return &AddressBook{Chain: chain, Entries: FlattenRecord(record)}, nil
}

// FlattenRecord lists every non-empty address of a record. Keys are the dotted
// record paths; addresses, tokens and core are sorted, named categories keep
// their insertion order.
func FlattenRecord(record *models.DeploymentRecord) []AddressBookEntry {
	var entries []AddressBookEntry
	add := func(key, address string) {
		if address != "" {
			entries = append(entries, AddressBookEntry{Key: key, Address: address})
		}
	}

	if a := record.Addresses; a != nil {
		add("addresses.dao", a.DAO)
		add("addresses.insuranceFund", a.InsuranceFund)
		add("addresses.lzEndpoint", a.LzEndpoint)
		add("addresses.treasury", a.Treasury)
	}

	symbols := lo.Keys(record.Tokens)
	slices.Sort(symbols)
	for _, symbol := range symbols {
		add("tokens."+symbol, record.Tokens[symbol])
	}

	if record.FeeConverter != nil {
		for _, slot := range models.FeeConverterSlots {
			if entry, ok := record.Entry(models.FeeConverterTarget{Slot: slot}); ok {
				add(models.FeeConverterTarget{Slot: slot}.Path(), entry.Address)
			}
		}
	}

	roles := lo.Keys(record.Core)
	slices.Sort(roles)
	for _, role := range roles {
		if entry := record.Core[role]; entry != nil {
			add(models.CoreTarget{Role: role}.Path(), entry.Address)
		}
	}

	for _, category := range models.NamedCategories {
		named := record.Named(category)
		for _, name := range named.Names() {
			if entry, ok := named.Get(name); ok && entry != nil {
				add(models.NamedTarget{Category: category, Name: name}.Path(), entry.Address)
			}
		}
	}
	return entries
}
