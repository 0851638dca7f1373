package models

import (
	"fmt"
	"maps"
)

// ProtocolAddresses holds the protocol-wide singleton addresses of a chain
type ProtocolAddresses struct {
	Treasury      string `json:"treasury"`
	InsuranceFund string `json:"insuranceFund"`
	DAO           string `json:"dao"`
	LzEndpoint    string `json:"lzEndpoint"`
}

// ProtocolAddressKeys lists the JSON keys accepted by ProtocolAddresses.Set
var ProtocolAddressKeys = []string{"treasury", "insuranceFund", "dao", "lzEndpoint"}

// Set assigns the address stored under key
func (a *ProtocolAddresses) Set(key, address string) error {
	switch key {
	case "treasury":
		a.Treasury = address
	case "insuranceFund":
		a.InsuranceFund = address
	case "dao":
		a.DAO = address
	case "lzEndpoint":
		a.LzEndpoint = address
	default:
		return fmt.Errorf("unknown protocol address %q", key)
	}
	return nil
}

// FeeConverters holds the fixed fee converter entries
type FeeConverters struct {
	Main          *ContractEntry `json:"main,omitempty"`
	InsuranceFund *ContractEntry `json:"insuranceFund,omitempty"`
	Treasury      *ContractEntry `json:"treasury,omitempty"`
	DAO           *ContractEntry `json:"dao,omitempty"`
}

func (f *FeeConverters) slot(s FeeConverterSlot) **ContractEntry {
	switch s {
	case FeeConverterMain:
		return &f.Main
	case FeeConverterInsuranceFund:
		return &f.InsuranceFund
	case FeeConverterTreasury:
		return &f.Treasury
	case FeeConverterDAO:
		return &f.DAO
	}
	return nil
}

// DeploymentRecord is the persisted deployment ledger of one chain. Empty
// categories are written as {}; categories the file never had stay absent.
type DeploymentRecord struct {
	Addresses         *ProtocolAddresses          `json:"addresses,omitempty"`
	Tokens            map[string]string           `json:"tokens,omitzero"`
	FeeConverter      *FeeConverters              `json:"feeConverter,omitempty"`
	Core              map[CoreRole]*ContractEntry `json:"core,omitzero"`
	DualMining        *NamedEntries               `json:"dualMining,omitempty"`
	OptionPS          *NamedEntries               `json:"optionPS,omitempty"`
	OptionReward      *NamedEntries               `json:"optionReward,omitempty"`
	Vaults            *NamedEntries               `json:"vaults,omitempty"`
	RewardDistributor *NamedEntries               `json:"rewardDistributor,omitempty"`
}

// NewRecord returns an empty record with every category present
func NewRecord() *DeploymentRecord {
	return &DeploymentRecord{
		Addresses:         &ProtocolAddresses{},
		Tokens:            map[string]string{},
		FeeConverter:      &FeeConverters{},
		Core:              map[CoreRole]*ContractEntry{},
		DualMining:        NewNamedEntries(),
		OptionPS:          NewNamedEntries(),
		OptionReward:      NewNamedEntries(),
		Vaults:            NewNamedEntries(),
		RewardDistributor: NewNamedEntries(),
	}
}

// Named returns the open-ended mapping of a category, or nil if absent
func (r *DeploymentRecord) Named(c Category) *NamedEntries {
	if p := r.namedField(c); p != nil {
		return *p
	}
	return nil
}

func (r *DeploymentRecord) namedField(c Category) **NamedEntries {
	switch c {
	case CategoryDualMining:
		return &r.DualMining
	case CategoryOptionPS:
		return &r.OptionPS
	case CategoryOptionReward:
		return &r.OptionReward
	case CategoryVaults:
		return &r.Vaults
	case CategoryRewardDistributor:
		return &r.RewardDistributor
	}
	return nil
}

// Put replaces the entry at target, creating intermediate levels as needed
func (r *DeploymentRecord) Put(target Target, entry *ContractEntry) error {
	switch t := target.(type) {
	case CoreTarget:
		if !t.Role.IsValid() {
			return fmt.Errorf("core role %q is not known", t.Role)
		}
		if r.Core == nil {
			r.Core = map[CoreRole]*ContractEntry{}
		}
		r.Core[t.Role] = entry
	case FeeConverterTarget:
		if r.FeeConverter == nil {
			r.FeeConverter = &FeeConverters{}
		}
		slot := r.FeeConverter.slot(t.Slot)
		if slot == nil {
			return fmt.Errorf("fee converter slot %q is not known", t.Slot)
		}
		*slot = entry
	case NamedTarget:
		field := r.namedField(t.Category)
		if field == nil {
			return fmt.Errorf("category %q does not hold named entries", t.Category)
		}
		if *field == nil {
			*field = NewNamedEntries()
		}
		(*field).Set(t.Name, entry)
	default:
		return fmt.Errorf("unsupported target %T", target)
	}
	return nil
}

// Entry returns the entry stored at target
func (r *DeploymentRecord) Entry(target Target) (*ContractEntry, bool) {
	switch t := target.(type) {
	case CoreTarget:
		entry, ok := r.Core[t.Role]
		return entry, ok && entry != nil
	case FeeConverterTarget:
		if r.FeeConverter == nil {
			return nil, false
		}
		slot := r.FeeConverter.slot(t.Slot)
		if slot == nil || *slot == nil {
			return nil, false
		}
		return *slot, true
	case NamedTarget:
		return r.Named(t.Category).Get(t.Name)
	}
	return nil, false
}

// Clone returns a deep copy of the record
func (r *DeploymentRecord) Clone() *DeploymentRecord {
	if r == nil {
		return nil
	}
	clone := &DeploymentRecord{
		Tokens:            maps.Clone(r.Tokens),
		DualMining:        r.DualMining.Clone(),
		OptionPS:          r.OptionPS.Clone(),
		OptionReward:      r.OptionReward.Clone(),
		Vaults:            r.Vaults.Clone(),
		RewardDistributor: r.RewardDistributor.Clone(),
	}
	if r.Addresses != nil {
		addresses := *r.Addresses
		clone.Addresses = &addresses
	}
	if r.FeeConverter != nil {
		clone.FeeConverter = &FeeConverters{
			Main:          r.FeeConverter.Main.Clone(),
			InsuranceFund: r.FeeConverter.InsuranceFund.Clone(),
			Treasury:      r.FeeConverter.Treasury.Clone(),
			DAO:           r.FeeConverter.DAO.Clone(),
		}
	}
	if r.Core != nil {
		clone.Core = make(map[CoreRole]*ContractEntry, len(r.Core))
		for role, entry := range r.Core {
			clone.Core[role] = entry.Clone()
		}
	}
	return clone
}
