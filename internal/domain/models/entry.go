package models

import (
	"encoding/json"
)

// ContractType describes how a contract participates in the protocol
type ContractType string

const (
	ContractTypeStandalone     ContractType = "Standalone"
	ContractTypeProxy          ContractType = "Proxy"
	ContractTypeImplementation ContractType = "Implementation"
	ContractTypeDiamondProxy   ContractType = "DiamondProxy"
	ContractTypeDiamondFacet   ContractType = "DiamondFacet"
)

// IsKnown reports whether the type is one of the predefined contract types.
// Free-form types are still stored as-is.
func (t ContractType) IsKnown() bool {
	switch t {
	case ContractTypeStandalone, ContractTypeProxy, ContractTypeImplementation,
		ContractTypeDiamondProxy, ContractTypeDiamondFacet:
		return true
	}
	return false
}

// ContractEntry records one deployed or referenced contract
type ContractEntry struct {
	Address        string       `json:"address"`
	ContractType   ContractType `json:"contractType"`
	DeploymentArgs []string     `json:"deploymentArgs"`
	CommitHash     string       `json:"commitHash"`
	TxHash         string       `json:"txHash,omitempty"`
	Block          uint64       `json:"block,omitempty"`
	Timestamp      uint64       `json:"timestamp,omitempty"`
	Owner          string       `json:"owner"`
}

// MarshalJSON always writes deploymentArgs as an array, never null.
func (e ContractEntry) MarshalJSON() ([]byte, error) {
	type plain ContractEntry
	if e.DeploymentArgs == nil {
		e.DeploymentArgs = []string{}
	}
	return json.Marshal(plain(e))
}

// HasTransaction reports whether the entry was written with a mined transaction.
func (e *ContractEntry) HasTransaction() bool {
	return e.TxHash != "" && e.Block != 0
}

// Clone returns a deep copy of the entry.
func (e *ContractEntry) Clone() *ContractEntry {
	if e == nil {
		return nil
	}
	clone := *e
	if e.DeploymentArgs != nil {
		clone.DeploymentArgs = append([]string{}, e.DeploymentArgs...)
	}
	return &clone
}

// Receipt is the subset of a transaction receipt the ledger records
type Receipt struct {
	TxHash      string
	BlockNumber uint64
}

// OwnerStatus is the outcome of an ownership probe
type OwnerStatus int

const (
	// OwnerFound means owner() returned an address
	OwnerFound OwnerStatus = iota
	// OwnerNotOwnable means the contract has no code or does not implement owner()
	OwnerNotOwnable
	// OwnerProbeFailed means the call could not be completed (network, decode, ...)
	OwnerProbeFailed
)

func (s OwnerStatus) String() string {
	switch s {
	case OwnerFound:
		return "found"
	case OwnerNotOwnable:
		return "not-ownable"
	case OwnerProbeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// OwnerProbe is the typed result of reading owner() from a contract
type OwnerProbe struct {
	Owner  string
	Status OwnerStatus
	Err    error
}

// OwnerOrEmpty returns the owner address, or "" for every non-found outcome.
func (p OwnerProbe) OwnerOrEmpty() string {
	if p.Status != OwnerFound {
		return ""
	}
	return p.Owner
}
