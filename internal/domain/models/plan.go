package models

import "fmt"

// Plan is an ordered list of ledger steps applied by `deployledger apply`
type Plan struct {
	// Chain optionally pins the plan to one chain name or id
	Chain string     `yaml:"chain,omitempty"`
	Steps []PlanStep `yaml:"steps"`
}

// PlanStep holds exactly one of its fields
type PlanStep struct {
	Register *RegisterStep `yaml:"register,omitempty"`
	Token    *TokenStep    `yaml:"token,omitempty"`
	Address  *AddressStep  `yaml:"address,omitempty"`
}

// RegisterStep upserts one contract entry and optionally verifies it
type RegisterStep struct {
	Path         string            `yaml:"path"`
	Type         ContractType      `yaml:"type"`
	Address      string            `yaml:"address"`
	TxHash       string            `yaml:"txHash,omitempty"`
	Args         []string          `yaml:"args,omitempty"`
	Verify       bool              `yaml:"verify,omitempty"`
	Contract     string            `yaml:"contract,omitempty"`
	ContractPath string            `yaml:"contractPath,omitempty"`
	Libraries    map[string]string `yaml:"libraries,omitempty"`
}

// TokenStep sets the address of a token symbol
type TokenStep struct {
	Symbol  string `yaml:"symbol"`
	Address string `yaml:"address"`
}

// AddressStep sets one of the protocol-wide singleton addresses
type AddressStep struct {
	Key     string `yaml:"key"`
	Address string `yaml:"address"`
}

// Describe returns a one-line summary of the step
func (s PlanStep) Describe() string {
	switch {
	case s.Register != nil:
		return fmt.Sprintf("register %s", s.Register.Path)
	case s.Token != nil:
		return fmt.Sprintf("token %s", s.Token.Symbol)
	case s.Address != nil:
		return fmt.Sprintf("address %s", s.Address.Key)
	}
	return "empty step"
}

// Validate checks that each step sets exactly one action
func (p *Plan) Validate() error {
	if len(p.Steps) == 0 {
		return fmt.Errorf("plan has no steps")
	}
	for i, step := range p.Steps {
		set := 0
		for _, present := range []bool{step.Register != nil, step.Token != nil, step.Address != nil} {
			if present {
				set++
			}
		}
		if set != 1 {
			return fmt.Errorf("step %d: expected exactly one of register, token or address, got %d", i+1, set)
		}
		if step.Register != nil && (step.Register.Path == "" || step.Register.Address == "") {
			return fmt.Errorf("step %d: register needs a path and an address", i+1)
		}
	}
	return nil
}
