package models

import (
	"fmt"
	"strings"

	"github.com/sahilm/fuzzy"
	"github.com/samber/lo"
	"github.com/trebuchet-org/deployledger/internal/domain"
)

// Category is a top-level grouping of a deployment record
type Category string

const (
	CategoryAddresses         Category = "addresses"
	CategoryTokens            Category = "tokens"
	CategoryFeeConverter      Category = "feeConverter"
	CategoryCore              Category = "core"
	CategoryDualMining        Category = "dualMining"
	CategoryOptionPS          Category = "optionPS"
	CategoryOptionReward      Category = "optionReward"
	CategoryVaults            Category = "vaults"
	CategoryRewardDistributor Category = "rewardDistributor"
)

// NamedCategories are the open-ended categories keyed by a freely chosen instance name
var NamedCategories = []Category{
	CategoryDualMining,
	CategoryOptionPS,
	CategoryOptionReward,
	CategoryVaults,
	CategoryRewardDistributor,
}

// IsNamed reports whether the category holds freely named entries
func (c Category) IsNamed() bool {
	return lo.Contains(NamedCategories, c)
}

// FeeConverterSlot is one of the fixed fee converter sub-keys
type FeeConverterSlot string

const (
	FeeConverterMain          FeeConverterSlot = "main"
	FeeConverterInsuranceFund FeeConverterSlot = "insuranceFund"
	FeeConverterTreasury      FeeConverterSlot = "treasury"
	FeeConverterDAO           FeeConverterSlot = "dao"
)

// FeeConverterSlots lists the valid fee converter sub-keys
var FeeConverterSlots = []FeeConverterSlot{
	FeeConverterMain,
	FeeConverterInsuranceFund,
	FeeConverterTreasury,
	FeeConverterDAO,
}

// Target is a resolved location of a ContractEntry inside a DeploymentRecord.
// It is one of CoreTarget, FeeConverterTarget or NamedTarget.
type Target interface {
	// Path returns the canonical dotted path of the target
	Path() string
	isTarget()
}

// CoreTarget addresses core.<Role>
type CoreTarget struct {
	Role CoreRole
}

func (t CoreTarget) Path() string { return string(CategoryCore) + "." + string(t.Role) }
func (CoreTarget) isTarget()      {}

// FeeConverterTarget addresses feeConverter.<Slot>
type FeeConverterTarget struct {
	Slot FeeConverterSlot
}

func (t FeeConverterTarget) Path() string {
	return string(CategoryFeeConverter) + "." + string(t.Slot)
}
func (FeeConverterTarget) isTarget() {}

// NamedTarget addresses <Category>.<Name> for open-ended categories
type NamedTarget struct {
	Category Category
	Name     string
}

func (t NamedTarget) Path() string { return string(t.Category) + "." + t.Name }
func (NamedTarget) isTarget()      {}

// ParseTarget resolves a dotted record path into a typed target.
//
// A bare segment naming a known core role is rooted under "core". Names in
// open-ended categories may themselves contain dots; everything after the
// category segment is taken as the name.
func ParseTarget(path string) (Target, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, domain.InvalidTargetErr{Path: path, Reason: "path is empty"}
	}

	head, rest, hasRest := strings.Cut(path, ".")

	if !hasRest {
		role := CoreRole(head)
		if role.IsValid() {
			return CoreTarget{Role: role}, nil
		}
		return nil, domain.InvalidTargetErr{
			Path:        path,
			Reason:      "bare names must be core roles",
			Suggestions: suggest(head, RoleNames()),
		}
	}

	if rest == "" {
		return nil, domain.InvalidTargetErr{Path: path, Reason: "missing name after category"}
	}

	category := Category(head)
	switch {
	case category == CategoryCore:
		role := CoreRole(rest)
		if !role.IsValid() {
			return nil, domain.InvalidTargetErr{
				Path:        path,
				Reason:      fmt.Sprintf("%q is not a core role; use <category>.<name> for other contracts", rest),
				Suggestions: suggest(rest, RoleNames()),
			}
		}
		return CoreTarget{Role: role}, nil

	case category == CategoryFeeConverter:
		slot := FeeConverterSlot(rest)
		if !lo.Contains(FeeConverterSlots, slot) {
			return nil, domain.InvalidTargetErr{
				Path:   path,
				Reason: fmt.Sprintf("fee converter slot must be one of %s", strings.Join(lo.Map(FeeConverterSlots, func(s FeeConverterSlot, _ int) string { return string(s) }), ", ")),
			}
		}
		return FeeConverterTarget{Slot: slot}, nil

	case category.IsNamed():
		return NamedTarget{Category: category, Name: rest}, nil

	case category == CategoryTokens || category == CategoryAddresses:
		return nil, domain.InvalidTargetErr{
			Path:   path,
			Reason: fmt.Sprintf("%s holds plain addresses, not contract entries", category),
		}
	}

	categories := append([]string{string(CategoryCore), string(CategoryFeeConverter)},
		lo.Map(NamedCategories, func(c Category, _ int) string { return string(c) })...)
	return nil, domain.InvalidTargetErr{
		Path:        path,
		Reason:      fmt.Sprintf("unknown category %q", head),
		Suggestions: suggest(head, categories),
	}
}

// suggest returns up to three fuzzy matches for input among candidates
func suggest(input string, candidates []string) []string {
	matches := fuzzy.Find(input, candidates)
	return lo.Map(lo.Slice(matches, 0, 3), func(m fuzzy.Match, _ int) string { return m.Str })
}
