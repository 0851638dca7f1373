package chains

import (
	"path"
	"slices"
	"strconv"
	"strings"

	"github.com/sahilm/fuzzy"
	"github.com/samber/lo"
	"github.com/trebuchet-org/deployledger/internal/domain"
	"github.com/trebuchet-org/deployledger/internal/domain/config"
)

// MetadataFile is the name of the per-chain record file
const MetadataFile = "metadata.json"

// defaultChains is the fixed set of supported chains
var defaultChains = []config.Chain{
	{ID: 42161, Name: "arbitrum", DisplayName: "Arbitrum", ExplorerURL: "https://arbiscan.io"},
	{ID: 421613, Name: "arbitrumGoerli", DisplayName: "Arbitrum Goerli", ExplorerURL: "https://goerli.arbiscan.io"},
	{ID: 42170, Name: "arbitrumNova", DisplayName: "Arbitrum Nova", ExplorerURL: "https://nova.arbiscan.io"},
	{ID: 421614, Name: "arbitrumSepolia", DisplayName: "Arbitrum Sepolia", ExplorerURL: "https://sepolia.arbiscan.io"},
	{ID: 31337, Name: "localhost", DisplayName: "Localhost", ExplorerURL: "http://localhost"},
}

// Registry is a static lookup over the supported chains
type Registry struct {
	byID   map[uint64]config.Chain
	byName map[string]config.Chain // lowercase name -> chain
}

// NewRegistry creates a registry populated with the supported chains
func NewRegistry() *Registry {
	r := &Registry{
		byID:   make(map[uint64]config.Chain, len(defaultChains)),
		byName: make(map[string]config.Chain, len(defaultChains)),
	}
	for _, chain := range defaultChains {
		r.byID[chain.ID] = chain
		r.byName[strings.ToLower(chain.Name)] = chain
	}
	return r
}

// Chain returns the chain with the given id
func (r *Registry) Chain(chainID uint64) (config.Chain, error) {
	chain, ok := r.byID[chainID]
	if !ok {
		return config.Chain{}, domain.UnknownChainErr{Input: strconv.FormatUint(chainID, 10)}
	}
	return chain, nil
}

// DisplayName returns the human name of a chain
func (r *Registry) DisplayName(chainID uint64) (string, error) {
	chain, err := r.Chain(chainID)
	if err != nil {
		return "", err
	}
	return chain.DisplayName, nil
}

// ExplorerURL returns the block explorer base URL of a chain
func (r *Registry) ExplorerURL(chainID uint64) (string, error) {
	chain, err := r.Chain(chainID)
	if err != nil {
		return "", err
	}
	return chain.ExplorerURL, nil
}

// MetadataPath returns the record file path relative to the deployments directory
func (r *Registry) MetadataPath(chainID uint64) (string, error) {
	chain, err := r.Chain(chainID)
	if err != nil {
		return "", err
	}
	return path.Join(chain.Name, MetadataFile), nil
}

// Resolve looks a chain up by name (case-insensitive), display name or chain id
func (r *Registry) Resolve(input string) (config.Chain, error) {
	input = strings.TrimSpace(input)
	if chain, ok := r.byName[strings.ToLower(input)]; ok {
		return chain, nil
	}
	for _, chain := range defaultChains {
		if strings.EqualFold(chain.DisplayName, input) {
			return chain, nil
		}
	}
	if chainID, err := strconv.ParseUint(input, 10, 64); err == nil {
		return r.Chain(chainID)
	}

	names := lo.Map(defaultChains, func(c config.Chain, _ int) string { return c.Name })
	matches := fuzzy.Find(input, names)
	return config.Chain{}, domain.UnknownChainErr{
		Input:       input,
		Suggestions: lo.Map(lo.Slice(matches, 0, 3), func(m fuzzy.Match, _ int) string { return m.Str }),
	}
}

// All returns every supported chain ordered by chain id
func (r *Registry) All() []config.Chain {
	all := slices.Clone(defaultChains)
	slices.SortFunc(all, func(a, b config.Chain) int {
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		}
		return 0
	})
	return all
}
