package chains

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/deployledger/internal/domain"
)

func TestRegistry_Lookups(t *testing.T) {
	r := NewRegistry()

	tests := []struct {
		chainID     uint64
		displayName string
		explorer    string
		metadata    string
	}{
		{42161, "Arbitrum", "https://arbiscan.io", "arbitrum/metadata.json"},
		{421613, "Arbitrum Goerli", "https://goerli.arbiscan.io", "arbitrumGoerli/metadata.json"},
		{42170, "Arbitrum Nova", "https://nova.arbiscan.io", "arbitrumNova/metadata.json"},
		{421614, "Arbitrum Sepolia", "https://sepolia.arbiscan.io", "arbitrumSepolia/metadata.json"},
	}

	for _, tt := range tests {
		t.Run(tt.displayName, func(t *testing.T) {
			name, err := r.DisplayName(tt.chainID)
			require.NoError(t, err)
			assert.Equal(t, tt.displayName, name)

			explorer, err := r.ExplorerURL(tt.chainID)
			require.NoError(t, err)
			assert.Equal(t, tt.explorer, explorer)

			metadata, err := r.MetadataPath(tt.chainID)
			require.NoError(t, err)
			assert.Equal(t, tt.metadata, metadata)
		})
	}
}

func TestRegistry_UnknownChain(t *testing.T) {
	r := NewRegistry()

	_, err := r.DisplayName(1)
	assert.True(t, errors.Is(err, domain.ErrUnknownChain))

	_, err = r.ExplorerURL(1)
	assert.True(t, errors.Is(err, domain.ErrUnknownChain))

	_, err = r.MetadataPath(1)
	assert.True(t, errors.Is(err, domain.ErrUnknownChain))
}

func TestRegistry_Resolve(t *testing.T) {
	r := NewRegistry()

	for _, input := range []string{"arbitrumGoerli", "ARBITRUMGOERLI", "Arbitrum Goerli", "421613"} {
		chain, err := r.Resolve(input)
		require.NoError(t, err, input)
		assert.Equal(t, uint64(421613), chain.ID)
	}

	_, err := r.Resolve("arbitrumSepola")
	require.Error(t, err)
	var chainErr domain.UnknownChainErr
	require.True(t, errors.As(err, &chainErr))
	assert.Contains(t, chainErr.Suggestions, "arbitrumSepolia")
	assert.Contains(t, err.Error(), "did you mean")
}

func TestRegistry_All(t *testing.T) {
	all := NewRegistry().All()
	require.Len(t, all, 5)
	assert.Equal(t, uint64(31337), all[0].ID)
	assert.Equal(t, uint64(421614), all[len(all)-1].ID)
}
