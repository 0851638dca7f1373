package interactive

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/deployledger/internal/domain/config"
)

func TestPrompter_NonInteractive(t *testing.T) {
	p := NewPrompter(&config.RuntimeConfig{NonInteractive: true})

	ok, err := p.Confirm(context.Background(), "Replace core.PoolFactoryProxy")
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = p.SelectChain(context.Background(), []config.Chain{{ID: 42161, Name: "arbitrum"}})
	assert.ErrorContains(t, err, "--chain")
}

func TestFuzzySearcher(t *testing.T) {
	items := []string{"Arbitrum (arbitrum, 42161)", "Arbitrum Nova (arbitrumNova, 42170)", "Localhost (localhost, 31337)"}
	search := fuzzySearcher(items)

	assert.True(t, search("", 2))
	assert.True(t, search("nova", 1))
	assert.False(t, search("nova", 0))
	assert.True(t, search("arbnv", 1))
	assert.True(t, search("31337", 2))
}
