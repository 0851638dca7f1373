package fs

import (
	"context"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/deployledger/internal/domain/models"
)

const upgradePlan = `chain: arbitrum
steps:
  - register:
      path: PoolFactoryImplementation
      type: Implementation
      address: "0x00000000000000000000000000000000000000bb"
      txHash: "0x00000000000000000000000000000000000000000000000000000000000000ff"
      args: ["0x00000000000000000000000000000000000000cc", "0x00000000000000000000000000000000000000dd"]
      verify: true
      libraries:
        OptionMathExternal: "0x00000000000000000000000000000000000000ee"
  - token:
      symbol: USDC
      address: "0xaf88d065e77c8cC2239327C5EDb3A432268e5831"
  - address:
      key: treasury
      address: "0x0000000000000000000000000000000000000001"
`

func TestPlanReader_ReadPlan(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "plans/upgrade.yaml", []byte(upgradePlan), 0644))

	plan, err := NewPlanReader(fs).ReadPlan(context.Background(), "plans/upgrade.yaml")
	require.NoError(t, err)

	assert.Equal(t, "arbitrum", plan.Chain)
	require.Len(t, plan.Steps, 3)

	register := plan.Steps[0].Register
	require.NotNil(t, register)
	assert.Equal(t, models.ContractTypeImplementation, register.Type)
	assert.Equal(t, []string{"0x00000000000000000000000000000000000000cc", "0x00000000000000000000000000000000000000dd"}, register.Args)
	assert.True(t, register.Verify)
	assert.Equal(t, "0x00000000000000000000000000000000000000ee", register.Libraries["OptionMathExternal"])

	assert.Equal(t, "token USDC", plan.Steps[1].Describe())
	assert.Equal(t, "address treasury", plan.Steps[2].Describe())
}

func TestPlanReader_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{name: "empty", content: "", want: "is empty"},
		{name: "unknown key", content: "steps:\n  - register: {path: core.PoolBase, address: '0x01', typo: 1}\n", want: "failed to parse"},
		{name: "no steps", content: "chain: arbitrum\n", want: "no steps"},
		{name: "two actions", content: "steps:\n  - token: {symbol: USDC, address: '0x01'}\n    address: {key: dao, address: '0x02'}\n", want: "exactly one"},
		{name: "register without address", content: "steps:\n  - register: {path: core.PoolBase}\n", want: "needs a path and an address"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			require.NoError(t, afero.WriteFile(fs, "plan.yaml", []byte(tt.content), 0644))

			_, err := NewPlanReader(fs).ReadPlan(context.Background(), "plan.yaml")
			assert.ErrorContains(t, err, tt.want)
		})
	}

	_, err := NewPlanReader(afero.NewMemMapFs()).ReadPlan(context.Background(), "missing.yaml")
	assert.ErrorContains(t, err, "failed to read plan")
}
