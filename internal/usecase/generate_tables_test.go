package usecase_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/deployledger/internal/domain/models"
	"github.com/trebuchet-org/deployledger/internal/usecase"
)

func coreEntry(address string, contractType models.ContractType) *models.ContractEntry {
	return &models.ContractEntry{Address: address, ContractType: contractType, CommitHash: testRevision}
}

func TestGenerateTables_SectionOrdering(t *testing.T) {
	l := newLedger(t)
	l.catalog = models.RoleCatalog{
		models.RolePoolBase:  {Family: "Zeta", Contract: "Zeta", Summary: "Last"},
		models.RolePoolCore:  {Family: "alpha", Contract: "Alpha", Summary: "First"},
		models.RolePoolTrade: {Family: "Beta", Contract: "Beta", Summary: "Second"},
	}
	l.files = mockFileIndex{
		"Zeta":  "contracts/b/Zeta.sol",
		"Alpha": "contracts/a/Alpha.sol",
		"Beta":  "contracts/a/Beta.sol",
	}
	l.rebuild(discardLogger())

	record := models.NewRecord()
	record.Core[models.RolePoolBase] = coreEntry(addrA, models.ContractTypeStandalone)
	record.Core[models.RolePoolCore] = coreEntry(addrB, models.ContractTypeStandalone)
	record.Core[models.RolePoolTrade] = coreEntry(addrC, models.ContractTypeStandalone)

	docs, result, err := l.tables.Render(context.Background(), arbitrumGoerli, record)
	require.NoError(t, err)
	assert.Empty(t, result.Warnings)

	core := string(docs["arbitrumGoerli/"+usecase.CoreTableFile])
	require.NotEmpty(t, core)
	assert.True(t, strings.HasPrefix(core, "# Core contracts on Arbitrum Goerli\n"))

	order := []string{"## A\n", "| alpha ", "| Beta ", "## B\n", "| Zeta "}
	last := -1
	for _, marker := range order {
		idx := strings.Index(core, marker)
		require.NotEqual(t, -1, idx, "missing %q in\n%s", marker, core)
		assert.Greater(t, idx, last, "%q out of order in\n%s", marker, core)
		last = idx
	}

	assert.Contains(t, core, "[📄](https://github.com/Premian-Labs/premia-contracts-private/blob/"+testRevision+"/contracts/a/Alpha.sol)")
	assert.Contains(t, core, "[🔗](https://goerli.arbiscan.io/address/"+addrB+")")
}

func TestGenerateTables_TopLevelSourceFile(t *testing.T) {
	l := newLedger(t)
	l.catalog = models.RoleCatalog{
		models.RolePoolBase: {Family: "Base", Contract: "PoolBase", Summary: "Base"},
		models.RolePoolCore: {Family: "Core", Contract: "PoolCore", Summary: "Core"},
	}
	l.files = mockFileIndex{
		"PoolBase": "contracts/PoolBase.sol",
		"PoolCore": "contracts/pool/PoolCore.sol",
	}
	l.rebuild(discardLogger())

	record := models.NewRecord()
	record.Core[models.RolePoolBase] = coreEntry(addrA, models.ContractTypeStandalone)
	record.Core[models.RolePoolCore] = coreEntry(addrB, models.ContractTypeStandalone)

	docs, result, err := l.tables.Render(context.Background(), arbitrumGoerli, record)
	require.NoError(t, err)
	assert.Empty(t, result.Warnings)

	core := string(docs["arbitrumGoerli/"+usecase.CoreTableFile])
	assert.Contains(t, core, "## Contracts\n")
	assert.Contains(t, core, "## Pool\n")
	assert.NotContains(t, core, "## PoolBase.sol")
	assert.Less(t, strings.Index(core, "## Contracts\n"), strings.Index(core, "## Pool\n"))
}

func TestGenerateTables_Unresolved(t *testing.T) {
	l := newLedger(t)

	record := models.NewRecord()
	record.Core[models.RolePoolFactoryProxy] = coreEntry(addrA, models.ContractTypeProxy)
	record.Core[models.RoleExchangeHelper] = coreEntry(addrB, models.ContractTypeStandalone)

	docs, result, err := l.tables.Render(context.Background(), arbitrumGoerli, record)
	require.NoError(t, err)

	require.Len(t, result.Warnings, 1)
	assert.Equal(t, "no source file found for ExchangeHelper (core.ExchangeHelper)", result.Warnings[0])

	core := string(docs["arbitrumGoerli/"+usecase.CoreTableFile])
	factory := strings.Index(core, "## Factory\n")
	unresolved := strings.Index(core, "## "+usecase.UnresolvedSection+"\n")
	require.NotEqual(t, -1, factory)
	require.NotEqual(t, -1, unresolved)
	assert.Less(t, factory, unresolved)
	assert.Contains(t, core[unresolved:], "Exchange Helper")
	assert.NotContains(t, core[unresolved:], "[📄]")
}

func TestGenerateTables_Files(t *testing.T) {
	ctx := context.Background()

	t.Run("writes core and open tables", func(t *testing.T) {
		l := newLedger(t)
		record := models.NewRecord()
		record.Vaults.Set("pSV-WETH/USDC", coreEntry(addrA, models.ContractTypeProxy))
		record.Vaults.Set("cSV-ARB/USDC", coreEntry(addrB, models.ContractTypeProxy))

		result, err := l.tables.RenderRecord(ctx, arbitrumGoerli, record)
		require.NoError(t, err)
		assert.Equal(t, []string{
			"arbitrumGoerli/coreTable.md",
			"arbitrumGoerli/vaultsTable.md",
			"arbitrumGoerli/optionRewardTable.md",
			"arbitrumGoerli/optionPSTable.md",
		}, result.Files)

		vaults := l.read(t, "arbitrumGoerli", "vaultsTable.md")
		assert.True(t, strings.HasPrefix(vaults, "# Vaults on Arbitrum Goerli\n"))
		// insertion order, not sorted
		assert.Less(t, strings.Index(vaults, "pSV-WETH/USDC"), strings.Index(vaults, "cSV-ARB/USDC"))
		assert.Contains(t, vaults, "Underwriter vault")
	})

	t.Run("skips open categories on nova", func(t *testing.T) {
		l := newLedger(t)
		result, err := l.tables.RenderRecord(ctx, arbitrumNova, models.NewRecord())
		require.NoError(t, err)
		assert.Equal(t, []string{"arbitrumNova/coreTable.md"}, result.Files)
		assert.True(t, l.exists(t, "arbitrumNova", "coreTable.md"))
		assert.False(t, l.exists(t, "arbitrumNova", "vaultsTable.md"))
	})

	t.Run("re-render is byte identical", func(t *testing.T) {
		l := newLedger(t)
		l.seed(t, "arbitrumGoerli", goerliRecord)

		_, err := l.tables.Run(ctx, arbitrumGoerli)
		require.NoError(t, err)
		first := l.read(t, "arbitrumGoerli", "coreTable.md")

		_, err = l.tables.Run(ctx, arbitrumGoerli)
		require.NoError(t, err)
		assert.Equal(t, first, l.read(t, "arbitrumGoerli", "coreTable.md"))
	})

	t.Run("missing record", func(t *testing.T) {
		l := newLedger(t)
		_, err := l.tables.Run(ctx, arbitrumGoerli)
		require.Error(t, err)
	})
}
