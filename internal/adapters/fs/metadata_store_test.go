package fs

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/deployledger/internal/adapters/chains"
	"github.com/trebuchet-org/deployledger/internal/domain"
	"github.com/trebuchet-org/deployledger/internal/domain/config"
	"github.com/trebuchet-org/deployledger/internal/domain/models"
	"github.com/trebuchet-org/deployledger/internal/usecase"
)

const (
	arbitrumGoerli = uint64(421613)
	projectRoot    = "/project"
)

var goerliRecordPath = filepath.Join(projectRoot, "deployments", "arbitrumGoerli", "metadata.json")

func newTestStore(t *testing.T) (*MetadataStore, afero.Fs) {
	t.Helper()
	memFs := afero.NewMemMapFs()
	cfg := &config.RuntimeConfig{
		ProjectRoot: projectRoot,
		Ledger:      config.LedgerConfig{DeploymentsDir: "deployments"},
	}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewMetadataStore(cfg, memFs, chains.NewRegistry(), log), memFs
}

func seedRecord(t *testing.T, memFs afero.Fs, content string) {
	t.Helper()
	require.NoError(t, afero.WriteFile(memFs, goerliRecordPath, []byte(content), 0644))
}

func TestMetadataStore_Load(t *testing.T) {
	ctx := context.Background()

	t.Run("record not found", func(t *testing.T) {
		store, _ := newTestStore(t)

		_, err := store.Load(ctx, arbitrumGoerli)
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrRecordNotFound))

		var recordErr *domain.RecordError
		require.True(t, errors.As(err, &recordErr))
		assert.Equal(t, goerliRecordPath, recordErr.Path)
	})

	t.Run("record corrupt", func(t *testing.T) {
		store, memFs := newTestStore(t)
		seedRecord(t, memFs, `{"core": {"PoolFactoryProxy": `)

		_, err := store.Load(ctx, arbitrumGoerli)
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrRecordCorrupt))
		assert.Contains(t, err.Error(), goerliRecordPath)
	})

	t.Run("unknown chain", func(t *testing.T) {
		store, _ := newTestStore(t)

		_, err := store.Load(ctx, 1)
		assert.True(t, errors.Is(err, domain.ErrUnknownChain))
	})
}

func TestMetadataStore_UpsertFullReplacement(t *testing.T) {
	ctx := context.Background()
	store, memFs := newTestStore(t)
	seedRecord(t, memFs, `{
  "core": {
    "VxPremiaProxy": {
      "address": "0x1111111111111111111111111111111111111111",
      "contractType": "Proxy",
      "deploymentArgs": ["0xaaaa"],
      "commitHash": "1234567890123456789012345678901234567890",
      "txHash": "0xfeed",
      "block": 100,
      "timestamp": 1690000000,
      "owner": "0x2222222222222222222222222222222222222222"
    }
  }
}`)

	target := models.CoreTarget{Role: models.RoleVxPremiaProxy}
	_, err := store.Upsert(ctx, arbitrumGoerli, target, &models.ContractEntry{
		Address:      "0x3333333333333333333333333333333333333333",
		ContractType: models.ContractTypeProxy,
	}, usecase.UpsertOptions{})
	require.NoError(t, err)

	loaded, err := store.Load(ctx, arbitrumGoerli)
	require.NoError(t, err)

	entry, ok := loaded.Entry(target)
	require.True(t, ok)
	want := &models.ContractEntry{
		Address:        "0x3333333333333333333333333333333333333333",
		ContractType:   models.ContractTypeProxy,
		DeploymentArgs: []string{},
	}
	if diff := cmp.Diff(want, entry); diff != "" {
		t.Errorf("stored entry mismatch (-want +got):\n%s", diff)
	}
}

func TestMetadataStore_UpsertRoundTrip(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name   string
		path   string
		entry  *models.ContractEntry
		jsonAt string
	}{
		{
			name: "bare core role",
			path: "PoolFactoryImplementation",
			entry: &models.ContractEntry{
				Address:        "0xBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBB",
				ContractType:   models.ContractTypeImplementation,
				DeploymentArgs: []string{"0xCCC", "0xDDD"},
				CommitHash:     "abcdefabcdefabcdefabcdefabcdefabcdefabcd",
			},
			jsonAt: `"core": {`,
		},
		{
			name: "named category",
			path: "optionPS.PREMIA/USDC-C",
			entry: &models.ContractEntry{
				Address:        "0x4444444444444444444444444444444444444444",
				ContractType:   models.ContractTypeProxy,
				DeploymentArgs: []string{"PREMIA", "USDC", "true"},
				CommitHash:     "abcdefabcdefabcdefabcdefabcdefabcdefabcd",
				TxHash:         "0xbeef",
				Block:          42,
				Timestamp:      1700000000,
				Owner:          "0x5555555555555555555555555555555555555555",
			},
			jsonAt: `"PREMIA/USDC-C": {`,
		},
		{
			name: "fee converter slot",
			path: "feeConverter.main",
			entry: &models.ContractEntry{
				Address:        "0x6666666666666666666666666666666666666666",
				ContractType:   models.ContractTypeProxy,
				DeploymentArgs: []string{},
			},
			jsonAt: `"main": {`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, memFs := newTestStore(t)
			_, err := store.Init(ctx, arbitrumGoerli)
			require.NoError(t, err)

			target, err := models.ParseTarget(tt.path)
			require.NoError(t, err)

			returned, err := store.Upsert(ctx, arbitrumGoerli, target, tt.entry, usecase.UpsertOptions{})
			require.NoError(t, err)

			loaded, err := store.Load(ctx, arbitrumGoerli)
			require.NoError(t, err)

			got, ok := loaded.Entry(target)
			require.True(t, ok)
			if diff := cmp.Diff(tt.entry, got); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}

			fromReturn, ok := returned.Entry(target)
			require.True(t, ok)
			assert.Equal(t, tt.entry, fromReturn)

			raw, err := afero.ReadFile(memFs, goerliRecordPath)
			require.NoError(t, err)
			assert.Contains(t, string(raw), tt.jsonAt)
			assert.True(t, strings.HasSuffix(string(raw), "}\n"))
		})
	}
}

func TestMetadataStore_UpsertKeepsOtherEntries(t *testing.T) {
	ctx := context.Background()
	store, memFs := newTestStore(t)
	seedRecord(t, memFs, `{
  "core": {
    "PoolFactoryProxy": {"address": "0xAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA", "contractType": "Proxy", "deploymentArgs": [], "commitHash": "c", "owner": ""}
  },
  "vaults": {
    "pSV-WETH/USDC-C": {"address": "0x1", "contractType": "Proxy", "deploymentArgs": [], "commitHash": "c", "owner": ""},
    "pSV-ARB/USDC-P": {"address": "0x2", "contractType": "Proxy", "deploymentArgs": [], "commitHash": "c", "owner": ""}
  }
}`)

	_, err := store.Upsert(ctx, arbitrumGoerli,
		models.NamedTarget{Category: models.CategoryVaults, Name: "pSV-ARB/USDC-C"},
		&models.ContractEntry{Address: "0x3", ContractType: models.ContractTypeProxy},
		usecase.UpsertOptions{})
	require.NoError(t, err)

	loaded, err := store.Load(ctx, arbitrumGoerli)
	require.NoError(t, err)

	assert.Equal(t, []string{"pSV-WETH/USDC-C", "pSV-ARB/USDC-P", "pSV-ARB/USDC-C"}, loaded.Vaults.Names())
	assert.Equal(t, "0xAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA", loaded.Core[models.RolePoolFactoryProxy].Address)
}

func TestMetadataStore_DryRun(t *testing.T) {
	ctx := context.Background()
	store, memFs := newTestStore(t)
	seedRecord(t, memFs, `{"core": {}}`)

	record, err := store.Upsert(ctx, arbitrumGoerli,
		models.CoreTarget{Role: models.RoleERC20Router},
		&models.ContractEntry{Address: "0x7"},
		usecase.UpsertOptions{DryRun: true})
	require.NoError(t, err)
	assert.Equal(t, "0x7", record.Core[models.RoleERC20Router].Address)

	raw, err := afero.ReadFile(memFs, goerliRecordPath)
	require.NoError(t, err)
	assert.Equal(t, `{"core": {}}`, string(raw))
}

func TestMetadataStore_UpsertMissingRecord(t *testing.T) {
	store, memFs := newTestStore(t)

	_, err := store.Upsert(context.Background(), arbitrumGoerli,
		models.CoreTarget{Role: models.RoleERC20Router},
		&models.ContractEntry{Address: "0x7"},
		usecase.UpsertOptions{})
	assert.True(t, errors.Is(err, domain.ErrRecordNotFound))

	exists, err := afero.Exists(memFs, goerliRecordPath)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestMetadataStore_WriteFailed(t *testing.T) {
	ctx := context.Background()
	store, memFs := newTestStore(t)
	seedRecord(t, memFs, `{}`)
	store.fs = afero.NewReadOnlyFs(memFs)

	_, err := store.Upsert(ctx, arbitrumGoerli,
		models.CoreTarget{Role: models.RoleERC20Router},
		&models.ContractEntry{Address: "0x7"},
		usecase.UpsertOptions{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrWriteFailed))
}

func TestMetadataStore_DryRunOnBase(t *testing.T) {
	ctx := context.Background()
	store, memFs := newTestStore(t)
	seedRecord(t, memFs, `{"core": {}}`)

	base := models.NewRecord()
	base.Tokens["WETH"] = "0x1"

	record, err := store.Upsert(ctx, arbitrumGoerli,
		models.CoreTarget{Role: models.RoleERC20Router},
		&models.ContractEntry{Address: "0x7"},
		usecase.UpsertOptions{DryRun: true, Base: base})
	require.NoError(t, err)
	assert.Equal(t, "0x1", record.Tokens["WETH"])
	assert.Equal(t, "0x7", record.Core[models.RoleERC20Router].Address)
	assert.Empty(t, base.Core, "base must not be modified")

	raw, err := afero.ReadFile(memFs, goerliRecordPath)
	require.NoError(t, err)
	assert.Equal(t, `{"core": {}}`, string(raw))

	// a live write ignores Base
	record, err = store.SetToken(ctx, arbitrumGoerli, "USDC", "0x8", usecase.UpsertOptions{Base: base})
	require.NoError(t, err)
	assert.NotContains(t, record.Tokens, "WETH")
	assert.Equal(t, "0x8", record.Tokens["USDC"])
}

func TestMetadataStore_Init(t *testing.T) {
	ctx := context.Background()
	store, memFs := newTestStore(t)

	_, err := store.Init(ctx, arbitrumGoerli)
	require.NoError(t, err)

	raw, err := afero.ReadFile(memFs, goerliRecordPath)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"addresses": {`)
	assert.Contains(t, string(raw), `"optionPS": {}`)
	assert.Contains(t, string(raw), `"tokens": {}`)
	assert.Contains(t, string(raw), `"core": {}`)
	assert.Contains(t, string(raw), `"feeConverter": {}`)

	_, err = store.Init(ctx, arbitrumGoerli)
	assert.True(t, errors.Is(err, domain.ErrAlreadyExists))
}

func TestMetadataStore_TokensAndAddresses(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)
	_, err := store.Init(ctx, arbitrumGoerli)
	require.NoError(t, err)

	_, err = store.SetToken(ctx, arbitrumGoerli, "USDC", "0x8", usecase.UpsertOptions{})
	require.NoError(t, err)
	_, err = store.SetProtocolAddress(ctx, arbitrumGoerli, "lzEndpoint", "0x9", usecase.UpsertOptions{})
	require.NoError(t, err)

	_, err = store.SetProtocolAddress(ctx, arbitrumGoerli, "vault", "0x9", usecase.UpsertOptions{})
	assert.Error(t, err)

	loaded, err := store.Load(ctx, arbitrumGoerli)
	require.NoError(t, err)
	assert.Equal(t, "0x8", loaded.Tokens["USDC"])
	assert.Equal(t, "0x9", loaded.Addresses.LzEndpoint)
}

func TestDocumentWriter(t *testing.T) {
	memFs := afero.NewMemMapFs()
	cfg := &config.RuntimeConfig{ProjectRoot: projectRoot, Ledger: config.LedgerConfig{DeploymentsDir: "deployments"}}
	writer := NewDocumentWriter(cfg, memFs, slog.New(slog.NewTextHandler(io.Discard, nil)))

	require.NoError(t, writer.WriteDocument(context.Background(), "arbitrum/coreTable.md", []byte("first\n")))
	require.NoError(t, writer.WriteDocument(context.Background(), "arbitrum/coreTable.md", []byte("second\n")))

	raw, err := afero.ReadFile(memFs, filepath.Join(projectRoot, "deployments", "arbitrum", "coreTable.md"))
	require.NoError(t, err)
	assert.Equal(t, "second\n", string(raw))

	entries, err := afero.ReadDir(memFs, filepath.Join(projectRoot, "deployments", "arbitrum"))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
