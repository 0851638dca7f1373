package usecase_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/deployledger/internal/adapters/chains"
	"github.com/trebuchet-org/deployledger/internal/adapters/fs"
	"github.com/trebuchet-org/deployledger/internal/adapters/markdown"
	"github.com/trebuchet-org/deployledger/internal/domain/config"
	"github.com/trebuchet-org/deployledger/internal/domain/models"
	"github.com/trebuchet-org/deployledger/internal/usecase"
)

const (
	projectRoot    = "/project"
	arbitrumGoerli = uint64(421613)
	arbitrumNova   = uint64(42170)
	testRevision   = "0123456789abcdef0123456789abcdef01234567"

	addrA = "0xAAAaaAAAaaAaAaaAaAAAAaaaAAAaAAAaaAAaAaAa"
	addrB = "0xbBbBBBbbBbbbBbbbbbbbbbbbbbbbBbbBbBbBbbBB"
	addrC = "0xCcCCccccCCCCcCCCCCCcCcCccCcCCCcCcccccccC"
	addrD = "0xdDdDddDdDdddDDddDDddDDDDdDdDDdDDdDDDDDDd"
)

var goerliRecord = `{
  "core": {
    "PoolFactoryImplementation": {
      "address": "0x1111111111111111111111111111111111111111",
      "contractType": "Implementation",
      "deploymentArgs": [],
      "commitHash": "old",
      "owner": ""
    },
    "PoolFactoryProxy": {
      "address": "0x2222222222222222222222222222222222222222",
      "contractType": "Proxy",
      "deploymentArgs": ["0x1111111111111111111111111111111111111111"],
      "commitHash": "old",
      "txHash": "0xfeed",
      "block": 7,
      "timestamp": 1690000000,
      "owner": "0x3333333333333333333333333333333333333333"
    }
  }
}
`

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeChain is a ChainConnection serving canned answers
type fakeChain struct {
	chainID    uint64
	receipts   map[string]*models.Receipt
	timestamps map[uint64]uint64
	owners     map[string]models.OwnerProbe
	waited     []string
}

func newFakeChain(chainID uint64) *fakeChain {
	return &fakeChain{
		chainID:    chainID,
		receipts:   map[string]*models.Receipt{},
		timestamps: map[uint64]uint64{},
		owners:     map[string]models.OwnerProbe{},
	}
}

func (c *fakeChain) ChainID(context.Context) (uint64, error) { return c.chainID, nil }

func (c *fakeChain) WaitForReceipt(_ context.Context, txHash string) (*models.Receipt, error) {
	c.waited = append(c.waited, txHash)
	receipt, ok := c.receipts[txHash]
	if !ok {
		return nil, fmt.Errorf("transaction %s not found", txHash)
	}
	return receipt, nil
}

func (c *fakeChain) BlockTimestamp(_ context.Context, block uint64) (uint64, error) {
	ts, ok := c.timestamps[block]
	if !ok {
		return 0, fmt.Errorf("block %d not found", block)
	}
	return ts, nil
}

func (c *fakeChain) ProbeOwner(_ context.Context, address string) models.OwnerProbe {
	if probe, ok := c.owners[strings.ToLower(address)]; ok {
		return probe
	}
	return models.OwnerProbe{Status: models.OwnerNotOwnable}
}

func (c *fakeChain) Close() {}

type mockSourceControl struct {
	revisionFunc func(ctx context.Context) (string, error)
}

func (m *mockSourceControl) CurrentRevision(ctx context.Context) (string, error) {
	if m.revisionFunc != nil {
		return m.revisionFunc(ctx)
	}
	return testRevision, nil
}

// mockFileIndex resolves contract names from a fixed map
type mockFileIndex map[string]string

func (m mockFileIndex) ResolveFilePath(_ context.Context, name string) (string, bool) {
	p, ok := m[name]
	return p, ok
}

type mockConfirmer struct {
	answer  bool
	prompts []string
}

func (m *mockConfirmer) Confirm(_ context.Context, prompt string) (bool, error) {
	m.prompts = append(m.prompts, prompt)
	return m.answer, nil
}

type mockVerifier struct {
	verifyFunc func(ctx context.Context, req usecase.VerificationRequest) error
	requests   []usecase.VerificationRequest
}

func (m *mockVerifier) Verify(ctx context.Context, req usecase.VerificationRequest) error {
	m.requests = append(m.requests, req)
	if m.verifyFunc != nil {
		return m.verifyFunc(ctx, req)
	}
	return nil
}

// recordingProgress keeps every Info and Error line
type recordingProgress struct {
	usecase.NopProgress
	infos  []string
	errors []string
}

func (p *recordingProgress) Info(message string)  { p.infos = append(p.infos, message) }
func (p *recordingProgress) Error(message string) { p.errors = append(p.errors, message) }

// ledger wires the use cases over an in-memory project
type ledger struct {
	fs        afero.Fs
	cfg       *config.RuntimeConfig
	chains    *chains.Registry
	store     *fs.MetadataStore
	files     mockFileIndex
	catalog   models.RoleCatalog
	vcs       *mockSourceControl
	confirmer *mockConfirmer
	verifier  *mockVerifier
	progress  *recordingProgress

	tables   *usecase.GenerateTables
	register *usecase.RegisterContract
	verify   *usecase.VerifyContract
	update   *usecase.UpdateRecord
	apply    *usecase.ApplyPlan
}

func newLedger(t *testing.T) *ledger {
	t.Helper()
	log := discardLogger()
	l := &ledger{
		fs: afero.NewMemMapFs(),
		cfg: &config.RuntimeConfig{
			ProjectRoot: projectRoot,
			Ledger:      config.DefaultLedgerFile().Ledger,
		},
		chains: chains.NewRegistry(),
		files: mockFileIndex{
			"PoolFactory":      "contracts/factory/PoolFactory.sol",
			"PoolFactoryProxy": "contracts/factory/PoolFactoryProxy.sol",
		},
		catalog:   models.DefaultRoleCatalog(),
		vcs:       &mockSourceControl{},
		confirmer: &mockConfirmer{answer: true},
		verifier:  &mockVerifier{},
		progress:  &recordingProgress{},
	}
	l.store = fs.NewMetadataStore(l.cfg, l.fs, l.chains, log)
	l.rebuild(log)
	return l
}

// rebuild recreates the use cases after a collaborator was swapped
func (l *ledger) rebuild(log *slog.Logger) {
	writer := fs.NewDocumentWriter(l.cfg, l.fs, log)
	l.tables = usecase.NewGenerateTables(l.cfg, l.chains, l.store, l.files, markdown.NewRenderer(), writer, l.catalog, log)
	l.register = usecase.NewRegisterContract(l.chains, l.store, l.vcs, l.tables, l.confirmer, l.progress, log)
	l.verify = usecase.NewVerifyContract(l.chains, l.store, l.verifier, l.catalog, log)
	l.update = usecase.NewUpdateRecord(l.chains, l.store, l.tables, log)
	l.apply = usecase.NewApplyPlan(l.chains, l.register, l.verify, l.update, l.progress, log)
}

func (l *ledger) deploymentsPath(elem ...string) string {
	return filepath.Join(append([]string{projectRoot, "deployments"}, elem...)...)
}

func (l *ledger) seed(t *testing.T, chainName, content string) {
	t.Helper()
	require.NoError(t, afero.WriteFile(l.fs, l.deploymentsPath(chainName, "metadata.json"), []byte(content), 0644))
}

func (l *ledger) read(t *testing.T, elem ...string) string {
	t.Helper()
	data, err := afero.ReadFile(l.fs, l.deploymentsPath(elem...))
	require.NoError(t, err)
	return string(data)
}

func (l *ledger) exists(t *testing.T, elem ...string) bool {
	t.Helper()
	ok, err := afero.Exists(l.fs, l.deploymentsPath(elem...))
	require.NoError(t, err)
	return ok
}

func lower(s string) string {
	return strings.ToLower(s)
}
