package fs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/trebuchet-org/deployledger/internal/domain"
	"github.com/trebuchet-org/deployledger/internal/domain/config"
	"github.com/trebuchet-org/deployledger/internal/domain/models"
	"github.com/trebuchet-org/deployledger/internal/usecase"
)

// MetadataStore implements usecase.MetadataStore with one JSON file per chain
type MetadataStore struct {
	fs             afero.Fs
	deploymentsDir string
	chains         usecase.ChainRegistry
	log            *slog.Logger
}

// NewMetadataStore creates a store rooted at the configured deployments directory
func NewMetadataStore(cfg *config.RuntimeConfig, fs afero.Fs, chains usecase.ChainRegistry, log *slog.Logger) *MetadataStore {
	return &MetadataStore{
		fs:             fs,
		deploymentsDir: filepath.Join(cfg.ProjectRoot, cfg.Ledger.DeploymentsDir),
		chains:         chains,
		log:            log.With("component", "MetadataStore"),
	}
}

// Load reads the record of a chain
func (s *MetadataStore) Load(_ context.Context, chainID uint64) (*models.DeploymentRecord, error) {
	path, err := s.recordPath(chainID)
	if err != nil {
		return nil, err
	}
	return s.read(path)
}

// Upsert replaces the entry at target and persists the full record unless DryRun is set
func (s *MetadataStore) Upsert(
	_ context.Context,
	chainID uint64,
	target models.Target,
	entry *models.ContractEntry,
	opts usecase.UpsertOptions,
) (*models.DeploymentRecord, error) {
	return s.mutate(chainID, opts, func(record *models.DeploymentRecord) error {
		return record.Put(target, entry.Clone())
	})
}

// SetToken stores the address of a token symbol
func (s *MetadataStore) SetToken(_ context.Context, chainID uint64, symbol, address string, opts usecase.UpsertOptions) (*models.DeploymentRecord, error) {
	return s.mutate(chainID, opts, func(record *models.DeploymentRecord) error {
		if record.Tokens == nil {
			record.Tokens = make(map[string]string)
		}
		record.Tokens[symbol] = address
		return nil
	})
}

// SetProtocolAddress stores one of the protocol-wide singleton addresses
func (s *MetadataStore) SetProtocolAddress(_ context.Context, chainID uint64, key, address string, opts usecase.UpsertOptions) (*models.DeploymentRecord, error) {
	return s.mutate(chainID, opts, func(record *models.DeploymentRecord) error {
		if record.Addresses == nil {
			record.Addresses = &models.ProtocolAddresses{}
		}
		return record.Addresses.Set(key, address)
	})
}

// Init writes an empty record for a chain that has none
func (s *MetadataStore) Init(_ context.Context, chainID uint64) (*models.DeploymentRecord, error) {
	path, err := s.recordPath(chainID)
	if err != nil {
		return nil, err
	}

	exists, err := afero.Exists(s.fs, path)
	if err != nil {
		return nil, &domain.RecordError{Op: "stat", Path: path, Err: err}
	}
	if exists {
		return nil, &domain.RecordError{Op: "init", Path: path, Err: domain.ErrAlreadyExists}
	}

	record := models.NewRecord()
	if err := s.write(path, record); err != nil {
		return nil, err
	}
	s.log.Debug("initialized record", "chain", chainID, "path", path)
	return record, nil
}

// mutate runs one read-modify-write cycle on the record of a chain
func (s *MetadataStore) mutate(chainID uint64, opts usecase.UpsertOptions, apply func(*models.DeploymentRecord) error) (*models.DeploymentRecord, error) {
	path, err := s.recordPath(chainID)
	if err != nil {
		return nil, err
	}

	var record *models.DeploymentRecord
	if opts.DryRun && opts.Base != nil {
		record = opts.Base.Clone()
	} else if record, err = s.read(path); err != nil {
		return nil, err
	}

	if err := apply(record); err != nil {
		return nil, err
	}

	if opts.DryRun {
		s.log.Debug("dry run, record not written", "path", path)
		return record, nil
	}

	if err := s.write(path, record); err != nil {
		return nil, err
	}
	return record, nil
}

func (s *MetadataStore) recordPath(chainID uint64) (string, error) {
	rel, err := s.chains.MetadataPath(chainID)
	if err != nil {
		return "", err
	}
	return filepath.Join(s.deploymentsDir, filepath.FromSlash(rel)), nil
}

func (s *MetadataStore) read(path string) (*models.DeploymentRecord, error) {
	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &domain.RecordError{Op: "load", Path: path, Err: domain.ErrRecordNotFound}
		}
		return nil, &domain.RecordError{Op: "load", Path: path, Err: err}
	}

	var record models.DeploymentRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, &domain.RecordError{Op: "load", Path: path, Err: fmt.Errorf("%w: %v", domain.ErrRecordCorrupt, err)}
	}

	for role := range record.Core {
		if !role.IsValid() {
			s.log.Warn("record contains an unknown core role", "role", role, "path", path)
		}
	}

	return &record, nil
}

// write replaces the record file through a temp file and rename so readers
// never observe a partial document
func (s *MetadataStore) write(path string, record *models.DeploymentRecord) error {
	data, err := EncodeRecord(record)
	if err != nil {
		return &domain.RecordError{Op: "encode", Path: path, Err: err}
	}
	if err := atomicWrite(s.fs, path, data); err != nil {
		return &domain.RecordError{Op: "write", Path: path, Err: fmt.Errorf("%w: %v", domain.ErrWriteFailed, err)}
	}
	s.log.Debug("wrote record", "path", path, "bytes", len(data))
	return nil
}

// EncodeRecord renders a record the way it is stored: two-space indent,
// no HTML escaping and a trailing newline
func EncodeRecord(record *models.DeploymentRecord) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(record); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func atomicWrite(fs afero.Fs, path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := fs.MkdirAll(dir, 0755); err != nil {
		return err
	}

	tmp, err := afero.TempFile(fs, dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = fs.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = fs.Remove(tmpName)
		return err
	}
	if err := fs.Chmod(tmpName, 0644); err != nil {
		_ = fs.Remove(tmpName)
		return err
	}
	if err := fs.Rename(tmpName, path); err != nil {
		_ = fs.Remove(tmpName)
		return err
	}
	return nil
}

// Ensure MetadataStore implements usecase.MetadataStore
var _ usecase.MetadataStore = (*MetadataStore)(nil)
