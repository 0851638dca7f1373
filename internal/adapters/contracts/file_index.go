package contracts

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/spf13/afero"
	"github.com/trebuchet-org/deployledger/internal/domain/config"
	"github.com/trebuchet-org/deployledger/internal/domain/models"
	"github.com/trebuchet-org/deployledger/internal/usecase"
)

var declarationPattern = regexp.MustCompile(`(?m)^\s*(?:abstract\s+)?(?:contract|library|interface)\s+([A-Za-z_][A-Za-z0-9_]*)`)

// FileIndex resolves contract names to source files using Foundry build
// artifacts, falling back to a scan of the sources directory when no
// artifact names the contract.
type FileIndex struct {
	fs           afero.Fs
	projectRoot  string
	artifactsDir string
	sourcesDir   string
	log          *slog.Logger

	once      sync.Once
	indexErr  error
	compiled  map[string]*models.CompiledContract
	declared  map[string]string
	ambiguous map[string][]string
}

// NewFileIndex creates an index over the configured artifacts and sources directories
func NewFileIndex(cfg *config.RuntimeConfig, fs afero.Fs, log *slog.Logger) *FileIndex {
	return &FileIndex{
		fs:           fs,
		projectRoot:  cfg.ProjectRoot,
		artifactsDir: cfg.Ledger.ArtifactsDir,
		sourcesDir:   cfg.Ledger.SourcesDir,
		log:          log.With("component", "FileIndex"),
	}
}

// ResolveFilePath returns the source path of a contract relative to the project root
func (i *FileIndex) ResolveFilePath(_ context.Context, contractName string) (string, bool) {
	if err := i.ensureIndexed(); err != nil {
		i.log.Warn("contract index unavailable", "error", err)
		return "", false
	}
	if c, ok := i.compiled[contractName]; ok {
		return c.SourcePath, true
	}
	path, ok := i.declared[contractName]
	return path, ok
}

// ResolveArtifact returns the compiled artifact of a contract
func (i *FileIndex) ResolveArtifact(_ context.Context, contractName string) (*models.CompiledContract, error) {
	if err := i.ensureIndexed(); err != nil {
		return nil, err
	}
	c, ok := i.compiled[contractName]
	if !ok {
		return nil, fmt.Errorf("no artifact for contract %s in %s (run forge build)", contractName, i.artifactsDir)
	}
	if paths := i.ambiguous[contractName]; len(paths) > 0 {
		i.log.Warn("contract name compiled from several sources, using the first",
			"contract", contractName, "using", c.SourcePath, "others", paths)
	}

	out := *c
	return &out, nil
}

func (i *FileIndex) ensureIndexed() error {
	i.once.Do(func() {
		i.compiled = make(map[string]*models.CompiledContract)
		i.declared = make(map[string]string)
		i.ambiguous = make(map[string][]string)
		if err := i.indexArtifacts(); err != nil {
			i.indexErr = err
			return
		}
		if err := i.indexSources(); err != nil {
			i.log.Warn("source scan incomplete, using artifacts and the files read so far", "error", err)
		}
	})
	return i.indexErr
}

// foundryArtifact is the subset of a Foundry artifact the index reads
type foundryArtifact struct {
	ABI      json.RawMessage `json:"abi"`
	Metadata struct {
		Settings struct {
			CompilationTarget map[string]string `json:"compilationTarget"`
		} `json:"settings"`
	} `json:"metadata"`
}

func (i *FileIndex) indexArtifacts() error {
	root := filepath.Join(i.projectRoot, i.artifactsDir)
	if ok, _ := afero.DirExists(i.fs, root); !ok {
		i.log.Debug("artifacts directory missing", "dir", root)
		return nil
	}

	var artifacts []string
	err := afero.Walk(i.fs, root, func(path string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			if info.Name() == "build-info" {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasSuffix(path, ".json") {
			artifacts = append(artifacts, path)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to walk %s: %w", root, err)
	}
	sort.Strings(artifacts)

	for _, path := range artifacts {
		i.processArtifact(path)
	}
	i.log.Debug("indexed artifacts", "count", len(i.compiled))
	return nil
}

func (i *FileIndex) processArtifact(path string) {
	data, err := afero.ReadFile(i.fs, path)
	if err != nil {
		i.log.Debug("skipping unreadable artifact", "path", path, "error", err)
		return
	}

	var artifact foundryArtifact
	if err := json.Unmarshal(data, &artifact); err != nil {
		i.log.Debug("skipping malformed artifact", "path", path, "error", err)
		return
	}

	rel, err := filepath.Rel(i.projectRoot, path)
	if err != nil {
		rel = path
	}

	for sourcePath, name := range artifact.Metadata.Settings.CompilationTarget {
		if existing, ok := i.compiled[name]; ok {
			if existing.SourcePath != sourcePath {
				i.ambiguous[name] = append(i.ambiguous[name], sourcePath)
			}
			continue
		}
		i.compiled[name] = &models.CompiledContract{
			Name:         name,
			SourcePath:   filepath.ToSlash(sourcePath),
			ArtifactPath: filepath.ToSlash(rel),
			ABI:          artifact.ABI,
		}
	}
}

func (i *FileIndex) indexSources() error {
	root := filepath.Join(i.projectRoot, i.sourcesDir)
	if ok, _ := afero.DirExists(i.fs, root); !ok {
		return nil
	}

	return afero.Walk(i.fs, root, func(path string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || !strings.HasSuffix(path, ".sol") {
			return nil
		}

		data, err := afero.ReadFile(i.fs, path)
		if err != nil {
			i.log.Debug("skipping unreadable source", "path", path, "error", err)
			return nil
		}
		rel, err := filepath.Rel(i.projectRoot, path)
		if err != nil {
			return err
		}

		for _, match := range declarationPattern.FindAllSubmatch(data, -1) {
			name := string(match[1])
			if _, ok := i.declared[name]; !ok {
				i.declared[name] = filepath.ToSlash(rel)
			}
		}
		return nil
	})
}

// Ensure FileIndex implements usecase.ArtifactIndex
var _ usecase.ArtifactIndex = (*FileIndex)(nil)
