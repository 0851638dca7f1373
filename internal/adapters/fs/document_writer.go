package fs

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/trebuchet-org/deployledger/internal/domain/config"
	"github.com/trebuchet-org/deployledger/internal/usecase"
)

// DocumentWriter writes generated documents below the deployments directory
type DocumentWriter struct {
	fs             afero.Fs
	deploymentsDir string
	log            *slog.Logger
}

// NewDocumentWriter creates a DocumentWriter
func NewDocumentWriter(cfg *config.RuntimeConfig, fs afero.Fs, log *slog.Logger) *DocumentWriter {
	return &DocumentWriter{
		fs:             fs,
		deploymentsDir: filepath.Join(cfg.ProjectRoot, cfg.Ledger.DeploymentsDir),
		log:            log.With("component", "DocumentWriter"),
	}
}

// WriteDocument replaces the document at relPath
func (w *DocumentWriter) WriteDocument(_ context.Context, relPath string, content []byte) error {
	path := filepath.Join(w.deploymentsDir, filepath.FromSlash(relPath))
	if err := atomicWrite(w.fs, path, content); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	w.log.Debug("wrote document", "path", path)
	return nil
}

// Ensure DocumentWriter implements usecase.DocumentWriter
var _ usecase.DocumentWriter = (*DocumentWriter)(nil)
