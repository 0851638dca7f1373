package git

import (
	"context"
	"fmt"
	"os/exec"
	"regexp"
	"strings"

	"github.com/trebuchet-org/deployledger/internal/domain/config"
	"github.com/trebuchet-org/deployledger/internal/usecase"
)

var revisionPattern = regexp.MustCompile(`^[0-9a-f]{40}$`)

// Revision implements usecase.SourceControl with the git CLI
type Revision struct {
	projectRoot string
}

// NewRevision creates a Revision reader for the project root
func NewRevision(cfg *config.RuntimeConfig) *Revision {
	return &Revision{projectRoot: cfg.ProjectRoot}
}

// CurrentRevision returns the commit checked out in the project root
func (r *Revision) CurrentRevision(ctx context.Context) (string, error) {
	cmd := exec.CommandContext(ctx, "git", "rev-parse", "HEAD")
	cmd.Dir = r.projectRoot

	output, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return "", fmt.Errorf("git rev-parse HEAD failed: %s", strings.TrimSpace(string(exitErr.Stderr)))
		}
		return "", fmt.Errorf("git rev-parse HEAD failed: %w", err)
	}

	revision := strings.TrimSpace(string(output))
	if !revisionPattern.MatchString(revision) {
		return "", fmt.Errorf("unexpected revision %q", revision)
	}
	return revision, nil
}

// Ensure Revision implements usecase.SourceControl
var _ usecase.SourceControl = (*Revision)(nil)
