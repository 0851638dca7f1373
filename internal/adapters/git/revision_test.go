package git

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/deployledger/internal/domain/config"
)

func runGit(t *testing.T, dir string, args ...string) string {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(),
		"GIT_AUTHOR_NAME=ledger", "GIT_AUTHOR_EMAIL=ledger@example.com",
		"GIT_COMMITTER_NAME=ledger", "GIT_COMMITTER_EMAIL=ledger@example.com",
	)
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, string(out))
	return string(out)
}

func TestRevision_CurrentRevision(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}

	dir := t.TempDir()
	runGit(t, dir, "init", "-q")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("ledger\n"), 0644))
	runGit(t, dir, "add", "README.md")
	runGit(t, dir, "commit", "-q", "-m", "initial")

	revision, err := NewRevision(&config.RuntimeConfig{ProjectRoot: dir}).CurrentRevision(context.Background())
	require.NoError(t, err)
	assert.Regexp(t, `^[0-9a-f]{40}$`, revision)
}

func TestRevision_NotARepository(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}

	_, err := NewRevision(&config.RuntimeConfig{ProjectRoot: t.TempDir()}).CurrentRevision(context.Background())
	assert.Error(t, err)
}
