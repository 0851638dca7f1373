package verification

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"sort"
	"strings"

	"github.com/trebuchet-org/deployledger/internal/domain"
	"github.com/trebuchet-org/deployledger/internal/domain/config"
	"github.com/trebuchet-org/deployledger/internal/domain/models"
	"github.com/trebuchet-org/deployledger/internal/usecase"
	"golang.org/x/time/rate"
)

// localChainID has no block explorer to verify against
const localChainID = 31337

// CommandRunner runs forge with args in dir and returns its combined output
type CommandRunner func(ctx context.Context, dir string, args ...string) ([]byte, error)

// ExecRunner runs the forge binary found on PATH
func ExecRunner(ctx context.Context, dir string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, "forge", args...)
	cmd.Dir = dir
	return cmd.CombinedOutput()
}

// ForgeVerifier implements usecase.ContractVerifier with forge verify-contract
type ForgeVerifier struct {
	projectRoot string
	apiKey      string
	dryRun      bool
	artifacts   usecase.ArtifactIndex
	limiter     *rate.Limiter
	run         CommandRunner
	log         *slog.Logger
}

// NewForgeVerifier creates a verifier rate limited by the [verify] settings
func NewForgeVerifier(cfg *config.RuntimeConfig, artifacts usecase.ArtifactIndex, run CommandRunner, log *slog.Logger) *ForgeVerifier {
	return &ForgeVerifier{
		projectRoot: cfg.ProjectRoot,
		apiKey:      cfg.ExplorerAPIKey,
		dryRun:      cfg.DryRun,
		artifacts:   artifacts,
		limiter:     rate.NewLimiter(rate.Limit(cfg.Verify.RequestsPerSecond), cfg.Verify.Burst),
		run:         run,
		log:         log.With("component", "ForgeVerifier"),
	}
}

// Verify submits one contract to the chain's block explorer. A contract the
// explorer already knows counts as verified.
func (v *ForgeVerifier) Verify(ctx context.Context, req usecase.VerificationRequest) error {
	args, err := v.BuildArgs(ctx, req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrVerificationFailed, err)
	}

	if v.dryRun {
		v.log.Info("dry run, skipping verification", "command", "forge "+strings.Join(redact(args), " "))
		return nil
	}

	if err := v.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("verification of %s cancelled: %w", req.Address, err)
	}

	v.log.Debug("running forge", "args", redact(args))
	output, runErr := v.run(ctx, v.projectRoot, args...)
	return interpretOutput(string(output), runErr)
}

// BuildArgs assembles the forge verify-contract arguments for req
func (v *ForgeVerifier) BuildArgs(ctx context.Context, req usecase.VerificationRequest) ([]string, error) {
	if req.Chain.ID == localChainID {
		return nil, fmt.Errorf("chain %s has no block explorer", req.Chain.Name)
	}
	if v.apiKey == "" {
		return nil, fmt.Errorf("explorer API key not configured (set ETHERSCAN_API_KEY)")
	}

	identifier, compiled, err := v.resolveContract(ctx, req)
	if err != nil {
		return nil, err
	}

	args := []string{
		"verify-contract",
		req.Address,
		identifier,
		"--chain-id", fmt.Sprintf("%d", req.Chain.ID),
		"--etherscan-api-key", v.apiKey,
		"--watch",
	}

	if len(req.ConstructorArgs) > 0 {
		if compiled == nil {
			return nil, fmt.Errorf("no artifact to encode constructor arguments of %s", req.ContractName)
		}
		encoded, err := EncodeConstructorArgs(compiled.ABI, req.ConstructorArgs)
		if err != nil {
			return nil, fmt.Errorf("failed to encode constructor arguments of %s: %w", req.ContractName, err)
		}
		if encoded != "" {
			args = append(args, "--constructor-args", encoded)
		}
	}

	libraries, err := v.libraryArgs(ctx, req.Libraries)
	if err != nil {
		return nil, err
	}
	return append(args, libraries...), nil
}

// resolveContract returns the "path:Name" identifier and, when available, the artifact
func (v *ForgeVerifier) resolveContract(ctx context.Context, req usecase.VerificationRequest) (string, *models.CompiledContract, error) {
	compiled, err := v.artifacts.ResolveArtifact(ctx, req.ContractName)
	if req.ContractPath != "" {
		if err != nil {
			v.log.Debug("no artifact for contract path override", "contract", req.ContractName, "error", err)
			compiled = nil
		}
		return req.ContractPath, compiled, nil
	}
	if err != nil {
		return "", nil, err
	}
	return compiled.Identifier(), compiled, nil
}

func (v *ForgeVerifier) libraryArgs(ctx context.Context, libraries map[string]string) ([]string, error) {
	names := make([]string, 0, len(libraries))
	for name := range libraries {
		names = append(names, name)
	}
	sort.Strings(names)

	var args []string
	for _, name := range names {
		path, ok := v.artifacts.ResolveFilePath(ctx, name)
		if !ok {
			return nil, fmt.Errorf("cannot resolve source of library %s", name)
		}
		args = append(args, "--libraries", fmt.Sprintf("%s:%s:%s", path, name, libraries[name]))
	}
	return args, nil
}

var alreadyVerifiedMarkers = []string{"Already Verified", "is already verified", "already verified"}

func interpretOutput(output string, runErr error) error {
	output = strings.TrimSpace(output)
	for _, marker := range alreadyVerifiedMarkers {
		if strings.Contains(output, marker) {
			return nil
		}
	}
	if runErr != nil {
		if output == "" {
			output = runErr.Error()
		}
		return fmt.Errorf("%w: %s", domain.ErrVerificationFailed, output)
	}
	if strings.Contains(output, "Contract successfully verified") || strings.Contains(output, "Pass - Verified") {
		return nil
	}
	return fmt.Errorf("%w: status unclear: %s", domain.ErrVerificationFailed, output)
}

// redact hides the explorer API key in logged commands
func redact(args []string) []string {
	out := make([]string, len(args))
	copy(out, args)
	for i := 0; i+1 < len(out); i++ {
		if out[i] == "--etherscan-api-key" {
			out[i+1] = "***"
		}
	}
	return out
}

// Ensure ForgeVerifier implements usecase.ContractVerifier
var _ usecase.ContractVerifier = (*ForgeVerifier)(nil)
