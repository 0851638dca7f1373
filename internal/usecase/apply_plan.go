package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/trebuchet-org/deployledger/internal/domain/config"
	"github.com/trebuchet-org/deployledger/internal/domain/models"
)

// ApplyOptions tunes a plan run
type ApplyOptions struct {
	DryRun bool
	// SkipVerify ignores the verify flag of every register step
	SkipVerify bool
}

// StepResult is the outcome of one plan step
type StepResult struct {
	Index       int
	Description string
	Register    *RegisterResult
	Verified    bool
	// VerifyError is set when verification was requested and failed
	VerifyError error
}

// PlanResult lists the steps that completed
type PlanResult struct {
	Chain    config.Chain
	Steps    []StepResult
	Warnings []string
	// Record is the record after the last completed step. On a dry run it
	// holds the combined changes of every step, none of which were written.
	Record *models.DeploymentRecord
}

// ApplyPlan executes a deployment plan step by step. Steps run strictly in
// order; the first failing step stops the run and earlier steps stay committed.
// Verification failures are collected as warnings.
type ApplyPlan struct {
	chains   ChainRegistry
	register *RegisterContract
	verify   *VerifyContract
	update   *UpdateRecord
	progress ProgressSink
	log      *slog.Logger
}

// NewApplyPlan creates a new ApplyPlan use case
func NewApplyPlan(
	chains ChainRegistry,
	register *RegisterContract,
	verify *VerifyContract,
	update *UpdateRecord,
	progress ProgressSink,
	log *slog.Logger,
) *ApplyPlan {
	return &ApplyPlan{
		chains:   chains,
		register: register,
		verify:   verify,
		update:   update,
		progress: progress,
		log:      log.With("component", "ApplyPlan"),
	}
}

// Run applies plan on the chain conn is connected to. The returned result
// holds every step that completed, also when an error is returned.
func (uc *ApplyPlan) Run(ctx context.Context, conn ChainConnection, plan *models.Plan, opts ApplyOptions) (*PlanResult, error) {
	if err := plan.Validate(); err != nil {
		return nil, err
	}

	chainID, err := conn.ChainID(ctx)
	if err != nil {
		return nil, err
	}
	chain, err := uc.chains.Chain(chainID)
	if err != nil {
		return nil, err
	}
	if plan.Chain != "" {
		pinned, err := uc.chains.Resolve(plan.Chain)
		if err != nil {
			return nil, err
		}
		if pinned.ID != chain.ID {
			return nil, fmt.Errorf("plan targets %s but the RPC endpoint serves %s (%d)", pinned.Name, chain.Name, chain.ID)
		}
	}

	result := &PlanResult{Chain: chain}
	total := len(plan.Steps)
	for i, step := range plan.Steps {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		desc := step.Describe()
		uc.progress.Info(fmt.Sprintf("[%d/%d] %s", i+1, total, desc))

		stepResult, record, err := uc.applyStep(ctx, conn, chainID, step, result.Record, opts)
		if err != nil {
			return result, fmt.Errorf("step %d (%s): %w", i+1, desc, err)
		}
		result.Record = record
		stepResult.Index = i + 1
		stepResult.Description = desc

		if stepResult.VerifyError != nil {
			warning := fmt.Sprintf("step %d (%s): verification failed: %v", i+1, desc, stepResult.VerifyError)
			uc.log.Warn("verification failed", "step", i+1, "error", stepResult.VerifyError)
			uc.progress.Error(warning)
			result.Warnings = append(result.Warnings, warning)
		}
		if stepResult.Register != nil && stepResult.Register.Tables != nil {
			result.Warnings = append(result.Warnings, stepResult.Register.Tables.Warnings...)
		}
		result.Steps = append(result.Steps, *stepResult)
	}
	return result, nil
}

// applyStep runs one step on top of previous, the record the prior step
// returned. Only dry runs build on it; live steps read the stored record.
func (uc *ApplyPlan) applyStep(
	ctx context.Context,
	conn ChainConnection,
	chainID uint64,
	step models.PlanStep,
	previous *models.DeploymentRecord,
	opts ApplyOptions,
) (*StepResult, *models.DeploymentRecord, error) {
	upsert := UpsertOptions{DryRun: opts.DryRun}
	if opts.DryRun {
		upsert.Base = previous
	}

	switch {
	case step.Token != nil:
		record, err := uc.update.SetToken(ctx, chainID, step.Token.Symbol, step.Token.Address, upsert)
		return &StepResult{}, record, err

	case step.Address != nil:
		record, err := uc.update.SetProtocolAddress(ctx, chainID, step.Address.Key, step.Address.Address, upsert)
		return &StepResult{}, record, err

	case step.Register != nil:
		result, err := uc.applyRegister(ctx, conn, chainID, step.Register, upsert.Base, opts)
		if err != nil {
			return nil, nil, err
		}
		return result, result.Register.Record, nil
	}
	return nil, nil, fmt.Errorf("empty step")
}

func (uc *ApplyPlan) applyRegister(
	ctx context.Context,
	conn ChainConnection,
	chainID uint64,
	step *models.RegisterStep,
	base *models.DeploymentRecord,
	opts ApplyOptions,
) (*StepResult, error) {
	registered, err := uc.register.Run(ctx, conn, RegisterRequest{
		Path:           step.Path,
		ContractType:   step.Type,
		Contract:       ContractRef{Address: step.Address, TxHash: step.TxHash},
		DeploymentArgs: step.Args,
		Options:        RegisterOptions{DryRun: opts.DryRun, Log: true, Base: base},
	})
	if err != nil {
		return nil, err
	}

	result := &StepResult{Register: registered}
	if !step.Verify || opts.SkipVerify {
		return result, nil
	}

	contractName := step.Contract
	if contractName == "" {
		contractName = uc.verify.ContractName(registered.Target, registered.Entry.ContractType)
	}
	result.VerifyError = uc.verify.Run(ctx, VerifyRequest{
		ChainID:         chainID,
		Address:         registered.Entry.Address,
		ContractName:    contractName,
		ConstructorArgs: registered.Entry.DeploymentArgs,
		Libraries:       step.Libraries,
		ContractPath:    step.ContractPath,
	})
	result.Verified = result.VerifyError == nil
	return result, nil
}
