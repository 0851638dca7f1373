package fs

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/afero"
	"github.com/trebuchet-org/deployledger/internal/domain/models"
	"github.com/trebuchet-org/deployledger/internal/usecase"
	"gopkg.in/yaml.v3"
)

// PlanReader implements usecase.PlanReader for YAML plan files
type PlanReader struct {
	fs afero.Fs
}

// NewPlanReader creates a PlanReader
func NewPlanReader(fs afero.Fs) *PlanReader {
	return &PlanReader{fs: fs}
}

// ReadPlan decodes and validates the plan at path. Unknown keys are rejected.
func (r *PlanReader) ReadPlan(_ context.Context, path string) (*models.Plan, error) {
	data, err := afero.ReadFile(r.fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read plan: %w", err)
	}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	var plan models.Plan
	if err := decoder.Decode(&plan); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("plan %s is empty", path)
		}
		return nil, fmt.Errorf("failed to parse plan %s: %w", path, err)
	}
	if err := plan.Validate(); err != nil {
		return nil, fmt.Errorf("invalid plan %s: %w", path, err)
	}
	return &plan, nil
}

// Ensure PlanReader implements usecase.PlanReader
var _ usecase.PlanReader = (*PlanReader)(nil)
