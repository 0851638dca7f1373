package render

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/trebuchet-org/deployledger/internal/usecase"
)

// PlanRenderer summarizes an applied plan
type PlanRenderer struct {
	out    io.Writer
	dryRun bool
}

// NewPlanRenderer creates a new plan renderer
func NewPlanRenderer(out io.Writer, dryRun bool) *PlanRenderer {
	return &PlanRenderer{out: out, dryRun: dryRun}
}

// Render prints one line per completed step followed by the warnings
func (r *PlanRenderer) Render(result *usecase.PlanResult) error {
	fmt.Fprintln(r.out)
	for _, step := range result.Steps {
		status := color.GreenString("✓")
		switch {
		case step.VerifyError != nil:
			status = color.YellowString("!")
		case step.Verified:
			status = color.GreenString("✓ verified")
		}
		fmt.Fprintf(r.out, "  %2d. %s %s\n", step.Index, step.Description, status)
	}

	summary := fmt.Sprintf("Applied %d steps on %s", len(result.Steps), result.Chain.DisplayName)
	if r.dryRun {
		summary += " (dry run, nothing written)"
	}
	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, FormatSuccess(summary))
	renderWarnings(r.out, result.Warnings)
	return nil
}

var _ Renderer[*usecase.PlanResult] = (*PlanRenderer)(nil)
