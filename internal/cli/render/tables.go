package render

import (
	"fmt"
	"io"

	"github.com/trebuchet-org/deployledger/internal/usecase"
)

// TablesRenderer reports the generated table files
type TablesRenderer struct {
	out io.Writer
}

// NewTablesRenderer creates a new tables renderer
func NewTablesRenderer(out io.Writer) *TablesRenderer {
	return &TablesRenderer{out: out}
}

// Render lists the written files and any warnings
func (r *TablesRenderer) Render(result *usecase.TablesResult) error {
	fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("Generated %d tables for %s", len(result.Files), result.Chain.DisplayName)))
	for _, file := range result.Files {
		faintStyle.Fprintf(r.out, "  %s\n", file)
	}
	renderWarnings(r.out, result.Warnings)
	return nil
}

func renderWarnings(out io.Writer, warnings []string) {
	if len(warnings) == 0 {
		return
	}
	fmt.Fprintln(out)
	for _, warning := range warnings {
		fmt.Fprintln(out, FormatWarning(warning))
	}
}

var _ Renderer[*usecase.TablesResult] = (*TablesRenderer)(nil)
