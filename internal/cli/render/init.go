package render

import (
	"fmt"
	"io"

	"github.com/trebuchet-org/deployledger/internal/usecase"
)

// InitRenderer reports a newly created record
type InitRenderer struct {
	out             io.Writer
	wroteLedgerFile bool
}

// NewInitRenderer creates a new init renderer
func NewInitRenderer(out io.Writer, wroteLedgerFile bool) *InitRenderer {
	return &InitRenderer{out: out, wroteLedgerFile: wroteLedgerFile}
}

// Render prints the created files
func (r *InitRenderer) Render(result *usecase.InitResult) error {
	if r.wroteLedgerFile {
		fmt.Fprintln(r.out, FormatSuccess("Created deployledger.toml"))
	}
	fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("Created %s", result.Path)))
	if result.Tables != nil {
		for _, file := range result.Tables.Files {
			faintStyle.Fprintf(r.out, "  %s\n", file)
		}
	}
	return nil
}

var _ Renderer[*usecase.InitResult] = (*InitRenderer)(nil)
