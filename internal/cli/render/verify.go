package render

import (
	"fmt"
	"io"
	"sort"

	"github.com/trebuchet-org/deployledger/internal/usecase"
)

// VerifyRenderer reports a submitted verification
type VerifyRenderer struct {
	out    io.Writer
	dryRun bool
}

// NewVerifyRenderer creates a new verify renderer
func NewVerifyRenderer(out io.Writer, dryRun bool) *VerifyRenderer {
	return &VerifyRenderer{out: out, dryRun: dryRun}
}

// Render prints what was verified
func (r *VerifyRenderer) Render(req *usecase.VerifyRequest) error {
	if r.dryRun {
		fmt.Fprintln(r.out, FormatWarning(fmt.Sprintf("Dry run: %s at %s was not submitted", req.ContractName, req.Address)))
		return nil
	}

	fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("Verified %s at %s", req.ContractName, req.Address)))
	if req.ContractPath != "" {
		faintStyle.Fprintf(r.out, "  Source: %s\n", req.ContractPath)
	}
	if len(req.ConstructorArgs) > 0 {
		faintStyle.Fprintf(r.out, "  Constructor args: %d\n", len(req.ConstructorArgs))
	}
	if len(req.Libraries) > 0 {
		names := make([]string, 0, len(req.Libraries))
		for name := range req.Libraries {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			faintStyle.Fprintf(r.out, "  Library %s: %s\n", name, req.Libraries[name])
		}
	}
	return nil
}

var _ Renderer[*usecase.VerifyRequest] = (*VerifyRenderer)(nil)
