package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/trebuchet-org/deployledger/internal/domain/models"
	"github.com/trebuchet-org/deployledger/internal/usecase"
)

// RegisterRenderer renders the outcome of a registration
type RegisterRenderer struct {
	out io.Writer
}

// NewRegisterRenderer creates a new register renderer
func NewRegisterRenderer(out io.Writer) *RegisterRenderer {
	return &RegisterRenderer{out: out}
}

// Render prints the stored entry, what it replaced and the regenerated tables
func (r *RegisterRenderer) Render(result *usecase.RegisterResult) error {
	if result.DryRun {
		msg := FormatWarning(fmt.Sprintf("Dry run: %s on %s was not written", result.Target.Path(), result.Chain.DisplayName))
		fmt.Fprintln(r.out, msg)
		data, err := json.MarshalIndent(result.Entry, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(r.out, string(data))
		return nil
	}

	fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("Registered %s on %s", result.Target.Path(), result.Chain.DisplayName)))
	fmt.Fprintf(r.out, "  Address: %s\n", addressStyle.Sprint(result.Entry.Address))
	if result.Previous != nil && !strings.EqualFold(result.Previous.Address, result.Entry.Address) {
		faintStyle.Fprintf(r.out, "  Replaced: %s\n", result.Previous.Address)
	}
	fmt.Fprintf(r.out, "  Owner: %s\n", ownerCell(result.Owner))
	if result.Entry.Block != 0 {
		fmt.Fprintf(r.out, "  Block: %d\n", result.Entry.Block)
	}

	if result.Tables != nil {
		faintStyle.Fprintf(r.out, "  Regenerated %s\n", strings.Join(result.Tables.Files, ", "))
		renderWarnings(r.out, result.Tables.Warnings)
	}
	return nil
}

func ownerCell(probe models.OwnerProbe) string {
	switch probe.Status {
	case models.OwnerFound:
		return probe.Owner
	case models.OwnerNotOwnable:
		return faintStyle.Sprint("not ownable")
	default:
		return faintStyle.Sprint("unknown (owner() call failed)")
	}
}

var _ Renderer[*usecase.RegisterResult] = (*RegisterRenderer)(nil)
