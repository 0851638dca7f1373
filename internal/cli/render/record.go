package render

import (
	"fmt"
	"io"
	"strconv"

	"github.com/trebuchet-org/deployledger/internal/domain/models"
	"github.com/trebuchet-org/deployledger/internal/usecase"
)

// RecordRenderer renders a deployment record or one of its entries
type RecordRenderer struct {
	out io.Writer
}

// NewRecordRenderer creates a new record renderer
func NewRecordRenderer(out io.Writer) *RecordRenderer {
	return &RecordRenderer{out: out}
}

// Render prints the entry when one was selected, else the whole record
func (r *RecordRenderer) Render(result *usecase.ShowResult) error {
	if result.Entry != nil {
		return r.renderEntry(result)
	}

	headerStyle.Fprintf(r.out, "Deployment record of %s (%d)\n\n", result.Chain.DisplayName, result.Chain.ID)

	book := usecase.FlattenRecord(result.Record)
	if len(book) == 0 {
		fmt.Fprintln(r.out, "Record is empty.")
		return nil
	}

	t := newConsoleTable("PATH", "ADDRESS", "TYPE", "BLOCK", "OWNER")
	for _, item := range book {
		row := []any{pathStyle.Sprint(item.Key), addressStyle.Sprint(item.Address), "-", "-", "-"}
		if target, err := models.ParseTarget(item.Key); err == nil {
			if entry, ok := result.Record.Entry(target); ok {
				row[2] = orDash(string(entry.ContractType))
				row[3] = blockCell(entry)
				row[4] = orDash(entry.Owner)
			}
		}
		t.AppendRow(row)
	}
	_, err := fmt.Fprintln(r.out, t.Render())
	return err
}

func (r *RecordRenderer) renderEntry(result *usecase.ShowResult) error {
	entry := result.Entry
	pathStyle.Fprintf(r.out, "%s", result.Target.Path())
	faintStyle.Fprintf(r.out, " on %s\n", result.Chain.DisplayName)

	fields := [][2]string{
		{"Address", entry.Address},
		{"Type", orDash(string(entry.ContractType))},
		{"Owner", orDash(entry.Owner)},
		{"Commit", orDash(entry.CommitHash)},
		{"Tx hash", orDash(entry.TxHash)},
		{"Block", blockCell(entry)},
		{"Timestamp", timestampCell(entry)},
	}
	for _, f := range fields {
		fmt.Fprintf(r.out, "  %-10s %s\n", f[0]+":", f[1])
	}

	if len(entry.DeploymentArgs) > 0 {
		fmt.Fprintf(r.out, "  %-10s\n", "Args:")
		for i, arg := range entry.DeploymentArgs {
			fmt.Fprintf(r.out, "    [%d] %s\n", i, arg)
		}
	}
	return nil
}

func blockCell(entry *models.ContractEntry) string {
	if entry.Block == 0 {
		return "-"
	}
	return strconv.FormatUint(entry.Block, 10)
}

func timestampCell(entry *models.ContractEntry) string {
	if entry.Timestamp == 0 {
		return "-"
	}
	return strconv.FormatUint(entry.Timestamp, 10)
}

var _ Renderer[*usecase.ShowResult] = (*RecordRenderer)(nil)
