package markdown

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// Document accumulates Markdown blocks
type Document struct {
	b strings.Builder
}

// Heading appends an ATX heading
func (d *Document) Heading(level int, title string) {
	fmt.Fprintf(&d.b, "\n%s %s\n\n", strings.Repeat("#", level), title)
}

// Paragraph appends a paragraph
func (d *Document) Paragraph(text string) {
	fmt.Fprintf(&d.b, "\n%s\n\n", text)
}

// Table appends a table rendered by go-pretty
func (d *Document) Table(header []string, rows [][]string) {
	d.b.WriteString("\n")
	d.b.WriteString(RenderTable(header, rows))
	d.b.WriteString("\n\n")
}

// Bytes returns the formatted document
func (d *Document) Bytes() []byte {
	return []byte(Format(d.b.String()))
}

// RenderTable renders rows as a Markdown table
func RenderTable(header []string, rows [][]string) string {
	t := table.NewWriter()
	t.Style().Format.Header = text.FormatDefault
	t.AppendHeader(toRow(header))
	for _, row := range rows {
		t.AppendRow(toRow(row))
	}
	return t.RenderMarkdown()
}

func toRow(cells []string) table.Row {
	row := make(table.Row, len(cells))
	for i, cell := range cells {
		row[i] = cell
	}
	return row
}
