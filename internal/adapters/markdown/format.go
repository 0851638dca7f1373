package markdown

import (
	"regexp"
	"strings"

	"github.com/mattn/go-runewidth"
)

var separatorCell = regexp.MustCompile(`^:?-+:?$`)

// Format normalizes a Markdown document: table columns are padded to a common
// display width, trailing whitespace is dropped, runs of blank lines collapse
// to one, tables and headings are set off by blank lines and the document ends
// with exactly one newline. Format is idempotent.
func Format(doc string) string {
	lines := strings.Split(strings.ReplaceAll(doc, "\r\n", "\n"), "\n")

	var blocks [][]string
	var table []string
	flushTable := func() {
		if len(table) > 0 {
			blocks = append(blocks, formatTable(table))
			table = nil
		}
	}

	for _, line := range lines {
		line = strings.TrimRight(line, " \t")
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(trimmed, "|"):
			table = append(table, trimmed)
		case trimmed == "":
			flushTable()
			blocks = append(blocks, nil)
		case strings.HasPrefix(trimmed, "#"):
			flushTable()
			blocks = append(blocks, nil, []string{trimmed}, nil)
		default:
			flushTable()
			if n := len(blocks); n > 0 && blocks[n-1] != nil && !isStandalone(blocks[n-1]) {
				blocks[n-1] = append(blocks[n-1], line)
			} else {
				blocks = append(blocks, []string{line})
			}
		}
	}
	flushTable()

	var out []string
	for _, block := range blocks {
		if block == nil {
			continue
		}
		if len(out) > 0 {
			out = append(out, "")
		}
		out = append(out, block...)
	}
	if len(out) == 0 {
		return ""
	}
	return strings.Join(out, "\n") + "\n"
}

// isStandalone reports whether a block may not absorb the following paragraph line
func isStandalone(block []string) bool {
	first := strings.TrimSpace(block[0])
	return strings.HasPrefix(first, "|") || strings.HasPrefix(first, "#")
}

func formatTable(lines []string) []string {
	rows := make([][]string, len(lines))
	columns := 0
	for i, line := range lines {
		rows[i] = splitRow(line)
		if len(rows[i]) > columns {
			columns = len(rows[i])
		}
	}

	widths := make([]int, columns)
	for i := range widths {
		widths[i] = 3
	}
	for _, row := range rows {
		if isSeparator(row) {
			continue
		}
		for c, cell := range row {
			if w := runewidth.StringWidth(cell); w > widths[c] {
				widths[c] = w
			}
		}
	}

	out := make([]string, len(rows))
	for i, row := range rows {
		var b strings.Builder
		b.WriteString("|")
		separator := isSeparator(row)
		for c := 0; c < columns; c++ {
			cell := ""
			if c < len(row) {
				cell = row[c]
			}
			b.WriteString(" ")
			if separator {
				b.WriteString(padSeparator(cell, widths[c]))
			} else {
				b.WriteString(cell)
				b.WriteString(strings.Repeat(" ", widths[c]-runewidth.StringWidth(cell)))
			}
			b.WriteString(" |")
		}
		out[i] = b.String()
	}
	return out
}

// splitRow splits a table row on unescaped pipes and trims each cell
func splitRow(line string) []string {
	line = strings.TrimPrefix(line, "|")
	if strings.HasSuffix(line, "|") && !strings.HasSuffix(line, `\|`) {
		line = strings.TrimSuffix(line, "|")
	}

	var cells []string
	var cell strings.Builder
	escaped := false
	for _, r := range line {
		switch {
		case escaped:
			cell.WriteRune(r)
			escaped = false
		case r == '\\':
			cell.WriteRune(r)
			escaped = true
		case r == '|':
			cells = append(cells, strings.TrimSpace(cell.String()))
			cell.Reset()
		default:
			cell.WriteRune(r)
		}
	}
	return append(cells, strings.TrimSpace(cell.String()))
}

func isSeparator(row []string) bool {
	for _, cell := range row {
		if !separatorCell.MatchString(cell) {
			return false
		}
	}
	return len(row) > 0
}

func padSeparator(cell string, width int) string {
	left := strings.HasPrefix(cell, ":")
	right := strings.HasSuffix(cell, ":") && len(cell) > 1
	dashes := width
	if left {
		dashes--
	}
	if right {
		dashes--
	}

	var b strings.Builder
	if left {
		b.WriteString(":")
	}
	b.WriteString(strings.Repeat("-", dashes))
	if right {
		b.WriteString(":")
	}
	return b.String()
}
