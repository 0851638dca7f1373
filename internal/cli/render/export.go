package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/trebuchet-org/deployledger/internal/usecase"
	"gopkg.in/yaml.v3"
)

// Export formats
const (
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// ExportRenderer writes an address book for other tools to consume
type ExportRenderer struct {
	out    io.Writer
	format string
}

// NewExportRenderer creates a new export renderer
func NewExportRenderer(out io.Writer, format string) (*ExportRenderer, error) {
	switch format {
	case FormatYAML, FormatJSON:
	default:
		return nil, fmt.Errorf("unsupported export format %q (expected %s or %s)", format, FormatYAML, FormatJSON)
	}
	return &ExportRenderer{out: out, format: format}, nil
}

// Render writes the chain header and the addresses in address book order
func (r *ExportRenderer) Render(book *usecase.AddressBook) error {
	if r.format == FormatJSON {
		return r.renderJSON(book)
	}
	return r.renderYAML(book)
}

func (r *ExportRenderer) renderYAML(book *usecase.AddressBook) error {
	addresses := &yaml.Node{Kind: yaml.MappingNode}
	for _, entry := range book.Entries {
		addresses.Content = append(addresses.Content, scalar(entry.Key), scalar(entry.Address))
	}

	doc := &yaml.Node{Kind: yaml.MappingNode, Content: []*yaml.Node{
		scalar("chain"), scalar(book.Chain.Name),
		scalar("chainId"), {Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.FormatUint(book.Chain.ID, 10)},
		scalar("addresses"), addresses,
	}}

	enc := yaml.NewEncoder(r.out)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return err
	}
	return enc.Close()
}

// renderJSON writes the addresses as an object whose keys keep book order
func (r *ExportRenderer) renderJSON(book *usecase.AddressBook) error {
	var buf bytes.Buffer
	buf.WriteString("{\n")
	fmt.Fprintf(&buf, "  %q: %s,\n", "chain", quote(book.Chain.Name))
	fmt.Fprintf(&buf, "  %q: %d,\n", "chainId", book.Chain.ID)
	fmt.Fprintf(&buf, "  %q: {", "addresses")
	for i, entry := range book.Entries {
		if i > 0 {
			buf.WriteString(",")
		}
		fmt.Fprintf(&buf, "\n    %s: %s", quote(entry.Key), quote(entry.Address))
	}
	if len(book.Entries) > 0 {
		buf.WriteString("\n  ")
	}
	buf.WriteString("}\n}\n")

	_, err := r.out.Write(buf.Bytes())
	return err
}

func scalar(value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value}
}

func quote(s string) string {
	data, _ := json.Marshal(s)
	return string(data)
}

var _ Renderer[*usecase.AddressBook] = (*ExportRenderer)(nil)
