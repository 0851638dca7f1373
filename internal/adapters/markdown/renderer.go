package markdown

import (
	"github.com/trebuchet-org/deployledger/internal/domain/models"
	"github.com/trebuchet-org/deployledger/internal/usecase"
)

// Renderer implements usecase.TableRenderer with Markdown output
type Renderer struct{}

// NewRenderer creates a Renderer
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render turns doc into a formatted Markdown document
func (Renderer) Render(doc *models.TableDocument) []byte {
	var d Document
	if doc.Title != "" {
		d.Heading(1, doc.Title)
	}
	for _, section := range doc.Sections {
		if section.Title != "" {
			d.Heading(2, section.Title)
		}
		d.Table(section.Columns, section.Rows)
	}
	return d.Bytes()
}

// Ensure Renderer implements usecase.TableRenderer
var _ usecase.TableRenderer = Renderer{}
