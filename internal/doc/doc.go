// Package doc defines the mutable in-memory document model the formatting
// engine operates on. A document is an ordered sequence of blocks, each a
// paragraph or a table; the codec in internal/docx maps this model to and
// from .docx packages.
package doc

import "fmt"

// BlockType represents the type of content block.
type BlockType string

const (
	BlockParagraph BlockType = "paragraph"
	BlockTable     BlockType = "table"
)

// Block represents a content block in the document.
type Block struct {
	Type      BlockType
	Paragraph *Paragraph
	Table     *Table
}

// Document is a live word-processing document. It is exclusively owned by
// the calling context for the duration of an edit session; concurrent
// mutation is not supported.
type Document struct {
	Blocks []Block
}

// New creates an empty document.
func New() *Document {
	return &Document{Blocks: make([]Block, 0)}
}

// AddParagraph appends a paragraph block to the document.
func (d *Document) AddParagraph(p *Paragraph) {
	d.Blocks = append(d.Blocks, Block{Type: BlockParagraph, Paragraph: p})
}

// AddHeading appends a heading paragraph. Level 0 maps to the "Title" style,
// level N to "Heading N".
func (d *Document) AddHeading(text string, level int) *Paragraph {
	p := NewParagraph(text)
	if level <= 0 {
		p.StyleName = "Title"
	} else {
		p.StyleName = fmt.Sprintf("Heading %d", level)
	}
	d.AddParagraph(p)
	return p
}

// AddTable appends a table block to the document.
func (d *Document) AddTable(t *Table) {
	d.Blocks = append(d.Blocks, Block{Type: BlockTable, Table: t})
}

// Paragraphs returns the document's paragraphs in document order. Table cell
// paragraphs are not included; they are addressed through their table.
func (d *Document) Paragraphs() []*Paragraph {
	paras := make([]*Paragraph, 0, len(d.Blocks))
	for _, b := range d.Blocks {
		if b.Type == BlockParagraph && b.Paragraph != nil {
			paras = append(paras, b.Paragraph)
		}
	}
	return paras
}

// Tables returns the document's tables in document order.
func (d *Document) Tables() []*Table {
	tables := make([]*Table, 0)
	for _, b := range d.Blocks {
		if b.Type == BlockTable && b.Table != nil {
			tables = append(tables, b.Table)
		}
	}
	return tables
}

// Table returns the table at the given document-order index.
func (d *Document) Table(i int) (*Table, bool) {
	tables := d.Tables()
	if i < 0 || i >= len(tables) {
		return nil, false
	}
	return tables[i], true
}

// Ptr returns a pointer to v. Optional model fields (font name, size, the
// bold/italic/underline tri-states) distinguish "absent" from a zero value
// through pointers; Ptr keeps call sites short.
func Ptr[T any](v T) *T {
	return &v
}
