// Package docx reads, models and writes the WordprocessingML container format.
//
// The model is deliberately narrow: paragraphs, runs with character-level
// formatting, tables, and style metadata. Everything else in the package is
// carried as opaque raw XML chunks so that saving a document does not destroy
// features the model does not understand.
package docx

import (
	"encoding/xml"
	"strings"
)

// Block is a body-level element: a paragraph, a table, or an opaque chunk
// (sectPr, bookmarks and anything else the model does not interpret).
type Block interface {
	block()
}

// RawChunk is an XML element preserved verbatim across a load/save cycle.
// Inner holds the raw inner XML exactly as it appeared in the source part.
type RawChunk struct {
	Name  xml.Name
	Attrs []xml.Attr
	Inner []byte
}

func (*RawChunk) block()     {}
func (*RawChunk) paraChild() {}

// ParaChild is an ordered child of a paragraph: a run or an opaque chunk.
type ParaChild interface {
	paraChild()
}

// Numbering holds the list-numbering reference of a paragraph (w:numPr).
type Numbering struct {
	NumID int
	Level int
}

// Paragraph is an ordered sequence of runs plus a paragraph style reference.
// Run boundaries are a storage artifact, not a semantic unit: the visible
// paragraph text is the in-order concatenation of the run texts.
type Paragraph struct {
	StyleID   string
	Numbering *Numbering
	PropExtra []*RawChunk // unmodeled pPr children, preserved in order
	Children  []ParaChild
}

func (*Paragraph) block() {}

// Runs returns the paragraph's runs in document order.
func (p *Paragraph) Runs() []*Run {
	var runs []*Run
	for _, c := range p.Children {
		if r, ok := c.(*Run); ok {
			runs = append(runs, r)
		}
	}
	return runs
}

// Text returns the visible text of the paragraph: its runs concatenated in order.
func (p *Paragraph) Text() string {
	var b strings.Builder
	for _, c := range p.Children {
		if r, ok := c.(*Run); ok {
			b.WriteString(r.Text)
		}
	}
	return b.String()
}

// AddRun appends a run with the given text and returns it.
func (p *Paragraph) AddRun(text string) *Run {
	r := &Run{Text: text}
	p.Children = append(p.Children, r)
	return r
}

// ClearRuns removes every run from the paragraph. Non-run children
// (bookmarks, field chars carried as raw chunks) are kept.
func (p *Paragraph) ClearRuns() {
	kept := p.Children[:0]
	for _, c := range p.Children {
		if _, ok := c.(*Run); !ok {
			kept = append(kept, c)
		}
	}
	p.Children = kept
}

// Run is a maximal span of paragraph text sharing one formatting attribute set.
type Run struct {
	Props RunProps
	Text  string
	Extra []*RawChunk // unmodeled run children (breaks, tabs, drawings)
}

func (*Run) paraChild() {}

// RunProps models the character formatting this package understands.
// The three flags are tri-state: nil means "inherit from the style".
type RunProps struct {
	Bold      *bool
	Italic    *bool
	Underline *bool
	FontName  string // empty = inherit
	FontSize  int    // half-points; 0 = inherit
	Color     string // RRGGBB hex; empty = inherit
	Extra     []*RawChunk
}

// Table is a body-level table. Only the row/cell/paragraph containment is
// modeled; table, row and cell properties ride along as raw chunks.
type Table struct {
	Extra []*RawChunk // tblPr, tblGrid, ...
	Rows  []*TableRow
}

func (*Table) block() {}

type TableRow struct {
	Extra []*RawChunk
	Cells []*TableCell
}

// TableCell is a nested block container. Its paragraphs are eligible for
// text operations but are not addressable by body paragraph index.
type TableCell struct {
	Extra  []*RawChunk
	Blocks []Block
}

// Paragraphs returns the cell's paragraphs, including those of nested tables.
func (c *TableCell) Paragraphs() []*Paragraph {
	var out []*Paragraph
	for _, b := range c.Blocks {
		switch v := b.(type) {
		case *Paragraph:
			out = append(out, v)
		case *Table:
			out = append(out, v.AllParagraphs()...)
		}
	}
	return out
}

// Text returns the cell text: its paragraph texts joined by newlines.
func (c *TableCell) Text() string {
	paras := c.Paragraphs()
	parts := make([]string, len(paras))
	for i, p := range paras {
		parts[i] = p.Text()
	}
	return strings.Join(parts, "\n")
}

// AllParagraphs returns every paragraph inside the table, nested tables included.
func (t *Table) AllParagraphs() []*Paragraph {
	var out []*Paragraph
	for _, row := range t.Rows {
		for _, cell := range row.Cells {
			out = append(out, cell.Paragraphs()...)
		}
	}
	return out
}

// Columns returns the widest row's cell count.
func (t *Table) Columns() int {
	max := 0
	for _, row := range t.Rows {
		if len(row.Cells) > max {
			max = len(row.Cells)
		}
	}
	return max
}

// Document is a loaded .docx package: the parsed body plus every other zip
// part held verbatim for rewrite on save.
type Document struct {
	path      string
	parts     map[string][]byte
	partOrder []string
	styles    *StyleTable
	core      *CoreProperties

	Body []Block
}

// Path returns the file the document was loaded from ("" for a new document).
func (d *Document) Path() string { return d.path }

// Styles returns the document's style table.
func (d *Document) Styles() *StyleTable { return d.styles }

// Core returns the document's core properties (possibly empty, never nil).
func (d *Document) Core() *CoreProperties {
	if d.core == nil {
		return &CoreProperties{}
	}
	return d.core
}

// Paragraphs returns the body paragraphs in document order. Table-cell
// paragraphs are excluded: the body paragraph index is the unit of addressing
// for every index-based operation.
func (d *Document) Paragraphs() []*Paragraph {
	var out []*Paragraph
	for _, b := range d.Body {
		if p, ok := b.(*Paragraph); ok {
			out = append(out, p)
		}
	}
	return out
}

// Tables returns the body-level tables in document order.
func (d *Document) Tables() []*Table {
	var out []*Table
	for _, b := range d.Body {
		if t, ok := b.(*Table); ok {
			out = append(out, t)
		}
	}
	return out
}

// ParagraphBlockPositions maps body paragraph index -> position in Body.
func (d *Document) ParagraphBlockPositions() []int {
	var out []int
	for i, b := range d.Body {
		if _, ok := b.(*Paragraph); ok {
			out = append(out, i)
		}
	}
	return out
}

// RemoveBlock deletes the block at the given body position.
func (d *Document) RemoveBlock(pos int) {
	d.Body = append(d.Body[:pos], d.Body[pos+1:]...)
}

// InsertBlock inserts a block at the given body position.
func (d *Document) InsertBlock(pos int, b Block) {
	d.Body = append(d.Body, nil)
	copy(d.Body[pos+1:], d.Body[pos:])
	d.Body[pos] = b
}

// NewParagraph builds a detached paragraph with a single run and the given
// style name (resolved against the style table; empty means default).
func (d *Document) NewParagraph(text, styleName string) *Paragraph {
	p := &Paragraph{}
	if styleName != "" && !strings.EqualFold(styleName, DefaultStyleName) {
		p.StyleID = d.styles.ResolveID(styleName)
	}
	p.AddRun(text)
	return p
}

// AddParagraph appends a paragraph to the end of the body, before the
// trailing section properties if present, and returns it.
func (d *Document) AddParagraph(text, styleName string) *Paragraph {
	p := d.NewParagraph(text, styleName)
	pos := len(d.Body)
	if pos > 0 {
		if raw, ok := d.Body[pos-1].(*RawChunk); ok && raw.Name.Local == "sectPr" {
			pos--
		}
	}
	d.InsertBlock(pos, p)
	return p
}
