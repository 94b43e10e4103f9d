package docx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"os"
	"strconv"
)

const xmlHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\r\n"

// documentOpen declares the standard WordprocessingML namespace set. Raw
// chunks carried over from the source document keep their original prefixes,
// which real-world packages draw from this same set.
const documentOpen = `<w:document` +
	` xmlns:wpc="http://schemas.microsoft.com/office/word/2010/wordprocessingCanvas"` +
	` xmlns:mc="http://schemas.openxmlformats.org/markup-compatibility/2006"` +
	` xmlns:o="urn:schemas-microsoft-com:office:office"` +
	` xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships"` +
	` xmlns:m="http://schemas.openxmlformats.org/officeDocument/2006/math"` +
	` xmlns:v="urn:schemas-microsoft-com:vml"` +
	` xmlns:wp14="http://schemas.microsoft.com/office/word/2010/wordprocessingDrawing"` +
	` xmlns:wp="http://schemas.openxmlformats.org/drawingml/2006/wordprocessingDrawing"` +
	` xmlns:w10="urn:schemas-microsoft-com:office:word"` +
	` xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"` +
	` xmlns:w14="http://schemas.microsoft.com/office/word/2010/wordml"` +
	` xmlns:w15="http://schemas.microsoft.com/office/word/2012/wordml"` +
	` xmlns:wpg="http://schemas.microsoft.com/office/word/2010/wordprocessingGroup"` +
	` xmlns:wpi="http://schemas.microsoft.com/office/word/2010/wordprocessingInk"` +
	` xmlns:wne="http://schemas.microsoft.com/office/word/2006/wordml"` +
	` xmlns:wps="http://schemas.microsoft.com/office/word/2010/wordprocessingShape"` +
	` mc:Ignorable="w14 w15 wp14">`

var nsPrefix = map[string]string{
	"http://schemas.openxmlformats.org/wordprocessingml/2006/main":           "w",
	"http://schemas.openxmlformats.org/officeDocument/2006/relationships":    "r",
	"http://schemas.openxmlformats.org/officeDocument/2006/math":             "m",
	"http://schemas.openxmlformats.org/markup-compatibility/2006":            "mc",
	"http://schemas.openxmlformats.org/drawingml/2006/wordprocessingDrawing": "wp",
	"http://schemas.openxmlformats.org/drawingml/2006/main":                  "a",
	"http://schemas.openxmlformats.org/drawingml/2006/picture":               "pic",
	"urn:schemas-microsoft-com:vml":                                          "v",
	"urn:schemas-microsoft-com:office:office":                                "o",
	"urn:schemas-microsoft-com:office:word":                                  "w10",
	"http://schemas.microsoft.com/office/word/2010/wordml":                   "w14",
	"http://schemas.microsoft.com/office/word/2012/wordml":                   "w15",
	"http://schemas.microsoft.com/office/word/2006/wordml":                   "wne",
	"http://schemas.microsoft.com/office/word/2010/wordprocessingShape":      "wps",
	"http://schemas.microsoft.com/office/word/2010/wordprocessingGroup":      "wpg",
	"http://schemas.microsoft.com/office/word/2010/wordprocessingInk":        "wpi",
	"http://schemas.microsoft.com/office/word/2010/wordprocessingCanvas":     "wpc",
	"http://schemas.microsoft.com/office/word/2010/wordprocessingDrawing":    "wp14",
}

// Save writes the document back to the file it was loaded from.
func (d *Document) Save() error {
	if d.path == "" {
		return fmt.Errorf("document has no path; use SaveAs")
	}
	return d.SaveAs(d.path)
}

// SaveAs serializes the body into word/document.xml and rewrites the whole
// package at the given path. All other parts are written back verbatim.
func (d *Document) SaveAs(path string) error {
	d.parts[documentPart] = d.marshalDocumentXML()

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating package: %w", err)
	}
	zw := zip.NewWriter(f)
	for _, name := range d.partOrder {
		w, err := zw.Create(name)
		if err != nil {
			f.Close()
			return fmt.Errorf("writing part %s: %w", name, err)
		}
		if _, err := w.Write(d.parts[name]); err != nil {
			f.Close()
			return fmt.Errorf("writing part %s: %w", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		f.Close()
		return fmt.Errorf("finalizing package: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing package: %w", err)
	}
	d.path = path
	return nil
}

func (d *Document) marshalDocumentXML() []byte {
	var b bytes.Buffer
	b.WriteString(xmlHeader)
	b.WriteString(documentOpen)
	b.WriteString("<w:body>")
	for _, blk := range d.Body {
		writeBlock(&b, blk)
	}
	b.WriteString("</w:body></w:document>")
	return b.Bytes()
}

func writeBlock(b *bytes.Buffer, blk Block) {
	switch v := blk.(type) {
	case *Paragraph:
		writeParagraph(b, v)
	case *Table:
		writeTable(b, v)
	case *RawChunk:
		writeRaw(b, v)
	}
}

func writeParagraph(b *bytes.Buffer, p *Paragraph) {
	b.WriteString("<w:p>")
	if p.StyleID != "" || p.Numbering != nil || len(p.PropExtra) > 0 {
		b.WriteString("<w:pPr>")
		if p.StyleID != "" {
			b.WriteString(`<w:pStyle w:val="`)
			escape(b, p.StyleID)
			b.WriteString(`"/>`)
		}
		if p.Numbering != nil {
			fmt.Fprintf(b, `<w:numPr><w:ilvl w:val="%d"/><w:numId w:val="%d"/></w:numPr>`,
				p.Numbering.Level, p.Numbering.NumID)
		}
		for _, raw := range p.PropExtra {
			writeRaw(b, raw)
		}
		b.WriteString("</w:pPr>")
	}
	for _, c := range p.Children {
		switch v := c.(type) {
		case *Run:
			writeRun(b, v)
		case *RawChunk:
			writeRaw(b, v)
		}
	}
	b.WriteString("</w:p>")
}

func writeRun(b *bytes.Buffer, r *Run) {
	b.WriteString("<w:r>")
	writeRunProps(b, &r.Props)
	b.WriteString(`<w:t xml:space="preserve">`)
	escape(b, r.Text)
	b.WriteString("</w:t>")
	for _, raw := range r.Extra {
		writeRaw(b, raw)
	}
	b.WriteString("</w:r>")
}

func writeRunProps(b *bytes.Buffer, props *RunProps) {
	if props.Bold == nil && props.Italic == nil && props.Underline == nil &&
		props.FontName == "" && props.FontSize == 0 && props.Color == "" &&
		len(props.Extra) == 0 {
		return
	}
	b.WriteString("<w:rPr>")
	if props.FontName != "" {
		b.WriteString(`<w:rFonts w:ascii="`)
		escape(b, props.FontName)
		b.WriteString(`" w:hAnsi="`)
		escape(b, props.FontName)
		b.WriteString(`"/>`)
	}
	writeToggle(b, "w:b", props.Bold)
	writeToggle(b, "w:i", props.Italic)
	if props.Color != "" {
		b.WriteString(`<w:color w:val="`)
		escape(b, props.Color)
		b.WriteString(`"/>`)
	}
	if props.FontSize != 0 {
		sz := strconv.Itoa(props.FontSize)
		b.WriteString(`<w:sz w:val="` + sz + `"/><w:szCs w:val="` + sz + `"/>`)
	}
	if props.Underline != nil {
		if *props.Underline {
			b.WriteString(`<w:u w:val="single"/>`)
		} else {
			b.WriteString(`<w:u w:val="none"/>`)
		}
	}
	for _, raw := range props.Extra {
		writeRaw(b, raw)
	}
	b.WriteString("</w:rPr>")
}

func writeToggle(b *bytes.Buffer, tag string, v *bool) {
	if v == nil {
		return
	}
	if *v {
		b.WriteString("<" + tag + "/>")
	} else {
		b.WriteString("<" + tag + ` w:val="0"/>`)
	}
}

func writeTable(b *bytes.Buffer, t *Table) {
	b.WriteString("<w:tbl>")
	for _, raw := range t.Extra {
		writeRaw(b, raw)
	}
	for _, row := range t.Rows {
		b.WriteString("<w:tr>")
		for _, raw := range row.Extra {
			writeRaw(b, raw)
		}
		for _, cell := range row.Cells {
			b.WriteString("<w:tc>")
			for _, raw := range cell.Extra {
				writeRaw(b, raw)
			}
			for _, blk := range cell.Blocks {
				writeBlock(b, blk)
			}
			b.WriteString("</w:tc>")
		}
		b.WriteString("</w:tr>")
	}
	b.WriteString("</w:tbl>")
}

func writeRaw(b *bytes.Buffer, raw *RawChunk) {
	tag := prefixedName(raw.Name)
	b.WriteString("<" + tag)
	for _, a := range raw.Attrs {
		b.WriteString(" " + prefixedAttrName(a.Name) + `="`)
		escape(b, a.Value)
		b.WriteString(`"`)
	}
	if len(raw.Inner) == 0 {
		b.WriteString("/>")
		return
	}
	b.WriteString(">")
	b.Write(raw.Inner)
	b.WriteString("</" + tag + ">")
}

func prefixedName(name xml.Name) string {
	if name.Space == "" {
		return name.Local
	}
	if p, ok := nsPrefix[name.Space]; ok {
		return p + ":" + name.Local
	}
	return name.Local
}

func prefixedAttrName(name xml.Name) string {
	switch name.Space {
	case "":
		return name.Local
	case "xmlns":
		return "xmlns:" + name.Local
	case "http://www.w3.org/XML/1998/namespace", "xml":
		return "xml:" + name.Local
	}
	if p, ok := nsPrefix[name.Space]; ok {
		return p + ":" + name.Local
	}
	return name.Local
}

func escape(b *bytes.Buffer, s string) {
	_ = xml.EscapeText(b, []byte(s))
}
