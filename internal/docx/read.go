package docx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
)

// Load opens a .docx package and parses its body and style table. Every zip
// part is retained verbatim so a later save rewrites an intact package.
func Load(path string) (*Document, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("opening package: %w", err)
	}
	defer zr.Close()

	parts := make(map[string][]byte, len(zr.File))
	order := make([]string, 0, len(zr.File))
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("opening part %s: %w", f.Name, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("reading part %s: %w", f.Name, err)
		}
		parts[f.Name] = data
		order = append(order, f.Name)
	}
	return fromParts(parts, order, path)
}

func fromParts(parts map[string][]byte, order []string, path string) (*Document, error) {
	docXML, ok := parts[documentPart]
	if !ok {
		return nil, fmt.Errorf("missing required part %s", documentPart)
	}
	body, err := parseDocumentXML(docXML)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", documentPart, err)
	}
	return &Document{
		path:      path,
		parts:     parts,
		partOrder: order,
		styles:    parseStyles(parts[stylesPart]),
		core:      parseCoreProperties(parts[corePart]),
		Body:      body,
	}, nil
}

const (
	documentPart = "word/document.xml"
	stylesPart   = "word/styles.xml"
	corePart     = "docProps/core.xml"
)

// DocumentXML returns the raw bytes of word/document.xml as loaded.
func (d *Document) DocumentXML() []byte {
	return d.parts[documentPart]
}

func parseDocumentXML(data []byte) ([]Block, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return nil, fmt.Errorf("no body element")
		}
		if err != nil {
			return nil, err
		}
		if se, ok := tok.(xml.StartElement); ok && se.Name.Local == "body" {
			return decodeBlocks(dec)
		}
	}
}

// decodeBlocks consumes children of a block container until its end element.
func decodeBlocks(dec *xml.Decoder) ([]Block, error) {
	var blocks []Block
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "p":
				p, err := decodeParagraph(dec, t)
				if err != nil {
					return nil, err
				}
				blocks = append(blocks, p)
			case "tbl":
				tbl, err := decodeTable(dec, t)
				if err != nil {
					return nil, err
				}
				blocks = append(blocks, tbl)
			default:
				raw, err := decodeRaw(dec, t)
				if err != nil {
					return nil, err
				}
				blocks = append(blocks, raw)
			}
		case xml.EndElement:
			return blocks, nil
		}
	}
}

func decodeRaw(dec *xml.Decoder, start xml.StartElement) (*RawChunk, error) {
	var holder struct {
		Inner []byte `xml:",innerxml"`
	}
	if err := dec.DecodeElement(&holder, &start); err != nil {
		return nil, err
	}
	return &RawChunk{
		Name:  start.Name,
		Attrs: append([]xml.Attr(nil), start.Attr...),
		Inner: append([]byte(nil), holder.Inner...),
	}, nil
}

func decodeParagraph(dec *xml.Decoder, start xml.StartElement) (*Paragraph, error) {
	p := &Paragraph{}
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "pPr":
				if err := decodeParaProps(dec, p); err != nil {
					return nil, err
				}
			case "r":
				r, err := decodeRun(dec)
				if err != nil {
					return nil, err
				}
				p.Children = append(p.Children, r)
			default:
				raw, err := decodeRaw(dec, t)
				if err != nil {
					return nil, err
				}
				p.Children = append(p.Children, raw)
			}
		case xml.EndElement:
			return p, nil
		}
	}
}

func decodeParaProps(dec *xml.Decoder, p *Paragraph) error {
	for {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "pStyle":
				p.StyleID = attrVal(t, "val")
				if err := dec.Skip(); err != nil {
					return err
				}
			case "numPr":
				num, err := decodeNumbering(dec)
				if err != nil {
					return err
				}
				p.Numbering = num
			default:
				raw, err := decodeRaw(dec, t)
				if err != nil {
					return err
				}
				p.PropExtra = append(p.PropExtra, raw)
			}
		case xml.EndElement:
			return nil
		}
	}
}

func decodeNumbering(dec *xml.Decoder) (*Numbering, error) {
	num := &Numbering{}
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "ilvl":
				num.Level = atoi(attrVal(t, "val"))
			case "numId":
				num.NumID = atoi(attrVal(t, "val"))
			}
			if err := dec.Skip(); err != nil {
				return nil, err
			}
		case xml.EndElement:
			return num, nil
		}
	}
}

func decodeRun(dec *xml.Decoder) (*Run, error) {
	r := &Run{}
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "rPr":
				if err := decodeRunProps(dec, &r.Props); err != nil {
					return nil, err
				}
			case "t":
				var text string
				if err := dec.DecodeElement(&text, &t); err != nil {
					return nil, err
				}
				r.Text += text
			default:
				raw, err := decodeRaw(dec, t)
				if err != nil {
					return nil, err
				}
				r.Extra = append(r.Extra, raw)
			}
		case xml.EndElement:
			return r, nil
		}
	}
}

func decodeRunProps(dec *xml.Decoder, props *RunProps) error {
	for {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "b":
				props.Bold = boolPtr(onOffVal(t))
			case "i":
				props.Italic = boolPtr(onOffVal(t))
			case "u":
				val := attrVal(t, "val")
				props.Underline = boolPtr(val != "none" && val != "0" && val != "false")
			case "rFonts":
				if name := attrVal(t, "ascii"); name != "" {
					props.FontName = name
				} else if name := attrVal(t, "hAnsi"); name != "" {
					props.FontName = name
				}
			case "sz":
				props.FontSize = atoi(attrVal(t, "val"))
			case "szCs":
				// regenerated from FontSize on write
			case "color":
				props.Color = attrVal(t, "val")
			default:
				raw, err := decodeRaw(dec, t)
				if err != nil {
					return err
				}
				props.Extra = append(props.Extra, raw)
				continue
			}
			if err := dec.Skip(); err != nil {
				return err
			}
		case xml.EndElement:
			return nil
		}
	}
}

func decodeTable(dec *xml.Decoder, start xml.StartElement) (*Table, error) {
	tbl := &Table{}
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "tr":
				row, err := decodeTableRow(dec)
				if err != nil {
					return nil, err
				}
				tbl.Rows = append(tbl.Rows, row)
			default:
				raw, err := decodeRaw(dec, t)
				if err != nil {
					return nil, err
				}
				tbl.Extra = append(tbl.Extra, raw)
			}
		case xml.EndElement:
			return tbl, nil
		}
	}
}

func decodeTableRow(dec *xml.Decoder) (*TableRow, error) {
	row := &TableRow{}
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "tc":
				cell, err := decodeTableCell(dec)
				if err != nil {
					return nil, err
				}
				row.Cells = append(row.Cells, cell)
			default:
				raw, err := decodeRaw(dec, t)
				if err != nil {
					return nil, err
				}
				row.Extra = append(row.Extra, raw)
			}
		case xml.EndElement:
			return row, nil
		}
	}
}

func decodeTableCell(dec *xml.Decoder) (*TableCell, error) {
	cell := &TableCell{}
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "p":
				p, err := decodeParagraph(dec, t)
				if err != nil {
					return nil, err
				}
				cell.Blocks = append(cell.Blocks, p)
			case "tbl":
				nested, err := decodeTable(dec, t)
				if err != nil {
					return nil, err
				}
				cell.Blocks = append(cell.Blocks, nested)
			default:
				raw, err := decodeRaw(dec, t)
				if err != nil {
					return nil, err
				}
				cell.Extra = append(cell.Extra, raw)
			}
		case xml.EndElement:
			return cell, nil
		}
	}
}

func attrVal(se xml.StartElement, local string) string {
	for _, a := range se.Attr {
		if a.Name.Local == local {
			return a.Value
		}
	}
	return ""
}

// onOffVal reads an OOXML on/off toggle: a bare element is "on".
func onOffVal(se xml.StartElement) bool {
	switch attrVal(se, "val") {
	case "0", "false", "none", "off":
		return false
	default:
		return true
	}
}

func boolPtr(v bool) *bool { return &v }

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
