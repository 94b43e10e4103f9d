package docx

import (
	"encoding/xml"
	"strconv"
	"strings"
)

// DefaultStyleName is the body style applied when nothing more specific is
// requested. It matches Word's built-in default.
const DefaultStyleName = "Normal"

// StyleInfo describes one entry of word/styles.xml.
type StyleInfo struct {
	ID   string `json:"style_id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

// StyleTable maps style IDs to display names and back. Paragraphs reference
// styles by ID; callers address them by display name ("Heading 2").
type StyleTable struct {
	styles []StyleInfo
	byID   map[string]int
	byName map[string]int
}

// List returns the styles in definition order.
func (t *StyleTable) List() []StyleInfo {
	return t.styles
}

// NameOf resolves a style ID to its display name. An empty or unknown ID
// resolves to the default body style name.
func (t *StyleTable) NameOf(id string) string {
	if id == "" {
		return DefaultStyleName
	}
	if i, ok := t.byID[strings.ToLower(id)]; ok {
		return t.styles[i].Name
	}
	return id
}

// IDByName resolves a display name to a style ID. The bool reports whether
// the name (or the literal ID) is defined in the document.
func (t *StyleTable) IDByName(name string) (string, bool) {
	if i, ok := t.byName[strings.ToLower(name)]; ok {
		return t.styles[i].ID, true
	}
	if i, ok := t.byID[strings.ToLower(name)]; ok {
		return t.styles[i].ID, true
	}
	return "", false
}

// ResolveID resolves a caller-supplied style name to an ID, falling back to
// the conventional derivation (display name minus spaces) when the document
// does not define it. Word tolerates dangling pStyle references.
func (t *StyleTable) ResolveID(name string) string {
	if id, ok := t.IDByName(name); ok {
		return id
	}
	return strings.ReplaceAll(name, " ", "")
}

// IsHeadingStyle reports whether a style display name marks a heading.
func IsHeadingStyle(name string) bool {
	return len(name) >= 7 && strings.EqualFold(name[:7], "heading")
}

// IsTOCStyle reports whether a style display name marks a table-of-contents
// paragraph. TOC paragraphs are field-generated and excluded from editing.
func IsTOCStyle(name string) bool {
	return len(name) >= 3 && strings.EqualFold(name[:3], "toc")
}

// HeadingLevel extracts the numeric level from a heading style display name
// ("Heading 2" -> 2). Unparsable names default to level 1.
func HeadingLevel(name string) int {
	fields := strings.Fields(name)
	if len(fields) < 2 {
		return 1
	}
	level, err := strconv.Atoi(fields[len(fields)-1])
	if err != nil || level < 1 {
		return 1
	}
	return level
}

// StyleNameOf returns the display name of a paragraph's style.
func (d *Document) StyleNameOf(p *Paragraph) string {
	return d.styles.NameOf(p.StyleID)
}

type stylesXML struct {
	Styles []struct {
		Type string `xml:"type,attr"`
		ID   string `xml:"styleId,attr"`
		Name struct {
			Val string `xml:"val,attr"`
		} `xml:"name"`
	} `xml:"style"`
}

func parseStyles(data []byte) *StyleTable {
	table := &StyleTable{
		byID:   make(map[string]int),
		byName: make(map[string]int),
	}
	if len(data) == 0 {
		return table
	}
	var raw stylesXML
	if err := xml.Unmarshal(data, &raw); err != nil {
		return table
	}
	for _, s := range raw.Styles {
		name := s.Name.Val
		if name == "" {
			name = s.ID
		}
		info := StyleInfo{ID: s.ID, Name: name, Type: s.Type}
		table.styles = append(table.styles, info)
		table.byID[strings.ToLower(s.ID)] = len(table.styles) - 1
		if _, dup := table.byName[strings.ToLower(name)]; !dup {
			table.byName[strings.ToLower(name)] = len(table.styles) - 1
		}
	}
	return table
}

// CoreProperties is the Dublin Core metadata of docProps/core.xml.
type CoreProperties struct {
	Title          string `xml:"title"`
	Subject        string `xml:"subject"`
	Creator        string `xml:"creator"`
	Keywords       string `xml:"keywords"`
	LastModifiedBy string `xml:"lastModifiedBy"`
	Revision       string `xml:"revision"`
	Created        string `xml:"created"`
	Modified       string `xml:"modified"`
}

func parseCoreProperties(data []byte) *CoreProperties {
	props := &CoreProperties{}
	if len(data) == 0 {
		return props
	}
	_ = xml.Unmarshal(data, props)
	return props
}
