package edit

import "regexp"

// Span is a stretch of paragraph text with uniform inline emphasis.
type Span struct {
	Text   string
	Bold   bool
	Italic bool
}

// Asterisk runs from strongest to weakest so *** wins over ** and *.
var markupRe = regexp.MustCompile(`\*{3}(.+?)\*{3}|\*{2}(.+?)\*{2}|\*(.+?)\*`)

// ParseMarkup splits text into spans, interpreting ***x*** as bold italic,
// **x** as bold and *x* as italic. Unbalanced or empty markers pass through
// as literal text. Empty input yields a single empty span, so a replaced
// paragraph always keeps at least one run.
func ParseMarkup(text string) []Span {
	if text == "" {
		return []Span{{}}
	}
	var spans []Span
	last := 0
	for _, m := range markupRe.FindAllStringSubmatchIndex(text, -1) {
		if m[0] > last {
			spans = append(spans, Span{Text: text[last:m[0]]})
		}
		switch {
		case m[2] >= 0:
			spans = append(spans, Span{Text: text[m[2]:m[3]], Bold: true, Italic: true})
		case m[4] >= 0:
			spans = append(spans, Span{Text: text[m[4]:m[5]], Bold: true})
		default:
			spans = append(spans, Span{Text: text[m[6]:m[7]], Italic: true})
		}
		last = m[1]
	}
	if last < len(text) {
		spans = append(spans, Span{Text: text[last:]})
	}
	return spans
}
