package edit

import (
	"strings"

	"docbench/engine/internal/docx"
)

// ReplaceRange replaces body paragraphs [start, end] with the given texts.
// The replacement is anchored to the block element preceding the range, so
// interleaved tables keep their place. Style resolution: an explicit
// styleName wins; otherwise preserveStyle carries the first replaced
// paragraph's style; otherwise the default style applies. Returns the number
// of paragraphs removed.
func ReplaceRange(doc *docx.Document, start, end int, texts []string, styleName string, preserveStyle bool) (int, error) {
	paras := doc.Paragraphs()
	if err := ValidateRange(start, end, len(paras)); err != nil {
		return 0, err
	}

	style := styleName
	if style == "" && preserveStyle {
		if id := paras[start].StyleID; id != "" {
			style = doc.Styles().NameOf(id)
		}
	}

	positions := doc.ParagraphBlockPositions()
	anchorPos := positions[start] - 1
	removeParagraphRange(doc, start, end)
	insertParagraphsAfter(doc, anchorPos, texts, style)
	return end - start + 1, nil
}

// DeleteRange removes body paragraphs [start, end]. Returns the number of
// paragraphs removed.
func DeleteRange(doc *docx.Document, start, end int) (int, error) {
	count := len(doc.Paragraphs())
	if err := ValidateRange(start, end, count); err != nil {
		return 0, err
	}
	removeParagraphRange(doc, start, end)
	return end - start + 1, nil
}

// ReplaceParagraph rewrites the paragraph at the given body index in place.
// The paragraph element stays where it is, so its style, numbering and
// non-run children survive. The first run's formatting of the old paragraph
// is carried onto every new run. With parseMarkup the text is split into
// emphasis spans and bold/italic overridden where the markup says so;
// otherwise the text lands as one literal run.
func ReplaceParagraph(doc *docx.Document, index int, text string, parseMarkup bool) error {
	paras := doc.Paragraphs()
	if index < 0 || index >= len(paras) {
		return &IndexError{Index: index, Count: len(paras)}
	}
	p := paras[index]

	var base docx.RunProps
	if runs := p.Runs(); len(runs) > 0 {
		base = runs[0].Props
	}
	spans := []Span{{Text: text}}
	if parseMarkup {
		spans = ParseMarkup(text)
	}
	p.ClearRuns()
	for _, span := range spans {
		r := p.AddRun(span.Text)
		r.Props = CopyFormatting(base)
		if span.Bold {
			r.Props.Bold = boolPtr(true)
		}
		if span.Italic {
			r.Props.Italic = boolPtr(true)
		}
	}
	return nil
}

// InsertParagraphsNear inserts paragraphs before or after the first body
// paragraph containing anchorText. The anchor search is a plain containment
// check over raw paragraph text, skipping table-of-contents paragraphs.
// numbering, when non-nil, is applied to every inserted paragraph. Returns
// the body index of the anchor paragraph.
func InsertParagraphsNear(doc *docx.Document, anchorText string, texts []string, styleName string, before bool, numbering *docx.Numbering) (int, error) {
	anchor := FindAnchorParagraph(doc, anchorText)
	if anchor < 0 {
		return 0, &NotFoundError{Kind: "anchor", Text: anchorText}
	}
	return anchor, InsertParagraphsAt(doc, anchor, texts, styleName, before, numbering)
}

// InsertParagraphsAt inserts paragraphs before or after the body paragraph at
// the given index.
func InsertParagraphsAt(doc *docx.Document, index int, texts []string, styleName string, before bool, numbering *docx.Numbering) error {
	paras := doc.Paragraphs()
	if index < 0 || index >= len(paras) {
		return &IndexError{Index: index, Count: len(paras)}
	}
	positions := doc.ParagraphBlockPositions()
	blockPos := positions[index]
	if before {
		blockPos--
	}
	created := insertParagraphsAfter(doc, blockPos, texts, styleName)
	if numbering != nil {
		for _, p := range created {
			n := *numbering
			p.Numbering = &n
		}
	}
	return nil
}

// FindAnchorParagraph returns the body index of the first paragraph whose
// raw text contains anchorText, or -1. Table-of-contents paragraphs are
// skipped.
func FindAnchorParagraph(doc *docx.Document, anchorText string) int {
	for i, p := range doc.Paragraphs() {
		if docx.IsTOCStyle(doc.StyleNameOf(p)) {
			continue
		}
		if strings.Contains(p.Text(), anchorText) {
			return i
		}
	}
	return -1
}

func boolPtr(v bool) *bool { return &v }
