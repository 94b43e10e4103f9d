package edit

import (
	"strings"

	"docbench/engine/internal/docx"
)

// findParagraph runs the two-pass match over paras[from:]: pass one accepts
// the first paragraph whose normalized text equals the normalized needle,
// pass two falls back to the first paragraph whose normalized text contains
// it. eligible restricts the candidate set (nil means every paragraph);
// foldCase lowers both sides before comparing. Returns -1 when both passes
// come up empty.
func findParagraph(paras []*docx.Paragraph, from int, text string, eligible func(int) bool, foldCase bool) int {
	needle := Normalize(text)
	if foldCase {
		needle = strings.ToLower(needle)
	}
	normalized := func(i int) string {
		s := Normalize(paras[i].Text())
		if foldCase {
			s = strings.ToLower(s)
		}
		return s
	}
	for i := from; i < len(paras); i++ {
		if eligible != nil && !eligible(i) {
			continue
		}
		if normalized(i) == needle {
			return i
		}
	}
	for i := from; i < len(paras); i++ {
		if eligible != nil && !eligible(i) {
			continue
		}
		if strings.Contains(normalized(i), needle) {
			return i
		}
	}
	return -1
}

// FindAnchorBlock locates two anchor paragraphs: the start anchor scanning
// from the beginning of the document, the end anchor scanning strictly after
// it. The replaceable interior is everything strictly between the two.
func FindAnchorBlock(doc *docx.Document, startText, endText string) (start, end int, err error) {
	paras := doc.Paragraphs()
	start = findParagraph(paras, 0, startText, nil, false)
	if start < 0 {
		return 0, 0, &NotFoundError{Kind: "start anchor", Text: startText}
	}
	end = findParagraph(paras, start+1, endText, nil, false)
	if end < 0 {
		return 0, 0, &NotFoundError{Kind: "end anchor", Text: endText}
	}
	return start, end, nil
}

// HeaderBlock describes a located section: the heading paragraph and the
// content region ending just before the next heading of the same or a
// shallower level. ContentStart > ContentEnd means the section is empty;
// NextHeading is -1 when the region runs to the end of the document.
type HeaderBlock struct {
	Header       int
	Level        int
	ContentStart int
	ContentEnd   int
	NextHeading  int
}

// FindHeaderBlock locates a section by heading text. Only heading-styled
// paragraphs are candidates in both matching passes; a body paragraph whose
// text happens to match is never treated as a header. Matching folds case.
func FindHeaderBlock(doc *docx.Document, headerText string) (HeaderBlock, error) {
	paras := doc.Paragraphs()
	isHeading := func(i int) bool {
		return docx.IsHeadingStyle(doc.StyleNameOf(paras[i]))
	}
	idx := findParagraph(paras, 0, headerText, isHeading, true)
	if idx < 0 {
		return HeaderBlock{}, &NotFoundError{Kind: "header", Text: headerText}
	}
	level := docx.HeadingLevel(doc.StyleNameOf(paras[idx]))

	next := -1
	for i := idx + 1; i < len(paras); i++ {
		if isHeading(i) && docx.HeadingLevel(doc.StyleNameOf(paras[i])) <= level {
			next = i
			break
		}
	}
	contentEnd := len(paras) - 1
	if next >= 0 {
		contentEnd = next - 1
	}
	return HeaderBlock{
		Header:       idx,
		Level:        level,
		ContentStart: idx + 1,
		ContentEnd:   contentEnd,
		NextHeading:  next,
	}, nil
}

// removeParagraphRange removes the body paragraphs with indices [start, end]
// in descending block order, so no position needs re-resolving mid-removal.
// Non-paragraph blocks inside the range are untouched.
func removeParagraphRange(doc *docx.Document, start, end int) {
	positions := doc.ParagraphBlockPositions()
	for i := end; i >= start; i-- {
		doc.RemoveBlock(positions[i])
	}
}

// insertParagraphsAfter inserts one paragraph per text immediately after the
// given block position (use -1 for document start), advancing the insertion
// point so the paragraphs land in input order. Returns the new paragraphs.
func insertParagraphsAfter(doc *docx.Document, blockPos int, texts []string, styleName string) []*docx.Paragraph {
	created := make([]*docx.Paragraph, 0, len(texts))
	at := blockPos + 1
	for _, text := range texts {
		p := doc.NewParagraph(text, styleName)
		doc.InsertBlock(at, p)
		created = append(created, p)
		at++
	}
	return created
}

// ReplaceAnchorBlock replaces the interior between two anchors: every block
// strictly between the anchor paragraphs is removed, interleaved tables
// included, then the new paragraphs are inserted after the start anchor.
// Both anchor paragraphs are preserved. Returns the number of blocks removed.
func ReplaceAnchorBlock(doc *docx.Document, startText, endText string, texts []string, styleName string) (int, error) {
	start, end, err := FindAnchorBlock(doc, startText, endText)
	if err != nil {
		return 0, err
	}
	positions := doc.ParagraphBlockPositions()
	startPos, endPos := positions[start], positions[end]
	removed := endPos - startPos - 1
	for pos := endPos - 1; pos > startPos; pos-- {
		doc.RemoveBlock(pos)
	}
	insertParagraphsAfter(doc, startPos, texts, styleName)
	return removed, nil
}

// DeleteHeaderBlock removes the content region under the located heading.
// The heading paragraph itself is preserved. Returns the located block and
// the number of paragraphs removed.
func DeleteHeaderBlock(doc *docx.Document, headerText string) (HeaderBlock, int, error) {
	hb, err := FindHeaderBlock(doc, headerText)
	if err != nil {
		return HeaderBlock{}, 0, err
	}
	if hb.ContentStart > hb.ContentEnd {
		return hb, 0, nil
	}
	removeParagraphRange(doc, hb.ContentStart, hb.ContentEnd)
	return hb, hb.ContentEnd - hb.ContentStart + 1, nil
}

// ReplaceHeaderBlock replaces the content region under the located heading
// with the given paragraphs. Returns the located block and the number of
// paragraphs removed.
func ReplaceHeaderBlock(doc *docx.Document, headerText string, texts []string, styleName string) (HeaderBlock, int, error) {
	hb, removed, err := DeleteHeaderBlock(doc, headerText)
	if err != nil {
		return HeaderBlock{}, 0, err
	}
	positions := doc.ParagraphBlockPositions()
	insertParagraphsAfter(doc, positions[hb.Header], texts, styleName)
	return hb, removed, nil
}
