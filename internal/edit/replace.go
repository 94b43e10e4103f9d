package edit

import (
	"strings"

	"docbench/engine/internal/docx"
)

// ReplaceInParagraph replaces every non-overlapping occurrence of old in the
// paragraph's joined text, left to right, and returns the number of
// replacements. A match may span several runs: the first touched run keeps
// its formatting and receives its prefix plus the replacement text, runs
// strictly between first and last are emptied, and the last touched run
// keeps only its suffix. Emptied runs are left in place; they render as
// zero-width. The search resumes after the inserted text so a replacement
// containing the search text cannot match again.
func ReplaceInParagraph(p *docx.Paragraph, old, new string) int {
	if old == "" {
		return 0
	}
	count := 0
	searchFrom := 0
	for {
		runs := p.Runs()
		if len(runs) == 0 {
			break
		}
		m := buildRunMap(p)
		if searchFrom >= len(m.text) {
			break
		}
		rel := strings.Index(m.text[searchFrom:], old)
		if rel < 0 {
			break
		}
		start := searchFrom + rel
		end := start + len(old)

		startRun, startSpan := m.locate(start)
		endRun, endSpan := m.locate(end - 1)
		if startRun < 0 || endRun < 0 {
			break
		}

		if startRun == endRun {
			r := runs[startRun]
			r.Text = r.Text[:start-startSpan] + new + r.Text[end-startSpan:]
		} else {
			runs[startRun].Text = runs[startRun].Text[:start-startSpan] + new
			for i := startRun + 1; i < endRun; i++ {
				runs[i].Text = ""
			}
			runs[endRun].Text = runs[endRun].Text[end-endSpan:]
		}
		count++
		searchFrom = start + len(new)
	}
	return count
}

// ReplaceEverywhere applies ReplaceInParagraph to every eligible paragraph
// in the document body and in table cells, returning the total count.
// Table-of-contents paragraphs are field-generated and skipped entirely:
// they report zero occurrences regardless of their text.
func ReplaceEverywhere(doc *docx.Document, old, new string) int {
	count := 0
	for _, p := range doc.Paragraphs() {
		if docx.IsTOCStyle(doc.StyleNameOf(p)) {
			continue
		}
		count += ReplaceInParagraph(p, old, new)
	}
	for _, t := range doc.Tables() {
		for _, p := range t.AllParagraphs() {
			if docx.IsTOCStyle(doc.StyleNameOf(p)) {
				continue
			}
			count += ReplaceInParagraph(p, old, new)
		}
	}
	return count
}
