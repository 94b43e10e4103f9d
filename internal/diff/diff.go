// Package diff renders paragraph-level change reports for mutation results.
// Each row is one paragraph of the document before or after the edit.
package diff

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

type Row struct {
	Type   string `json:"type"`
	Text   string `json:"text"`
	OldRow int    `json:"old_row,omitempty"`
	NewRow int    `json:"new_row,omitempty"`
}

type Hunk struct {
	Rows []Row `json:"rows"`
}

const (
	RowContext = "context"
	RowAdded   = "added"
	RowRemoved = "removed"
)

// ParagraphDiff compares two paragraph sequences. Row numbers are 1-based
// positions in the before and after documents.
func ParagraphDiff(before, after []string) []Hunk {
	beforeText := joinParagraphs(before)
	afterText := joinParagraphs(after)

	dmp := diffmatchpatch.New()
	beforeChars, afterChars, lineArray := dmp.DiffLinesToChars(beforeText, afterText)
	diffs := dmp.DiffMain(beforeChars, afterChars, false)
	diffs = dmp.DiffCharsToLines(diffs, lineArray)

	var rows []Row
	oldRow := 1
	newRow := 1
	for _, d := range diffs {
		chunk := strings.Split(d.Text, "\n")
		if len(chunk) > 0 && chunk[len(chunk)-1] == "" {
			chunk = chunk[:len(chunk)-1]
		}
		for _, text := range chunk {
			switch d.Type {
			case diffmatchpatch.DiffEqual:
				rows = append(rows, Row{Type: RowContext, Text: text, OldRow: oldRow, NewRow: newRow})
				oldRow++
				newRow++
			case diffmatchpatch.DiffDelete:
				rows = append(rows, Row{Type: RowRemoved, Text: text, OldRow: oldRow})
				oldRow++
			case diffmatchpatch.DiffInsert:
				rows = append(rows, Row{Type: RowAdded, Text: text, NewRow: newRow})
				newRow++
			}
		}
	}
	return []Hunk{{Rows: rows}}
}

const MaxDiffRows = 5000

// ParagraphDiffWithLimit skips diff generation for oversized documents. The
// bool reports whether the diff was skipped.
func ParagraphDiffWithLimit(before, after []string, maxRows int) ([]Hunk, bool) {
	if maxRows <= 0 {
		maxRows = MaxDiffRows
	}
	if len(before)+len(after) > maxRows {
		return nil, true
	}
	return ParagraphDiff(before, after), false
}

func joinParagraphs(paras []string) string {
	if len(paras) == 0 {
		return ""
	}
	return strings.Join(paras, "\n") + "\n"
}
