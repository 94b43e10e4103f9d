package edit

import (
	"strings"

	"docbench/engine/internal/docx"
)

// runMap indexes a paragraph's joined text by byte position so a match
// offset can be translated back to (run, offset within run). Run boundaries
// carry no alignment with words or sentences; this table is the only bridge
// between the two coordinate systems.
type runMap struct {
	text  string
	spans []runSpan
}

// runSpan covers bytes [start, end) of the joined text for one run.
// Empty runs produce empty spans that no position resolves into.
type runSpan struct {
	run        int
	start, end int
}

func buildRunMap(p *docx.Paragraph) runMap {
	runs := p.Runs()
	m := runMap{spans: make([]runSpan, len(runs))}
	var b strings.Builder
	off := 0
	for i, r := range runs {
		b.WriteString(r.Text)
		m.spans[i] = runSpan{run: i, start: off, end: off + len(r.Text)}
		off += len(r.Text)
	}
	m.text = b.String()
	return m
}

// locate resolves a byte position of the joined text to the run containing
// it and that run's span start. Returns run -1 when the position falls
// outside every span.
func (m runMap) locate(pos int) (run, spanStart int) {
	for _, s := range m.spans {
		if pos >= s.start && pos < s.end {
			return s.run, s.start
		}
	}
	return -1, 0
}
