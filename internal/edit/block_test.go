package edit

import (
	"testing"

	"docbench/engine/internal/docx"
)

// sectionDoc builds: Title, H1 "Intro", two body paras, H2 "Details", one
// body para, H1 "Appendix", one body para.
func sectionDoc(t *testing.T) *docx.Document {
	t.Helper()
	doc, err := docx.New("")
	if err != nil {
		t.Fatalf("new document: %v", err)
	}
	doc.AddParagraph("Report", "Title")
	doc.AddParagraph("Intro", "Heading 1")
	doc.AddParagraph("first body", "")
	doc.AddParagraph("second body", "")
	doc.AddParagraph("Details", "Heading 2")
	doc.AddParagraph("detail body", "")
	doc.AddParagraph("Appendix", "Heading 1")
	doc.AddParagraph("appendix body", "")
	return doc
}

func TestFindHeaderBlock(t *testing.T) {
	doc := sectionDoc(t)

	tests := []struct {
		name        string
		header      string
		wantHeader  int
		wantLevel   int
		wantStart   int
		wantEnd     int
		wantNext    int
		wantMissing bool
	}{
		{
			// An H1 section swallows the deeper H2 and stops at the next H1.
			name:       "level one spans subsection",
			header:     "Intro",
			wantHeader: 1, wantLevel: 1, wantStart: 2, wantEnd: 5, wantNext: 6,
		},
		{
			name:       "level two stops at shallower heading",
			header:     "Details",
			wantHeader: 4, wantLevel: 2, wantStart: 5, wantEnd: 5, wantNext: 6,
		},
		{
			name:       "last section runs to end",
			header:     "Appendix",
			wantHeader: 6, wantLevel: 1, wantStart: 7, wantEnd: 7, wantNext: -1,
		},
		{
			name:       "case folded",
			header:     "  APPENDIX ",
			wantHeader: 6, wantLevel: 1, wantStart: 7, wantEnd: 7, wantNext: -1,
		},
		{
			name:        "body text is not a header",
			header:      "first body",
			wantMissing: true,
		},
		{
			name:        "missing",
			header:      "Conclusion",
			wantMissing: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hb, err := FindHeaderBlock(doc, tt.header)
			if tt.wantMissing {
				if err == nil {
					t.Fatalf("found %+v, want not-found error", hb)
				}
				if _, ok := err.(*NotFoundError); !ok {
					t.Fatalf("error = %T, want *NotFoundError", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("find: %v", err)
			}
			want := HeaderBlock{
				Header: tt.wantHeader, Level: tt.wantLevel,
				ContentStart: tt.wantStart, ContentEnd: tt.wantEnd,
				NextHeading: tt.wantNext,
			}
			if hb != want {
				t.Fatalf("block = %+v, want %+v", hb, want)
			}
		})
	}
}

func TestFindHeaderBlockPrefersExactOverSubstring(t *testing.T) {
	doc := newDoc(t)
	doc.AddParagraph("Overview and Scope", "Heading 1")
	doc.AddParagraph("Overview", "Heading 1")
	doc.AddParagraph("tail", "")

	hb, err := FindHeaderBlock(doc, "Overview")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if hb.Header != 1 {
		t.Fatalf("header index = %d, want 1 (exact match)", hb.Header)
	}
}

func TestReplaceHeaderBlock(t *testing.T) {
	doc := sectionDoc(t)
	hb, removed, err := ReplaceHeaderBlock(doc, "Intro", []string{"new one", "new two"}, "")
	if err != nil {
		t.Fatalf("replace: %v", err)
	}
	if removed != 4 {
		t.Fatalf("removed = %d, want 4", removed)
	}
	if hb.Header != 1 {
		t.Fatalf("header index = %d", hb.Header)
	}
	want := []string{"Report", "Intro", "new one", "new two", "Appendix", "appendix body"}
	got := paraTexts(doc)
	if len(got) != len(want) {
		t.Fatalf("paragraphs = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("paragraph %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestDeleteHeaderBlockEmptySection(t *testing.T) {
	doc := newDoc(t)
	doc.AddParagraph("Empty", "Heading 1")
	doc.AddParagraph("Next", "Heading 1")
	doc.AddParagraph("body", "")

	hb, removed, err := DeleteHeaderBlock(doc, "Empty")
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if removed != 0 {
		t.Fatalf("removed = %d, want 0", removed)
	}
	if hb.ContentStart <= hb.ContentEnd {
		t.Fatalf("block = %+v, want empty content region", hb)
	}
	if got := len(doc.Paragraphs()); got != 3 {
		t.Fatalf("paragraph count = %d, want 3", got)
	}
}

func TestFindAnchorBlock(t *testing.T) {
	doc := newDoc(t, "BEGIN", "middle one", "middle two", "END", "tail")

	start, end, err := FindAnchorBlock(doc, "BEGIN", "END")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if start != 0 || end != 3 {
		t.Fatalf("anchors = (%d, %d), want (0, 3)", start, end)
	}

	if _, _, err := FindAnchorBlock(doc, "nope", "END"); err == nil {
		t.Fatal("missing start anchor not reported")
	}
	// The end anchor must come after the start anchor.
	if _, _, err := FindAnchorBlock(doc, "END", "BEGIN"); err == nil {
		t.Fatal("end anchor before start anchor not reported")
	}
}

func TestReplaceAnchorBlock(t *testing.T) {
	doc := newDoc(t, "BEGIN", "old one", "old two", "END", "tail")

	removed, err := ReplaceAnchorBlock(doc, "BEGIN", "END", []string{"fresh"}, "")
	if err != nil {
		t.Fatalf("replace: %v", err)
	}
	if removed != 2 {
		t.Fatalf("removed = %d, want 2", removed)
	}
	want := []string{"BEGIN", "fresh", "END", "tail"}
	got := paraTexts(doc)
	if len(got) != len(want) {
		t.Fatalf("paragraphs = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("paragraph %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestReplaceAnchorBlockRemovesInteriorTables(t *testing.T) {
	doc := newDoc(t, "BEGIN", "interior", "END")

	cell := &docx.TableCell{}
	cellPara := &docx.Paragraph{}
	cellPara.AddRun("table text")
	cell.Blocks = []docx.Block{cellPara}
	table := &docx.Table{Rows: []*docx.TableRow{{Cells: []*docx.TableCell{cell}}}}
	positions := doc.ParagraphBlockPositions()
	doc.InsertBlock(positions[2], table) // between "interior" and "END"

	removed, err := ReplaceAnchorBlock(doc, "BEGIN", "END", nil, "")
	if err != nil {
		t.Fatalf("replace: %v", err)
	}
	if removed != 2 {
		t.Fatalf("removed = %d, want 2 (paragraph and table)", removed)
	}
	if got := len(doc.Tables()); got != 0 {
		t.Fatalf("tables remaining = %d, want 0", got)
	}
	want := []string{"BEGIN", "END"}
	got := paraTexts(doc)
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("paragraphs = %v, want %v", got, want)
	}
}
