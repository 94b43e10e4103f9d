package edit

import (
	"testing"

	"docbench/engine/internal/docx"
)

func newDoc(t *testing.T, texts ...string) *docx.Document {
	t.Helper()
	doc, err := docx.New("")
	if err != nil {
		t.Fatalf("new document: %v", err)
	}
	for _, text := range texts {
		doc.AddParagraph(text, "")
	}
	return doc
}

func paraTexts(doc *docx.Document) []string {
	paras := doc.Paragraphs()
	out := make([]string, len(paras))
	for i, p := range paras {
		out[i] = p.Text()
	}
	return out
}

func TestReplaceInParagraph(t *testing.T) {
	tests := []struct {
		name      string
		runs      []string
		old, new  string
		want      string
		wantCount int
	}{
		{
			name: "single run",
			runs: []string{"hello world"},
			old:  "world", new: "there",
			want: "hello there", wantCount: 1,
		},
		{
			name: "match spans runs",
			runs: []string{"hel", "lo wor", "ld"},
			old:  "lo wo", new: "p wa",
			want: "help warld", wantCount: 1,
		},
		{
			name: "multiple occurrences",
			runs: []string{"aba aba aba"},
			old:  "aba", new: "x",
			want: "x x x", wantCount: 3,
		},
		{
			name: "replacement contains needle",
			runs: []string{"cat"},
			old:  "cat", new: "catalog",
			want: "catalog", wantCount: 1,
		},
		{
			name: "adjacent matches across runs",
			runs: []string{"aa", "aa"},
			old:  "aa", new: "b",
			want: "bb", wantCount: 2,
		},
		{
			name: "no match",
			runs: []string{"hello"},
			old:  "xyz", new: "q",
			want: "hello", wantCount: 0,
		},
		{
			name: "empty needle",
			runs: []string{"hello"},
			old:  "", new: "q",
			want: "hello", wantCount: 0,
		},
		{
			name: "multibyte text",
			runs: []string{"naïve ap", "proach"},
			old:  "naïve approach", new: "simple plan",
			want: "simple plan", wantCount: 1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &docx.Paragraph{}
			for _, text := range tt.runs {
				p.AddRun(text)
			}
			got := ReplaceInParagraph(p, tt.old, tt.new)
			if got != tt.wantCount {
				t.Fatalf("count = %d, want %d", got, tt.wantCount)
			}
			if p.Text() != tt.want {
				t.Fatalf("text = %q, want %q", p.Text(), tt.want)
			}
		})
	}
}

func TestReplaceInParagraphKeepsFirstRunFormatting(t *testing.T) {
	p := &docx.Paragraph{}
	bold := true
	r1 := p.AddRun("the qui")
	r1.Props.Bold = &bold
	p.AddRun("ck fox")

	if got := ReplaceInParagraph(p, "quick", "slow"); got != 1 {
		t.Fatalf("count = %d, want 1", got)
	}
	if p.Text() != "the slow fox" {
		t.Fatalf("text = %q", p.Text())
	}
	runs := p.Runs()
	if runs[0].Props.Bold == nil || !*runs[0].Props.Bold {
		t.Fatalf("first run lost bold flag")
	}
	if runs[0].Text != "the slow" {
		t.Fatalf("first run text = %q, want %q", runs[0].Text, "the slow")
	}
}

func TestReplaceEverywhere(t *testing.T) {
	doc := newDoc(t, "alpha beta", "no match here", "beta again")

	cell := &docx.TableCell{}
	cellPara := &docx.Paragraph{}
	cellPara.AddRun("cell beta")
	cell.Blocks = []docx.Block{cellPara}
	table := &docx.Table{Rows: []*docx.TableRow{{Cells: []*docx.TableCell{cell}}}}
	doc.InsertBlock(len(doc.Body)-1, table) // before the trailing sectPr

	toc := doc.AddParagraph("beta in contents", "")
	toc.StyleID = "TOC1"

	count := ReplaceEverywhere(doc, "beta", "gamma")
	if count != 3 {
		t.Fatalf("count = %d, want 3", count)
	}
	want := []string{"alpha gamma", "no match here", "gamma again", "beta in contents"}
	got := paraTexts(doc)
	if len(got) != len(want) {
		t.Fatalf("paragraphs = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("paragraph %d = %q, want %q", i, got[i], want[i])
		}
	}
	if cellPara.Text() != "cell gamma" {
		t.Errorf("table cell = %q, want %q", cellPara.Text(), "cell gamma")
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"  hello   world ", "hello world"},
		{"tab\tand\nnewline", "tab and newline"},
		{"ﬁle", "file"}, // NFKC expands the ligature
		{"", ""},
		{"already normal", "already normal"},
	}
	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
