package edit

import (
	"testing"

	"docbench/engine/internal/docx"
)

func TestReplaceRange(t *testing.T) {
	doc := newDoc(t, "zero", "one", "two", "three")

	removed, err := ReplaceRange(doc, 1, 2, []string{"a", "b", "c"}, "", false)
	if err != nil {
		t.Fatalf("replace: %v", err)
	}
	if removed != 2 {
		t.Fatalf("removed = %d, want 2", removed)
	}
	want := []string{"zero", "a", "b", "c", "three"}
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

func TestReplaceRangeAtDocumentStart(t *testing.T) {
	doc := newDoc(t, "zero", "one")
	if _, err := ReplaceRange(doc, 0, 0, []string{"new zero"}, "", false); err != nil {
		t.Fatalf("replace: %v", err)
	}
	got := paraTexts(doc)
	if got[0] != "new zero" || got[1] != "one" {
		t.Fatalf("paragraphs = %v", got)
	}
}

func TestReplaceRangeStyleResolution(t *testing.T) {
	tests := []struct {
		name          string
		styleName     string
		preserveStyle bool
		wantStyle     string
	}{
		{"explicit wins", "Heading 2", true, "Heading 2"},
		{"preserve carries first replaced", "", true, "Heading 1"},
		{"default otherwise", "", false, "Normal"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := newDoc(t)
			doc.AddParagraph("head", "Heading 1")
			doc.AddParagraph("body", "")

			if _, err := ReplaceRange(doc, 0, 1, []string{"replacement"}, tt.styleName, tt.preserveStyle); err != nil {
				t.Fatalf("replace: %v", err)
			}
			p := doc.Paragraphs()[0]
			if got := doc.StyleNameOf(p); got != tt.wantStyle {
				t.Fatalf("style = %q, want %q", got, tt.wantStyle)
			}
		})
	}
}

func TestRangeValidation(t *testing.T) {
	doc := newDoc(t, "zero", "one", "two")

	tests := []struct {
		name       string
		start, end int
		wantMsg    string
	}{
		{"negative start", -1, 1, "start_index (-1) must be >= 0"},
		{"end past count", 0, 3, "end_index (3) exceeds paragraph count (3)"},
		{"inverted", 2, 1, "start_index (2) > end_index (1)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DeleteRange(doc, tt.start, tt.end)
			if err == nil {
				t.Fatal("invalid range accepted")
			}
			if err.Error() != tt.wantMsg {
				t.Fatalf("error = %q, want %q", err.Error(), tt.wantMsg)
			}
			if got := len(doc.Paragraphs()); got != 3 {
				t.Fatalf("document mutated on invalid range: %d paragraphs", got)
			}
		})
	}
}

func TestDeleteRange(t *testing.T) {
	doc := newDoc(t, "zero", "one", "two", "three")
	removed, err := DeleteRange(doc, 1, 2)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if removed != 2 {
		t.Fatalf("removed = %d, want 2", removed)
	}
	got := paraTexts(doc)
	if len(got) != 2 || got[0] != "zero" || got[1] != "three" {
		t.Fatalf("paragraphs = %v", got)
	}
}

func TestReplaceParagraph(t *testing.T) {
	doc := newDoc(t)
	doc.AddParagraph("heading text", "Heading 2")
	p := doc.Paragraphs()[0]
	sz := 28
	p.Runs()[0].Props.FontSize = sz
	p.Runs()[0].Props.FontName = "Georgia"

	if err := ReplaceParagraph(doc, 0, "plain **strong** *slanted*", true); err != nil {
		t.Fatalf("replace: %v", err)
	}
	if doc.StyleNameOf(p) != "Heading 2" {
		t.Fatalf("style changed to %q", doc.StyleNameOf(p))
	}
	runs := p.Runs()
	if len(runs) != 4 {
		t.Fatalf("runs = %d, want 4", len(runs))
	}
	if runs[0].Text != "plain " || runs[0].Props.Bold != nil {
		t.Errorf("run 0 = %q bold=%v", runs[0].Text, runs[0].Props.Bold)
	}
	if runs[1].Text != "strong" || runs[1].Props.Bold == nil || !*runs[1].Props.Bold {
		t.Errorf("run 1 = %q, want bold %q", runs[1].Text, "strong")
	}
	if runs[3].Text != "slanted" || runs[3].Props.Italic == nil || !*runs[3].Props.Italic {
		t.Errorf("run 3 = %q, want italic %q", runs[3].Text, "slanted")
	}
	for i, r := range runs {
		if r.Props.FontSize != sz || r.Props.FontName != "Georgia" {
			t.Errorf("run %d lost carried formatting: %+v", i, r.Props)
		}
	}
}

func TestReplaceParagraphLiteral(t *testing.T) {
	doc := newDoc(t, "old")
	if err := ReplaceParagraph(doc, 0, "keep **stars**", false); err != nil {
		t.Fatalf("replace: %v", err)
	}
	runs := doc.Paragraphs()[0].Runs()
	if len(runs) != 1 || runs[0].Text != "keep **stars**" {
		t.Fatalf("runs = %+v, want one literal run", runs)
	}
}

func TestReplaceParagraphIndexOutOfRange(t *testing.T) {
	doc := newDoc(t, "only")
	err := ReplaceParagraph(doc, 3, "x", false)
	if err == nil {
		t.Fatal("out-of-range index accepted")
	}
	want := "invalid paragraph index: 3. Document has 1 paragraphs."
	if err.Error() != want {
		t.Fatalf("error = %q, want %q", err.Error(), want)
	}
}

func TestInsertParagraphsNear(t *testing.T) {
	t.Run("after", func(t *testing.T) {
		doc := newDoc(t, "alpha", "anchor here", "omega")
		idx, err := InsertParagraphsNear(doc, "anchor", []string{"x", "y"}, "", false, nil)
		if err != nil {
			t.Fatalf("insert: %v", err)
		}
		if idx != 1 {
			t.Fatalf("anchor index = %d, want 1", idx)
		}
		want := []string{"alpha", "anchor here", "x", "y", "omega"}
		got := paraTexts(doc)
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("paragraph %d = %q, want %q", i, got[i], want[i])
			}
		}
	})

	t.Run("before", func(t *testing.T) {
		doc := newDoc(t, "anchor here", "omega")
		if _, err := InsertParagraphsNear(doc, "anchor", []string{"x"}, "", true, nil); err != nil {
			t.Fatalf("insert: %v", err)
		}
		got := paraTexts(doc)
		if got[0] != "x" || got[1] != "anchor here" {
			t.Fatalf("paragraphs = %v", got)
		}
	})

	t.Run("numbering applied per paragraph", func(t *testing.T) {
		doc := newDoc(t, "anchor")
		num := &docx.Numbering{NumID: 2, Level: 0}
		if _, err := InsertParagraphsNear(doc, "anchor", []string{"x", "y"}, "List Paragraph", false, num); err != nil {
			t.Fatalf("insert: %v", err)
		}
		paras := doc.Paragraphs()
		if paras[1].Numbering == nil || paras[2].Numbering == nil {
			t.Fatal("numbering not applied")
		}
		if paras[1].Numbering == paras[2].Numbering {
			t.Fatal("numbering shared between paragraphs")
		}
		if paras[1].Numbering.NumID != 2 {
			t.Fatalf("numID = %d, want 2", paras[1].Numbering.NumID)
		}
	})

	t.Run("missing anchor", func(t *testing.T) {
		doc := newDoc(t, "alpha")
		if _, err := InsertParagraphsNear(doc, "nope", []string{"x"}, "", false, nil); err == nil {
			t.Fatal("missing anchor accepted")
		}
	})
}

func TestFindAnchorParagraphSkipsTOC(t *testing.T) {
	doc := newDoc(t)
	toc := doc.AddParagraph("target in contents", "")
	toc.StyleID = "TOC1"
	doc.AddParagraph("real target", "")

	if got := FindAnchorParagraph(doc, "target"); got != 1 {
		t.Fatalf("anchor index = %d, want 1", got)
	}
}
