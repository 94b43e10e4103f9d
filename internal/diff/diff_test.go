package diff

import "testing"

func TestParagraphDiffRows(t *testing.T) {
	before := []string{"alpha", "beta", "tail"}
	after := []string{"alpha", "gamma", "tail"}
	hunks := ParagraphDiff(before, after)
	if len(hunks) == 0 {
		t.Fatalf("expected hunks")
	}
	rows := hunks[0].Rows
	if len(rows) == 0 {
		t.Fatalf("expected rows")
	}
	foundAdded := false
	foundRemoved := false
	for _, row := range rows {
		if row.Type == RowAdded {
			foundAdded = true
			if row.Text != "gamma" || row.NewRow != 2 {
				t.Fatalf("added row = %+v", row)
			}
		}
		if row.Type == RowRemoved {
			foundRemoved = true
			if row.Text != "beta" || row.OldRow != 2 {
				t.Fatalf("removed row = %+v", row)
			}
		}
	}
	if !foundAdded || !foundRemoved {
		t.Fatalf("expected added and removed rows")
	}
}

func TestParagraphDiffWithLimit(t *testing.T) {
	before := []string{"a", "b", "c"}
	after := []string{"a"}
	if _, skipped := ParagraphDiffWithLimit(before, after, 3); !skipped {
		t.Fatalf("expected oversized diff to be skipped")
	}
	hunks, skipped := ParagraphDiffWithLimit(before, after, 10)
	if skipped {
		t.Fatalf("expected diff within limit")
	}
	if len(hunks) != 1 || len(hunks[0].Rows) == 0 {
		t.Fatalf("expected diff rows")
	}
}
