package errinfo

import "testing"

func TestDocNotFound(t *testing.T) {
	err := DocNotFound("/tmp/missing.docx")
	if err.ErrorCode != CodeDocNotFound {
		t.Fatalf("expected doc not found")
	}
	if err.Phase != PhaseLoad {
		t.Fatalf("expected load phase, got %q", err.Phase)
	}
	if len(err.Actions) == 0 || err.Actions[0] != ActionCheckPath {
		t.Fatalf("expected check_path action")
	}
	if err.Document != "/tmp/missing.docx" {
		t.Fatalf("expected document path to be set")
	}
}

func TestLocateHelpers(t *testing.T) {
	idx := InvalidIndex("invalid paragraph index: 9")
	if idx.ErrorCode != CodeInvalidIndex || idx.Phase != PhaseLocate {
		t.Fatalf("expected invalid index in locate phase")
	}
	anchor := AnchorNotFound("start anchor missing")
	if anchor.ErrorCode != CodeAnchorNotFound || anchor.Retryable {
		t.Fatalf("expected non-retryable anchor not found")
	}
	header := HeaderNotFound("header missing")
	if header.ErrorCode != CodeHeaderNotFound {
		t.Fatalf("expected header not found")
	}
}

func TestIOHelpersAreRetryable(t *testing.T) {
	read := FileReadFailed("/tmp/a.docx", "permission denied")
	if read.ErrorCode != CodeFileReadFailed || !read.Retryable {
		t.Fatalf("expected retryable read failure")
	}
	write := FileWriteFailed("/tmp/a.docx", "disk full")
	if write.Phase != PhaseSave || !write.Retryable {
		t.Fatalf("expected retryable write failure in save phase")
	}
	validation := ValidationFailed(PhaseMutate, "bad")
	if validation.ErrorCode != CodeValidationFailed {
		t.Fatalf("expected validation failed")
	}
}
