package appdirs

import (
	"os"
	"testing"
)

func TestDataDirOverride(t *testing.T) {
	os.Setenv("DOCBENCH_DATA_DIR", "/tmp/docbench-test")
	defer os.Unsetenv("DOCBENCH_DATA_DIR")
	path, err := DataDir()
	if err != nil {
		t.Fatalf("data dir: %v", err)
	}
	if path != "/tmp/docbench-test" {
		t.Fatalf("expected override path, got %s", path)
	}

	backups := BackupsDir(path)
	if backups != "/tmp/docbench-test/backups" {
		t.Fatalf("expected backups dir, got %s", backups)
	}
}
