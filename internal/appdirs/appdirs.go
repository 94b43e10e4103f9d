package appdirs

import (
	"os"
	"path/filepath"
)

const (
	appDirName = "docbench"
)

func DataDir() (string, error) {
	if override := os.Getenv("DOCBENCH_DATA_DIR"); override != "" {
		return override, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, appDirName), nil
}

// BackupsDir holds pre-mutation copies of documents when backup_on_save is
// enabled in settings.
func BackupsDir(dataDir string) string {
	return filepath.Join(dataDir, "backups")
}
