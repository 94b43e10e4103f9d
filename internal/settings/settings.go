package settings

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

const schemaVersion = 1

const (
	defaultStyle       = "Normal"
	defaultMaxDiffRows = 200
)

// Settings holds the engine's persisted configuration. Unknown fields in the
// file survive a load/save cycle only through backfill defaults, so the
// schema version gates future migrations.
type Settings struct {
	SchemaVersion int    `json:"schema_version"`
	DefaultStyle  string `json:"default_style"`
	BackupOnSave  bool   `json:"backup_on_save"`
	MaxDiffRows   int    `json:"max_diff_rows"`
}

type Store struct {
	path string
	mu   sync.Mutex
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Load() (*Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return defaultSettings(), nil
		}
		return nil, err
	}
	var settings Settings
	if err := json.Unmarshal(data, &settings); err != nil {
		return nil, err
	}
	backfillSettings(&settings)
	return &settings, nil
}

func (s *Store) Save(settings *Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	backfillSettings(settings)
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o600)
}

func (s *Store) Update(fn func(*Settings)) (*Settings, error) {
	settings, err := s.Load()
	if err != nil {
		return nil, err
	}
	fn(settings)
	return settings, s.Save(settings)
}

func defaultSettings() *Settings {
	return &Settings{
		SchemaVersion: schemaVersion,
		DefaultStyle:  defaultStyle,
		BackupOnSave:  false,
		MaxDiffRows:   defaultMaxDiffRows,
	}
}

func backfillSettings(settings *Settings) {
	if settings.SchemaVersion == 0 {
		settings.SchemaVersion = schemaVersion
	}
	if strings.TrimSpace(settings.DefaultStyle) == "" {
		settings.DefaultStyle = defaultStyle
	}
	if settings.MaxDiffRows <= 0 {
		settings.MaxDiffRows = defaultMaxDiffRows
	}
}
