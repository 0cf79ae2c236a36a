package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Rensjo/habitquestd/internal/model"
)

const (
	configFileName   = "notification_config.json"
	activityFileName = "activity_data.json"
)

// FileStore keeps each document as a pretty-printed JSON file. Writes go
// through a temp file in the same directory and are renamed into place, so a
// crash mid-write leaves the previous document intact.
type FileStore struct {
	dir ConfigDirectory
}

func NewFileStore(dir ConfigDirectory) *FileStore {
	return &FileStore{dir: dir}
}

func (s *FileStore) SaveConfig(cfg model.NotificationConfig) error {
	return s.writeDocument(configFileName, cfg)
}

func (s *FileStore) LoadConfig() (model.NotificationConfig, bool, error) {
	var cfg model.NotificationConfig
	ok, err := s.readDocument(configFileName, &cfg)
	return cfg, ok, err
}

func (s *FileStore) SaveActivity(act model.ActivityData) error {
	return s.writeDocument(activityFileName, act)
}

func (s *FileStore) LoadActivity() (model.ActivityData, bool, error) {
	var act model.ActivityData
	ok, err := s.readDocument(activityFileName, &act)
	return act, ok, err
}

func (s *FileStore) writeDocument(name string, doc any) error {
	dir, err := s.dir.Resolve()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNoConfigDir, err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("storage: create %s: %w", dir, err)
	}
	payload, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("storage: encode %s: %w", name, err)
	}
	path := filepath.Join(dir, name)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, append(payload, '\n'), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

func (s *FileStore) readDocument(name string, out any) (bool, error) {
	dir, err := s.dir.Resolve()
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrNoConfigDir, err)
	}
	raw, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return false, fmt.Errorf("storage: decode %s: %w", name, err)
	}
	return true, nil
}
