package storage

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/Rensjo/habitquestd/internal/model"
)

var ErrNoConfigDir = errors.New("storage: config directory unresolved")

// ConfigDirectory resolves the writable per-user directory holding the
// persisted documents. Resolution happens on every read and write so a
// directory that appears later in the process lifetime is picked up.
type ConfigDirectory interface {
	Resolve() (string, error)
}

type ConfigDirectoryFunc func() (string, error)

func (f ConfigDirectoryFunc) Resolve() (string, error) { return f() }

// UserConfigDirectory resolves to <user config dir>/habitquest.
func UserConfigDirectory() ConfigDirectory {
	return ConfigDirectoryFunc(func() (string, error) {
		base, err := os.UserConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(base, "habitquest"), nil
	})
}

// StaticDirectory resolves to a fixed path.
func StaticDirectory(path string) ConfigDirectory {
	return ConfigDirectoryFunc(func() (string, error) {
		return path, nil
	})
}

// Store persists the two scheduler documents. Loads report presence
// separately from failure: (zero, false, nil) means the document has never
// been written and the caller should keep its defaults.
type Store interface {
	SaveConfig(cfg model.NotificationConfig) error
	LoadConfig() (model.NotificationConfig, bool, error)

	SaveActivity(act model.ActivityData) error
	LoadActivity() (model.ActivityData, bool, error)
}
