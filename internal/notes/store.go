package notes

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
)

type Store struct {
	path string
}

// NewStore keeps notes in a single JSON file under the user's data directory.
func NewStore() (Store, error) {
	dir, err := dataHome()
	if err != nil {
		return Store{}, err
	}
	return Store{path: filepath.Join(dir, "verdiff", "notes.json")}, nil
}

// NewStoreAt is for tests and callers that manage their own location.
func NewStoreAt(path string) Store {
	return Store{path: path}
}

func (s Store) Load() ([]Note, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []Note{}, nil
		}
		return nil, err
	}

	var out []Note
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s Store) Save(notes []Note) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}

	b, err := json.MarshalIndent(notes, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, b, 0o644)
}

func dataHome() (string, error) {
	if xdg := strings.TrimSpace(os.Getenv("XDG_DATA_HOME")); xdg != "" {
		return xdg, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "share"), nil
}
