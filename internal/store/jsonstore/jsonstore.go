package jsonstore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/idilsaglam/sheettracker/internal/store"
)

// JSON-backed storage. Single file, human-readable, portable.
// Writes go through a temp file and a rename so a crash never leaves half a list.

const fileExt = ".json"

// File persists the question blob as <dir>/<StorageKey>.json.
type File struct {
	path string
}

func New(dir string) *File {
	return &File{path: filepath.Join(dir, store.StorageKey+fileExt)}
}

func (f *File) Path() string { return f.path }

func (f *File) Load() ([]byte, error) {
	b, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read file: %w", err)
	}
	return b, nil
}

func (f *File) Save(data []byte) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}
