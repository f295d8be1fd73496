package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// File stores each collection as a human-readable JSON file under a
// data directory, one file per key. Writes go through a temp file and
// rename, so the last writer wins at whole-collection granularity.
type File struct {
	dir string
}

// NewFile creates a file backend rooted at dir.
func NewFile(dir string) *File {
	return &File{dir: dir}
}

func (f *File) path(key string) string {
	return filepath.Join(f.dir, key+".json")
}

func (f *File) Load(_ context.Context, key string) ([]byte, bool, error) {
	data, err := os.ReadFile(f.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("read %s: %w", key, err)
	}
	return data, true, nil
}

func (f *File) Save(_ context.Context, key string, data []byte) error {
	if err := os.MkdirAll(f.dir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	// Write to temp file first, then rename for atomicity.
	path := f.path(key)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("store %s: %w", key, err)
	}
	return nil
}

func (f *File) Close() error { return nil }
