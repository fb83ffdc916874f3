package photo

import (
	"fmt"
	"os"
	"path/filepath"
)

// FileStore persists photo payloads under generated file names.
type FileStore interface {
	Save(name string, data []byte) error
	Remove(name string) error
}

// DiskStore writes photos to a local directory served as static files.
type DiskStore struct {
	dir string
}

func NewDiskStore(dir string) *DiskStore {
	return &DiskStore{dir: dir}
}

func (s *DiskStore) Save(name string, data []byte) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("creating upload directory: %w", err)
	}
	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing photo file: %w", err)
	}
	return nil
}

func (s *DiskStore) Remove(name string) error {
	return os.Remove(filepath.Join(s.dir, name))
}
