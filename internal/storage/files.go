// Package storage is the local-disk blob store for submitted artwork. Files
// live flat under a configured root directory and are addressed by name.
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

type FileStore struct {
	root string
}

func NewFileStore(root string) (*FileStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("creating storage root: %w", err)
	}
	return &FileStore{root: root}, nil
}

// Save streams r into the named file and returns the byte count written.
func (f *FileStore) Save(name string, r io.Reader) (int64, error) {
	dst, err := os.Create(f.Path(name))
	if err != nil {
		return 0, fmt.Errorf("creating file: %w", err)
	}
	defer dst.Close()

	written, err := io.Copy(dst, r)
	if err != nil {
		return written, fmt.Errorf("writing file: %w", err)
	}
	return written, nil
}

func (f *FileStore) Remove(name string) error {
	err := os.Remove(f.Path(name))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing file: %w", err)
	}
	return nil
}

// Path resolves a stored name to its absolute location under the root.
func (f *FileStore) Path(name string) string {
	return filepath.Join(f.root, filepath.Base(name))
}
