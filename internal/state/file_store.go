package state

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// FileStore keeps each key as <dir>/<key>.json.
type FileStore struct {
	rootDir string
}

func NewFileStore(directory string) *FileStore {
	return &FileStore{
		rootDir: directory,
	}
}

func (f *FileStore) filePath(key string) string {
	return filepath.Join(f.rootDir, key+".json")
}

func (f *FileStore) Load(_ context.Context, key string) ([]byte, Status, error) {
	file, err := os.Open(f.filePath(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, Absent, nil
	}
	if err != nil {
		return nil, Unloaded, fmt.Errorf("os.Open > %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	contents, err := io.ReadAll(file)
	if err != nil {
		return nil, Unloaded, fmt.Errorf("io.ReadAll > %w", err)
	}
	return contents, Loaded, nil
}

// Save writes to a temporary file first so a failed write leaves the previous value intact.
func (f *FileStore) Save(_ context.Context, key string, value []byte) error {
	if err := os.MkdirAll(f.rootDir, 0755); err != nil {
		return fmt.Errorf("os.MkdirAll(%s) > %w", f.rootDir, err)
	}

	file, err := os.CreateTemp(f.rootDir, key+".*.tmp")
	if err != nil {
		return fmt.Errorf("os.CreateTemp > %w", err)
	}
	tmpPath := file.Name()
	defer func() {
		_ = os.Remove(tmpPath)
	}()

	if _, err := file.Write(value); err != nil {
		_ = file.Close()
		return fmt.Errorf("file.Write > %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("file.Close > %w", err)
	}
	if err := os.Rename(tmpPath, f.filePath(key)); err != nil {
		return fmt.Errorf("os.Rename > %w", err)
	}
	return nil
}
