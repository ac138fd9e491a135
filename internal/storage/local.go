package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Local stores files on the local filesystem under a single directory. The
// directory is served by the HTTP layer at /uploads.
type Local struct {
	dir string
}

// NewLocal creates the upload directory if needed and returns a Local storage.
func NewLocal(dir string) (*Local, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory %s: %w", dir, err)
	}
	return &Local{dir: dir}, nil
}

// Dir returns the directory files are stored in.
func (l *Local) Dir() string {
	return l.dir
}

// Save writes the file content to disk under the given name.
func (l *Local) Save(ctx context.Context, fileName string, content io.Reader, size int64, contentType string) error {
	path := filepath.Join(l.dir, filepath.Base(fileName))

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file %s: %w", path, err)
	}
	defer f.Close()

	if _, err := io.Copy(f, content); err != nil {
		os.Remove(path)
		return fmt.Errorf("failed to write file %s: %w", path, err)
	}
	return nil
}

// Delete removes the file from disk. A missing file is not an error.
func (l *Local) Delete(ctx context.Context, fileName string) error {
	path := filepath.Join(l.dir, filepath.Base(fileName))
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file %s: %w", path, err)
	}
	return nil
}

// URL returns the serving path for the file.
func (l *Local) URL(fileName string) string {
	return "/uploads/" + filepath.Base(fileName)
}
