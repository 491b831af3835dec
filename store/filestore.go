// Package store provides filesystem persistence for uploaded schedule images
// and generated calendar documents. Both directories hold request-scoped
// artifacts only: uploads are removed per request, calendars are retained
// until external cleanup.
package store

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// FileStore manages the two ephemeral directories used by the pipeline.
type FileStore struct {
	uploadDir   string
	calendarDir string
}

// New creates a FileStore and ensures both directories exist.
func New(uploadDir, calendarDir string) (*FileStore, error) {
	if uploadDir == "" || calendarDir == "" {
		return nil, errors.New("upload and calendar directories are required")
	}
	for _, dir := range []string{uploadDir, calendarDir} {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, errors.Wrapf(err, "failed to create directory %q", dir)
		}
	}
	return &FileStore{
		uploadDir:   uploadDir,
		calendarDir: calendarDir,
	}, nil
}

// UploadDir returns the directory holding uploaded source images.
func (s *FileStore) UploadDir() string {
	return s.uploadDir
}

// CalendarDir returns the directory holding generated calendar documents.
func (s *FileStore) CalendarDir() string {
	return s.calendarDir
}

// SaveUpload writes an uploaded image under a generated unique name, keeping
// the original extension, and returns the full path. Unique names mean
// concurrent requests never collide, so no locking is needed.
func (s *FileStore) SaveUpload(filename string, data []byte) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		ext = ".img"
	}
	path := filepath.Join(s.uploadDir, uuid.New().String()+ext)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", errors.Wrapf(err, "failed to save upload to %q", path)
	}
	return path, nil
}

// RemoveUpload deletes an uploaded image. Missing files are not an error:
// cleanup runs on every exit path and must be safe to repeat.
func (s *FileStore) RemoveUpload(path string) error {
	if path == "" {
		return nil
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "failed to remove upload %q", path)
	}
	return nil
}
