package photostore

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"medlog/internal/shared/logger"
)

// FileSystemPhotoStore persists medicine photos under a root directory,
// sharded by date so no single directory grows unbounded. The stored path
// is relative to the root and is what gets persisted with the log entry.
type FileSystemPhotoStore struct {
	rootDir string
	logger  logger.Interface
	now     func() time.Time
}

func NewFileSystemPhotoStore(rootDir string, log logger.Interface) (*FileSystemPhotoStore, error) {
	if rootDir == "" {
		return nil, fmt.Errorf("photo store root directory is required")
	}
	if err := os.MkdirAll(rootDir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create photo store root: %w", err)
	}

	return &FileSystemPhotoStore{
		rootDir: rootDir,
		logger:  log,
		now:     time.Now,
	}, nil
}

// Save writes the photo stream and returns its relative path and byte count.
func (s *FileSystemPhotoStore) Save(name string, contentType string, r io.Reader) (string, int64, error) {
	now := s.now()
	dir := filepath.Join(now.Format("2006"), now.Format("01"), now.Format("02"))

	if err := os.MkdirAll(filepath.Join(s.rootDir, dir), 0o750); err != nil {
		return "", 0, fmt.Errorf("failed to create photo directory: %w", err)
	}

	fileName := fmt.Sprintf("%d_%s", now.UnixNano(), sanitizeName(name))
	relPath := filepath.Join(dir, fileName)

	f, err := os.OpenFile(filepath.Join(s.rootDir, relPath), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o640)
	if err != nil {
		return "", 0, fmt.Errorf("failed to create photo file: %w", err)
	}

	written, err := io.Copy(f, r)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		// Remove the partial file so the directory does not accumulate junk.
		_ = os.Remove(filepath.Join(s.rootDir, relPath))
		return "", 0, fmt.Errorf("failed to write photo: %w", err)
	}

	s.logger.Debugw("photo stored", "path", relPath, "bytes", written, "content_type", contentType)
	return relPath, written, nil
}

// Open returns a reader for a previously stored photo.
func (s *FileSystemPhotoStore) Open(relPath string) (io.ReadCloser, error) {
	clean := filepath.Clean(relPath)
	if strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return nil, fmt.Errorf("invalid photo path")
	}

	f, err := os.Open(filepath.Join(s.rootDir, clean))
	if err != nil {
		return nil, fmt.Errorf("failed to open photo: %w", err)
	}
	return f, nil
}

// Delete removes a stored photo. Missing files are not an error; cleanup may
// race with manual removal.
func (s *FileSystemPhotoStore) Delete(relPath string) error {
	clean := filepath.Clean(relPath)
	if strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return fmt.Errorf("invalid photo path")
	}

	if err := os.Remove(filepath.Join(s.rootDir, clean)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete photo: %w", err)
	}
	return nil
}

func sanitizeName(name string) string {
	name = filepath.Base(name)
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	if b.Len() == 0 {
		return "photo"
	}
	return b.String()
}
