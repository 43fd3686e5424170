package filestorage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/fajarws/schoolcore/internal/pkg/logger"
)

// Storage saves supporting documents and returns the opaque paths stored on
// the owning record.
type Storage interface {
	// Save stores the content of r under subPath and returns the stored path.
	// The original filename only contributes its extension.
	Save(r io.Reader, filename, subPath string) (string, error)

	// Delete removes a previously stored document.
	Delete(storedPath string) error

	// FullPath returns the absolute filesystem path for a stored path.
	FullPath(storedPath string) string
}

// LocalStorage stores documents on the local filesystem.
type LocalStorage struct {
	basePath string
}

// NewLocalStorage creates a LocalStorage rooted at basePath, creating the
// directory if needed.
func NewLocalStorage(basePath string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		logger.Error().Err(err).Str("path", basePath).Msg("Failed to create storage directory")
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}

	return &LocalStorage{basePath: basePath}, nil
}

// Save stores the content of r and returns the path relative to the storage
// root. Stored names are generated so concurrent uploads cannot collide.
func (ls *LocalStorage) Save(r io.Reader, filename, subPath string) (string, error) {
	dir := ls.basePath
	if subPath != "" {
		dir = filepath.Join(ls.basePath, subPath)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("failed to create subdirectory: %w", err)
		}
	}

	ext := filepath.Ext(filename)
	storedName := uuid.New().String() + ext
	dstPath := filepath.Join(dir, storedName)

	dst, err := os.Create(dstPath)
	if err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to create destination file")
		return "", fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, r); err != nil {
		_ = os.Remove(dstPath)
		return "", fmt.Errorf("failed to save file content: %w", err)
	}

	if subPath != "" {
		return filepath.ToSlash(filepath.Join(subPath, storedName)), nil
	}
	return storedName, nil
}

// Delete removes a stored document. Paths outside the storage root are
// rejected.
func (ls *LocalStorage) Delete(storedPath string) error {
	full := ls.FullPath(storedPath)
	if full == "" {
		return fmt.Errorf("invalid stored path: %s", storedPath)
	}
	if err := os.Remove(full); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// FullPath resolves a stored path against the storage root. Returns "" when
// the path would escape the root.
func (ls *LocalStorage) FullPath(storedPath string) string {
	full := filepath.Join(ls.basePath, filepath.FromSlash(storedPath))
	rel, err := filepath.Rel(ls.basePath, full)
	if err != nil || strings.HasPrefix(rel, "..") {
		return ""
	}
	return full
}
