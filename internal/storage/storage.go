// Package storage persists uploaded invoice documents on the local
// filesystem so processed invoices can be audited against their source.
package storage

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

var (
	// ErrInvalidName indicates the name is empty or escapes the storage root.
	ErrInvalidName = errors.New("storage: invalid file name")

	// ErrNotFound indicates the stored file does not exist.
	ErrNotFound = errors.New("storage: file not found")
)

// Storage stores and retrieves original invoice documents.
type Storage interface {
	// Save writes data under a unique name derived from filename and
	// returns the relative path it was stored at.
	Save(filename string, data []byte) (string, error)

	// Get reads a previously stored file by its relative path.
	Get(path string) ([]byte, error)

	// Delete removes a stored file. Deleting a missing file is not an error.
	Delete(path string) error
}

type localStorage struct {
	dir    string
	logger *slog.Logger
}

// NewLocalStorage creates the storage directory if needed and returns a
// Storage backed by it.
func NewLocalStorage(dir string, logger *slog.Logger) (Storage, error) {
	if logger == nil {
		logger = slog.Default()
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve storage dir: %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &localStorage{dir: abs, logger: logger}, nil
}

var reUnsafeChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// sanitizeFilename reduces a client-supplied name to a safe base name.
func sanitizeFilename(name string) string {
	base := filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	base = reUnsafeChars.ReplaceAllString(base, "_")
	base = strings.Trim(base, "._")
	return base
}

func (l *localStorage) Save(filename string, data []byte) (string, error) {
	base := sanitizeFilename(filename)
	if base == "" {
		return "", ErrInvalidName
	}
	stored := uuid.NewString() + "_" + base

	// Write to a temp name first so readers never observe a partial file.
	full := filepath.Join(l.dir, stored)
	tmp := full + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}
	if err := os.Rename(tmp, full); err != nil {
		os.Remove(tmp)
		return "", fmt.Errorf("rename file: %w", err)
	}

	l.logger.Debug("stored document", "path", stored, "bytes", len(data))
	return stored, nil
}

func (l *localStorage) Get(path string) ([]byte, error) {
	full, err := l.fullPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(full)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("read file: %w", err)
	}
	return data, nil
}

func (l *localStorage) Delete(path string) error {
	full, err := l.fullPath(path)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove file: %w", err)
	}
	return nil
}

func (l *localStorage) fullPath(path string) (string, error) {
	if path == "" {
		return "", ErrInvalidName
	}
	cleaned := filepath.Clean(path)
	if strings.HasPrefix(cleaned, "..") || filepath.IsAbs(cleaned) {
		return "", ErrInvalidName
	}
	return filepath.Join(l.dir, cleaned), nil
}
