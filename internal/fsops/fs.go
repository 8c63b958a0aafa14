// Package fsops provides filesystem operations with safety guarantees.
//
// All file access in epenv goes through the FS interface, which is backed by
// an afero.Fs so the same code runs against the real filesystem or an
// in-memory one in tests.
//
// Key features:
//   - Atomic writes using temp file + rename
//   - Open-or-create for backing stores that may not exist yet
//   - Identifier validation for profile names
package fsops

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// FS provides an abstraction for filesystem operations.
type FS interface {
	// Open opens a file for reading.
	Open(path string) (afero.File, error)

	// CreateIfMissing creates an empty file at path unless one exists.
	CreateIfMissing(path string, perm os.FileMode) error

	// Stat returns file info, following symlinks.
	Stat(path string) (os.FileInfo, error)

	// ReadDir lists a directory's entries sorted by name.
	ReadDir(path string) ([]os.FileInfo, error)

	// ReadFile reads the entire contents of a file.
	ReadFile(path string) ([]byte, error)

	// MkdirAll creates a directory and all parent directories.
	MkdirAll(path string, perm os.FileMode) error

	// AtomicWrite writes data to path atomically using temp file + rename.
	AtomicWrite(path string, data []byte, perm os.FileMode) error

	// Exists checks if a path exists.
	Exists(path string) (bool, error)

	// ValidateIdentifier validates an identifier for safety.
	ValidateIdentifier(id string) error
}

// RealFS implements FS on top of an afero.Fs.
type RealFS struct {
	fs afero.Fs
}

// New wraps an afero.Fs.
func New(fs afero.Fs) *RealFS {
	return &RealFS{fs: fs}
}

// NewRealFS creates a RealFS backed by the operating system.
func NewRealFS() *RealFS {
	return New(afero.NewOsFs())
}

// NewMemFS creates a RealFS backed by memory.
func NewMemFS() *RealFS {
	return New(afero.NewMemMapFs())
}

// Afero returns the underlying afero.Fs.
func (fs *RealFS) Afero() afero.Fs {
	return fs.fs
}

// Open opens a file for reading.
func (fs *RealFS) Open(path string) (afero.File, error) {
	return fs.fs.Open(path)
}

// CreateIfMissing creates an empty file at path when none exists.
func (fs *RealFS) CreateIfMissing(path string, perm os.FileMode) error {
	exists, err := fs.Exists(path)
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if exists {
		return nil
	}
	// No O_TRUNC: a file created concurrently keeps its contents.
	f, err := fs.fs.OpenFile(path, os.O_CREATE|os.O_WRONLY, perm)
	if err != nil {
		return err
	}
	return f.Close()
}

// Stat returns file info for path, following symlinks.
func (fs *RealFS) Stat(path string) (os.FileInfo, error) {
	return fs.fs.Stat(path)
}

// ReadDir lists a directory's entries sorted by name.
func (fs *RealFS) ReadDir(path string) ([]os.FileInfo, error) {
	return afero.ReadDir(fs.fs, path)
}

// ReadFile reads the entire contents of a file.
func (fs *RealFS) ReadFile(path string) ([]byte, error) {
	return afero.ReadFile(fs.fs, path)
}

// MkdirAll creates a directory and all parent directories.
func (fs *RealFS) MkdirAll(path string, perm os.FileMode) error {
	return fs.fs.MkdirAll(path, perm)
}

// AtomicWrite writes data to path atomically using temp file + rename.
func (fs *RealFS) AtomicWrite(path string, data []byte, perm os.FileMode) error {
	// Create parent directory if needed
	dir := filepath.Dir(path)
	if err := fs.fs.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create parent directory: %w", err)
	}

	// Create temp file in the same directory as target
	tmpFile, err := afero.TempFile(fs.fs, dir, ".epenv-tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	// Clean up temp file on error
	defer func() {
		if tmpFile != nil {
			_ = tmpFile.Close()
			_ = fs.fs.Remove(tmpPath)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		return fmt.Errorf("failed to write to temp file: %w", err)
	}

	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("failed to sync temp file: %w", err)
	}

	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := fs.fs.Chmod(tmpPath, perm); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}

	// Atomically rename temp file to target
	if err := fs.fs.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	// Success - don't clean up temp file
	tmpFile = nil
	return nil
}

// Exists checks if a path exists.
func (fs *RealFS) Exists(path string) (bool, error) {
	return afero.Exists(fs.fs, path)
}

// ValidateIdentifier validates an identifier (e.g. a profile name) for safety.
// Returns an error if the identifier contains invalid characters or path traversal attempts.
func (fs *RealFS) ValidateIdentifier(id string) error {
	if id == "" {
		return fmt.Errorf("invalid identifier: empty")
	}

	if strings.Contains(id, string(filepath.Separator)) || strings.Contains(id, "/") || strings.Contains(id, "\\") {
		return fmt.Errorf("invalid identifier: must not contain path separators")
	}

	if id == "." || id == ".." || (strings.HasPrefix(id, ".") && len(id) > 1 && id[1] == '.') {
		return fmt.Errorf("invalid identifier: path traversal not allowed")
	}

	if strings.ContainsAny(id, " \t\r\n") {
		return fmt.Errorf("invalid identifier: must not contain whitespace")
	}

	return nil
}
