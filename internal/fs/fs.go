// Package fs abstracts the file access fieldcheck needs, so configuration
// and record sources can be tested against an in-memory file system.
package fs

import (
	"errors"
	"os"
)

// FS defines the file system operations used by config and sources.
type FS interface {
	// ReadFile reads the entire file at path and returns its contents.
	ReadFile(path string) ([]byte, error)

	// WriteFile writes data to the file at path with the given permissions.
	WriteFile(path string, data []byte, perm os.FileMode) error

	// MkdirAll creates all directories in the path.
	MkdirAll(path string, perm os.FileMode) error

	// Stat returns file info for the given path.
	Stat(path string) (os.FileInfo, error)
}

// RealFS implements FS using the operating system.
type RealFS struct{}

func (r *RealFS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

func (r *RealFS) WriteFile(path string, data []byte, perm os.FileMode) error {
	return os.WriteFile(path, data, perm)
}

func (r *RealFS) MkdirAll(path string, perm os.FileMode) error {
	return os.MkdirAll(path, perm)
}

func (r *RealFS) Stat(path string) (os.FileInfo, error) {
	return os.Stat(path)
}

// Default is the shared RealFS instance.
var Default = &RealFS{}

// Exists reports whether path exists on fsys. Errors other than "not
// exist" are returned.
func Exists(fsys FS, path string) (bool, error) {
	_, err := fsys.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, err
}
