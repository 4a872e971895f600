// Package adapter contains the filesystem, archive, persistence and device
// adapters the tracehook domain layer is wired to.
package adapter

import (
	"crypto/sha256"
	"fmt"
	"io"
	"os"

	m "tracehook.dev/pkg/tracehook/internal/model"
)

// StagingFSAdapter abstracts the filesystem operations the pipeline performs
// on a package's staging tree, so the domain layer can be tested without
// touching the disk.
type StagingFSAdapter interface {
	// HashFile returns the SHA-256 of the file at path.
	HashFile(path m.Path) (string, error)

	// FileInfo returns metadata for a path.
	FileInfo(path m.Path) (os.FileInfo, error)

	// RemoveAll removes a directory and all its contents.
	RemoveAll(path m.Path) error
}

// LocalStagingFSAdapter implements StagingFSAdapter with the os package.
type LocalStagingFSAdapter struct{}

// NewLocalStagingFSAdapter constructs a LocalStagingFSAdapter.
func NewLocalStagingFSAdapter() *LocalStagingFSAdapter {
	return &LocalStagingFSAdapter{}
}

// HashFile returns the SHA-256 hash of the file at the provided path.
func (a *LocalStagingFSAdapter) HashFile(path m.Path) (string, error) {
	f, err := os.Open(string(path))
	if err != nil {
		return "", err
	}

	defer func() {
		_ = f.Close()
	}()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}

	return fmt.Sprintf("%x", h.Sum(nil)), nil
}

// FileInfo returns os.FileInfo metadata for the given path.
func (a *LocalStagingFSAdapter) FileInfo(path m.Path) (os.FileInfo, error) {
	return os.Stat(string(path))
}

// RemoveAll removes a directory and all its contents.
func (a *LocalStagingFSAdapter) RemoveAll(path m.Path) error {
	return os.RemoveAll(string(path))
}
