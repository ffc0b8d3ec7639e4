package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// UploadStore accepts attachment bytes and returns a stored reference.
// Size ceilings are enforced upstream by the serving layer.
type UploadStore interface {
	Save(originalName string, r io.Reader) (string, error)
}

// DiskStore writes uploads to a local directory. Stored names are prefixed
// with a UUID so colliding original names never overwrite each other.
type DiskStore struct {
	dir string
}

// Ensure DiskStore implements UploadStore
var _ UploadStore = (*DiskStore)(nil)

// NewDiskStore creates the upload directory if needed.
func NewDiskStore(dir string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &DiskStore{dir: dir}, nil
}

// Save stores the content and returns the reference recorded on the report.
func (s *DiskStore) Save(originalName string, r io.Reader) (string, error) {
	name := uuid.New().String() + "_" + filepath.Base(originalName)

	f, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return "", fmt.Errorf("write upload file: %w", err)
	}
	return "uploads/" + name, nil
}
