package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// DiskStore writes uploads to a local directory. Files are served back by
// the HTTP layer as static assets under publicPrefix.
type DiskStore struct {
	dir          string
	publicPrefix string
}

// NewDiskStore ensures dir exists and returns a DiskStore serving objects
// under publicPrefix (e.g. "/uploads").
func NewDiskStore(dir, publicPrefix string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &DiskStore{dir: dir, publicPrefix: publicPrefix}, nil
}

// Dir returns the directory static files are served from.
func (s *DiskStore) Dir() string {
	return s.dir
}

// PublicPrefix returns the URL path assets are served under.
func (s *DiskStore) PublicPrefix() string {
	return s.publicPrefix
}

func (s *DiskStore) Save(ctx context.Context, ownerID, filename string, r io.Reader, size int64, contentType string) (string, error) {
	// Base guards against traversal via a crafted original filename.
	name := filepath.Base(objectKey(ownerID, filename))

	f, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		_ = os.Remove(f.Name())
		return "", fmt.Errorf("write upload file: %w", err)
	}
	return s.publicPrefix + "/" + name, nil
}

func (s *DiskStore) Remove(ctx context.Context, url string) error {
	err := os.Remove(filepath.Join(s.dir, filepath.Base(url)))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
