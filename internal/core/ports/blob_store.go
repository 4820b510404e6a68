package ports

import (
	"context"
	"io"
)

// BlobStore abstracts where uploaded assets live (local disk, MinIO).
// Save writes the upload under a collision-avoiding key derived from the
// owner's ID and the original filename, and returns the public URL path
// clients use to fetch it.
type BlobStore interface {
	Save(ctx context.Context, ownerID, filename string, r io.Reader, size int64, contentType string) (string, error)
	Remove(ctx context.Context, url string) error
}
