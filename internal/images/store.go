package images

import (
	"context"
	"io"
)

// Store is the backing storage for uploaded post images. Refs are opaque
// strings; the post's image reference is the source of truth, not the file.
type Store interface {
	// Save writes the content under name and returns the reference to store
	// on the post.
	Save(ctx context.Context, name string, contentType string, r io.Reader) (string, error)
	// Remove deletes the file at ref. Removing an absent file is not an error.
	Remove(ctx context.Context, ref string) error
	// URL resolves a ref to the address clients fetch it from.
	URL(ref string) string
}
