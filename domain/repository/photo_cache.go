package repository

import (
	"context"

	"flickr-embed/domain/model"
)

// IPhotoCache is a key-value store for serialised photo metadata.
// Implementations must be safe for concurrent use.
type IPhotoCache interface {
	// Get returns the stored value, or nil with a nil error when the key is
	// absent or expired.
	Get(ctx context.Context, key string) ([]byte, error)
	// Set stores value under key until expiry lapses.
	Set(ctx context.Context, key string, value []byte, expiry model.Expiry) error
}

// IPinger is implemented by cache backends that can report connectivity.
type IPinger interface {
	Ping(ctx context.Context) error
}
