package ports

import "context"

// BlobStore is a flat key-value store of opaque JSON blobs. It plays the role
// browser local storage plays for the single-page client.
type BlobStore interface {
	// Get returns the stored value, or domain.ErrBlobNotFound when key is absent.
	Get(ctx context.Context, key string) ([]byte, error)
	// Put replaces the value under key in a single write.
	Put(ctx context.Context, key string, value []byte) error
	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}

// Backend is a BlobStore owning a connection that can be probed and closed.
type Backend interface {
	BlobStore
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}
