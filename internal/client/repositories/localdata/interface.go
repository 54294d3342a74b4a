// Package localdata provides the client-side persistent key/value store.
// It is the Go analog of the web client's local storage: the session token,
// the serialized user, and consent flags all live here.
package localdata

import "context"

// Repository describes the key/value operations backed by the local database.
type Repository interface {
	// Get returns the value stored under key, or (nil, nil) when absent.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set upserts the value under key.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}
