// Package metadata stores small client-local key/value pairs (the cached
// user snapshot and the bearer token) in the local SQLite database.
package metadata

import "context"

// Repository is a durable key/value store. Get returns (nil, nil) for a
// missing key so callers can distinguish "absent" from a read failure.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
