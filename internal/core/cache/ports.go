package cache

import (
	"context"
	"time"
)

// Store defines the key-value operations the application needs from its
// backing store. This is a port that can be implemented by different
// providers (Redis, in-memory, etc.); the drop point repository builds its
// persistence on top of it.
type Store interface {
	// Get retrieves a value by key.
	// Returns the stored value or an error if not found or on failure.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value under the key with the specified TTL.
	// TTL of 0 means no expiration.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// SetNX stores a value only if the key does not exist yet. Returns
	// true if the value was stored. The check and the write are atomic on
	// the store, so concurrent writers cannot both succeed.
	SetNX(ctx context.Context, key string, value []byte, ttl time.Duration) (bool, error)

	// Keys returns every key matching the glob-style pattern.
	Keys(ctx context.Context, pattern string) ([]string, error)

	// Delete removes a value by key.
	Delete(ctx context.Context, key string) error

	// Ping checks if the store is reachable.
	Ping(ctx context.Context) error

	// Close closes the store connection.
	Close() error
}
