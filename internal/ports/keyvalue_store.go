package ports

import "context"

// KeyValueStore defines the contract for the persistence backend holding user
// preferences. Get reports absence through the bool, not through the error.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Put(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}
