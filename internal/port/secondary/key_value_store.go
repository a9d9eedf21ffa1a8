package secondary

import "context"

// KeyValueStore defines the secondary port for the small amount of durable
// state the service keeps (manager mapping, subscription lock).
//
// Implementations give no read-modify-write guarantees: two writers of the
// same key race and the last Put wins.
type KeyValueStore interface {
	// Get returns the stored value, or an error wrapping domain.ErrKeyNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Put stores value under key, replacing any previous value.
	Put(ctx context.Context, key string, value []byte) error

	// Exists reports whether key holds a value.
	Exists(ctx context.Context, key string) (bool, error)
}
