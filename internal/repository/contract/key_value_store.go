package contract

import "context"

// KeyValueStore is an eventually consistent string-keyed blob store. There are
// no transactions; concurrent writers to one key race and the last write wins.
type KeyValueStore interface {
	// Get returns found=false with a nil error when the key is absent.
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Put(ctx context.Context, key, value string) error
	Ping(ctx context.Context) error
}
