package storage

import (
	"context"

	"github.com/pkg/errors"
)

// ErrKeyNotFound is returned by Get when no value exists for the key.
var ErrKeyNotFound = errors.New("key not found")

// Store is the device-local persistence collaborator of the wallet core.
// Every call is atomic: SetBatch and Delete apply all of their keys or none,
// and reads observe completed writes (read-after-write consistency).
type Store interface {
	// Get returns the value stored under key or ErrKeyNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores the value under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error

	// SetBatch stores all entries in a single transaction.
	SetBatch(ctx context.Context, entries map[string][]byte) error

	// Delete removes the keys in a single transaction. Missing keys are not
	// an error.
	Delete(ctx context.Context, keys ...string) error

	// Close releases the underlying resources.
	Close() error
}
