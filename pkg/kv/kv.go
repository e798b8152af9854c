// Package kv is the durable string key-value capability the session layer
// persists credentials through. Implementations must be safe for
// concurrent use.
package kv

import (
	"context"
	"errors"
)

var (
	ErrNotFound = errors.New("kv: not found")

	// ErrCorrupt means the backing data could not be decoded. Stores that
	// return it from Get recover on the next Set or Delete.
	ErrCorrupt = errors.New("kv: corrupt data")
)

type Store interface {
	// Get returns ErrNotFound when key has no value.
	Get(ctx context.Context, key string) (string, error)

	// Set creates or overwrites key.
	Set(ctx context.Context, key, value string) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}
