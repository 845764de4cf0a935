// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"
)

//go:generate mockgen -source=store.go -destination=../mock/store_mock.go -package=mock

// ErrNotFound is returned by KeyValueStore.Get when the key holds no value.
var ErrNotFound = errors.New("key not found")

// KeyValueStore defines the device-local storage primitives the note
// repository is built on. Values are opaque strings.
// This abstraction allows swapping storage backends (SQLite, memory, etc.)
// without changing the repository layer.
type KeyValueStore interface {
	// Get returns the value stored under key, or ErrNotFound.
	Get(ctx context.Context, key string) (string, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the store.
	Close() error
}
