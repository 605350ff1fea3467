package types

import (
	"context"
	"errors"
)

// Storage keys. Each holds one JSON document.
const (
	KeyCustomers = "customers"
	KeyTheme     = "theme"
)

// KV is the persisted key-value storage the store writes through to.
// Values are opaque byte blobs.
type KV interface {
	// Get returns the value stored under key.
	// Returns ErrKeyNotFound if nothing is stored.
	Get(ctx context.Context, key string) ([]byte, error)

	// Put stores value under key, replacing any previous value.
	Put(ctx context.Context, key string, value []byte) error

	// Delete removes key. Deleting a missing key succeeds.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources. Idempotent.
	Close() error
}

// Storage errors.
var (
	ErrKeyNotFound = errors.New("key not found")
	ErrInvalidKey  = errors.New("invalid key")
	ErrClosed      = errors.New("storage is closed")
)
