// Package config contains the key-value configuration slot stored alongside
// the snippet table. It holds the encryption-enabled flag, the per-store
// key derivation salt, and the key verifier.
package config

import "context"

// Repository is a small string key-value store.
type Repository interface {
	// Get returns the value for key; ok is false when the key is absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)

	// Set upserts a value.
	Set(ctx context.Context, key, value string) error

	// Delete removes a key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}
