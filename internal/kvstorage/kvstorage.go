// Package kvstorage defines the durable key-value storage contract the
// catalog persists its collection through. A catalog writes one blob per
// collection key; backends only see opaque bytes.
package kvstorage

import (
	"context"
	"fmt"
	"strings"
)

// KVStore defines the interface for generic key-value persistence.
// Each store operates on a single "table" (a directory, a collection, ...).
type KVStore interface {
	// Set stores a value for the given key.
	// If opts.FailIfExists is true and the key already exists, returns ErrAlreadyExists.
	// Otherwise, overwrites the existing value.
	Set(ctx context.Context, key string, value []byte, opts SetOptions) error

	// Get retrieves the value for the given key.
	// Returns ErrKeyNotFound if the key doesn't exist.
	Get(ctx context.Context, key string) ([]byte, error)

	// Update replaces the value for an existing key.
	// Returns ErrKeyNotFound if the key doesn't exist.
	Update(ctx context.Context, key string, value []byte) error

	// Delete removes a key and its value.
	// Returns ErrKeyNotFound if the key doesn't exist.
	Delete(ctx context.Context, key string) error

	// List returns all keys in the table.
	List(ctx context.Context) ([]string, error)
}

// SetOptions controls Set behavior.
type SetOptions struct {
	// FailIfExists causes Set to return ErrAlreadyExists if the key is already present.
	FailIfExists bool
}

// ValidateTableName checks that a table name is non-empty and usable as a
// single path element.
func ValidateTableName(name string) error {
	if name == "" {
		return fmt.Errorf("table name cannot be empty")
	}
	if strings.ContainsAny(name, "/\\") || name == "." || name == ".." {
		return fmt.Errorf("table name %q is not a single path element", name)
	}
	return nil
}

// ValidateKey checks that a key is non-empty and doesn't contain path separators.
func ValidateKey(key string) error {
	if key == "" {
		return fmt.Errorf("key cannot be empty: %w", ErrInvalidKey)
	}
	if strings.ContainsAny(key, "/\\") {
		return fmt.Errorf("key %q contains path separator: %w", key, ErrInvalidKey)
	}
	return nil
}
