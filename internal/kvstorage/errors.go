package kvstorage

import "errors"

var (
	// ErrKeyNotFound is returned when a key does not exist.
	ErrKeyNotFound = errors.New("key not found")

	// ErrAlreadyExists is returned when Set is called with FailIfExists
	// and the key already exists.
	ErrAlreadyExists = errors.New("key already exists")

	// ErrInvalidKey is returned for empty keys or keys that cannot be
	// mapped onto the backend (for example, keys containing path separators).
	ErrInvalidKey = errors.New("invalid key")
)
