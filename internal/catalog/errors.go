package catalog

import (
	"errors"
	"fmt"
)

// Sentinels matched by errors.Is against the typed errors below.
var (
	ErrValidation     = errors.New("validation failed")
	ErrNotFound       = errors.New("item not found")
	ErrCorruptState   = errors.New("persisted catalog is unreadable")
	ErrPersistence    = errors.New("catalog write failed")
	ErrFlavorMismatch = errors.New("stored items do not match the catalog flavor")
)

// ValidationError reports a user-correctable problem with one Draft field.
// No mutation has been applied.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// NotFoundError reports that no item has the requested ID.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("item %s not found", e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// CorruptStateError reports a stored blob that could not be decoded. The
// manager has already fallen back to an empty collection.
type CorruptStateError struct {
	Key string
	Err error
}

func (e *CorruptStateError) Error() string {
	return fmt.Sprintf("stored catalog %q is corrupt, starting empty: %v", e.Key, e.Err)
}

func (e *CorruptStateError) Is(target error) bool { return target == ErrCorruptState }

func (e *CorruptStateError) Unwrap() error { return e.Err }

// FlavorMismatchError reports a stored item that lacks a field the
// configured flavor requires, typically a menu catalog opened as inventory
// or the other way around. Nothing is loaded.
type FlavorMismatchError struct {
	Key    string
	Flavor Flavor
	ID     string
	Field  string
}

func (e *FlavorMismatchError) Error() string {
	return fmt.Sprintf("stored catalog %q does not look like a %s catalog: item %s has no %s (check catalog.flavor)",
		e.Key, e.Flavor, e.ID, e.Field)
}

func (e *FlavorMismatchError) Is(target error) bool { return target == ErrFlavorMismatch }

// PersistenceError reports a failed read or write of the stored blob.
// For writes, the in-memory mutation has already been applied and is kept.
type PersistenceError struct {
	Key string
	Op  string // "read" or "write"
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s catalog %q: %v", e.Op, e.Key, e.Err)
}

func (e *PersistenceError) Is(target error) bool { return target == ErrPersistence }

func (e *PersistenceError) Unwrap() error { return e.Err }
