package catalog

import (
	"context"
	"errors"
	"time"
)

// Verbs reported in Event.Verb.
const (
	VerbLoad   = "load"
	VerbAdd    = "add"
	VerbUpdate = "update"
	VerbDelete = "delete"
	VerbSave   = "save"
)

// Event describes one completed Manager operation.
type Event struct {
	Verb   string
	Flavor Flavor
	Key    string
	// ItemID is empty for load and save.
	ItemID string
	// Count is the collection length after the operation.
	Count int
	// Changed is false when the operation left the collection as it was
	// (a rejected draft, or deleting an ID that does not exist).
	Changed bool
	// Persisted is true when the collection was written successfully.
	Persisted  bool
	Err        error
	OccurredAt time.Time
}

// Hook receives manager events.
type Hook interface {
	Notify(ctx context.Context, event Event) error
}

// HookFunc allows plain functions to satisfy Hook.
type HookFunc func(ctx context.Context, event Event) error

// Notify dispatches to the underlying function.
func (fn HookFunc) Notify(ctx context.Context, event Event) error {
	if fn == nil {
		return nil
	}
	return fn(ctx, event)
}

// Hooks fans out events to zero or more hooks.
type Hooks []Hook

// Notify forwards the event to all hooks, returning a joined error if any fail.
func (h Hooks) Notify(ctx context.Context, event Event) error {
	if len(h) == 0 {
		return nil
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now()
	}
	var errs []error
	for _, hook := range h {
		if hook == nil {
			continue
		}
		if err := hook.Notify(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
