// Package memory implements kvstorage.KVStore in process memory. It backs
// ephemeral sessions and tests; SetFailure injects write errors.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"menukeeper/internal/kvstorage"
)

// Store is a goroutine-safe in-memory KVStore.
type Store struct {
	mu      sync.Mutex
	data    map[string][]byte
	failSet error
	failN   int // remaining failing writes; 0 means until cleared
	writes  int
}

var _ kvstorage.KVStore = (*Store)(nil)

// New returns an empty Store.
func New() *Store {
	return &Store{data: make(map[string][]byte)}
}

// SetFailure makes every subsequent Set and Update return err.
// Pass nil to clear.
func (s *Store) SetFailure(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failSet = err
	s.failN = 0
}

// FailWrites makes the next n Set and Update calls return err, after
// which writes succeed again.
func (s *Store) FailWrites(err error, n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failSet = err
	s.failN = n
}

// writeErr reports the injected failure for one write. Callers hold mu.
func (s *Store) writeErr() error {
	err := s.failSet
	if err != nil && s.failN > 0 {
		s.failN--
		if s.failN == 0 {
			s.failSet = nil
		}
	}
	return err
}

// Writes reports how many successful Set/Update calls have been made.
func (s *Store) Writes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writes
}

// Set stores a copy of value under key.
func (s *Store) Set(ctx context.Context, key string, value []byte, opts kvstorage.SetOptions) error {
	if err := kvstorage.ValidateKey(key); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.writeErr(); err != nil {
		return err
	}
	if _, ok := s.data[key]; ok && opts.FailIfExists {
		return fmt.Errorf("key %q: %w", key, kvstorage.ErrAlreadyExists)
	}
	s.data[key] = append([]byte(nil), value...)
	s.writes++
	return nil
}

// Get returns a copy of the value stored under key.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	if err := kvstorage.ValidateKey(key); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.data[key]
	if !ok {
		return nil, fmt.Errorf("key %q: %w", key, kvstorage.ErrKeyNotFound)
	}
	return append([]byte(nil), v...), nil
}

// Update replaces the value for an existing key.
func (s *Store) Update(ctx context.Context, key string, value []byte) error {
	if err := kvstorage.ValidateKey(key); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.writeErr(); err != nil {
		return err
	}
	if _, ok := s.data[key]; !ok {
		return fmt.Errorf("key %q: %w", key, kvstorage.ErrKeyNotFound)
	}
	s.data[key] = append([]byte(nil), value...)
	s.writes++
	return nil
}

// Delete removes key.
func (s *Store) Delete(ctx context.Context, key string) error {
	if err := kvstorage.ValidateKey(key); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.data[key]; !ok {
		return fmt.Errorf("key %q: %w", key, kvstorage.ErrKeyNotFound)
	}
	delete(s.data, key)
	return nil
}

// List returns all keys, sorted.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	keys := make([]string, 0, len(s.data))
	for k := range s.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}
