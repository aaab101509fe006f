// Package filesystem implements kvstorage.KVStore on the local filesystem.
// Each key is a <key>.json file inside a table directory; writes go through
// a temp file and rename so a crash never leaves a half-written blob behind.
package filesystem

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"menukeeper/internal/kvstorage"
)

const fileExt = ".json"

// Store implements kvstorage.KVStore using one file per key.
type Store struct {
	dir string // absolute path to the table directory
}

var _ kvstorage.KVStore = (*Store)(nil)

// New creates a filesystem KV store for table under root.
func New(root, table string) (*Store, error) {
	if err := kvstorage.ValidateTableName(table); err != nil {
		return nil, err
	}
	return &Store{dir: filepath.Join(root, table)}, nil
}

// Dir returns the table directory.
func (s *Store) Dir() string {
	return s.dir
}

// Init creates the table directory if it doesn't exist.
func (s *Store) Init(ctx context.Context) error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("creating table directory %s: %w", s.dir, err)
	}
	return nil
}

// Set stores a value for the given key.
func (s *Store) Set(ctx context.Context, key string, value []byte, opts kvstorage.SetOptions) error {
	if err := kvstorage.ValidateKey(key); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	path := s.keyPath(key)
	if opts.FailIfExists {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("key %q: %w", key, kvstorage.ErrAlreadyExists)
		}
	}
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("creating table directory %s: %w", s.dir, err)
	}
	return atomicWrite(path, value)
}

// Get retrieves the value for the given key.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	if err := kvstorage.ValidateKey(key); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.keyPath(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("key %q: %w", key, kvstorage.ErrKeyNotFound)
		}
		return nil, fmt.Errorf("reading key %q: %w", key, err)
	}
	return data, nil
}

// Update replaces the value for an existing key.
func (s *Store) Update(ctx context.Context, key string, value []byte) error {
	if err := kvstorage.ValidateKey(key); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	path := s.keyPath(key)
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("key %q: %w", key, kvstorage.ErrKeyNotFound)
	}
	return atomicWrite(path, value)
}

// Delete removes a key and its value.
func (s *Store) Delete(ctx context.Context, key string) error {
	if err := kvstorage.ValidateKey(key); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.Remove(s.keyPath(key)); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("key %q: %w", key, kvstorage.ErrKeyNotFound)
		}
		return fmt.Errorf("removing key %q: %w", key, err)
	}
	return nil
}

// List returns all keys in the table, sorted.
func (s *Store) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading table directory %s: %w", s.dir, err)
	}
	var keys []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, fileExt) {
			continue
		}
		keys = append(keys, strings.TrimSuffix(name, fileExt))
	}
	sort.Strings(keys)
	return keys, nil
}

func (s *Store) keyPath(key string) string {
	return filepath.Join(s.dir, key+fileExt)
}

// atomicWrite writes data next to path under a random temp name, syncs it,
// then renames it over path.
func atomicWrite(path string, data []byte) error {
	suffix := make([]byte, 8)
	if _, err := rand.Read(suffix); err != nil {
		return fmt.Errorf("generating random suffix: %w", err)
	}
	tmp := path + ".tmp." + hex.EncodeToString(suffix)

	f, err := os.OpenFile(tmp, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp) // best effort cleanup
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
