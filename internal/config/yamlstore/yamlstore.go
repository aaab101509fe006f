// Package yamlstore implements config.Store backed by a flat YAML file.
//
// The file holds flat key-value pairs; dotted keys such as "catalog.flavor"
// are literal strings, not nested paths. yaml.Marshal on map[string]string
// sorts keys, so the file stays deterministic and diff-friendly.
package yamlstore

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"syscall"

	"menukeeper/internal/config"

	"gopkg.in/yaml.v3"
)

// YAMLStore implements config.Store using a YAML file on disk.
type YAMLStore struct {
	path      string
	data      map[string]string
	overrides map[string]string // process-local, never written
}

var _ config.Store = (*YAMLStore)(nil)

// New creates a YAMLStore that reads from and writes to path.
// A missing file is an empty store; the file is created on the first Set.
func New(path string) (*YAMLStore, error) {
	s := &YAMLStore{
		path:      path,
		overrides: make(map[string]string),
	}
	if err := s.readFromDisk(); err != nil {
		return nil, err
	}
	return s, nil
}

// Path returns the backing file path.
func (s *YAMLStore) Path() string {
	return s.path
}

// Get returns the value for key and whether it was found.
func (s *YAMLStore) Get(key string) (string, bool) {
	if v, ok := s.overrides[key]; ok {
		return v, true
	}
	v, ok := s.data[key]
	return v, ok
}

// Set writes key=value and persists to disk.
func (s *YAMLStore) Set(key, value string) error {
	return s.withLock(func() {
		s.data[key] = value
	})
}

// SetInMemory overrides key for this process without persisting.
func (s *YAMLStore) SetInMemory(key, value string) {
	s.overrides[key] = value
}

// Unset removes key and persists to disk.
func (s *YAMLStore) Unset(key string) error {
	return s.withLock(func() {
		delete(s.data, key)
	})
}

// All returns a copy of all key-value pairs with overrides applied.
func (s *YAMLStore) All() map[string]string {
	out := maps.Clone(s.data)
	if out == nil {
		out = make(map[string]string)
	}
	maps.Copy(out, s.overrides)
	return out
}

// withLock takes an exclusive flock on <path>.lock, re-reads the file to pick
// up writes from other processes, applies fn, and writes the result back
// atomically.
func (s *YAMLStore) withLock(fn func()) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	f, err := os.OpenFile(s.path+".lock", os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return fmt.Errorf("opening config lock: %w", err)
	}
	defer f.Close()

	if err := syscall.Flock(int(f.Fd()), syscall.LOCK_EX); err != nil {
		return fmt.Errorf("acquiring config lock: %w", err)
	}
	defer syscall.Flock(int(f.Fd()), syscall.LOCK_UN)

	if err := s.readFromDisk(); err != nil {
		return err
	}

	fn()

	raw, err := yaml.Marshal(s.data)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	return atomicWrite(s.path, raw)
}

// readFromDisk reloads s.data from the config file.
func (s *YAMLStore) readFromDisk() error {
	fresh := make(map[string]string)
	raw, err := os.ReadFile(s.path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return fmt.Errorf("reading config file: %w", err)
	case len(raw) > 0:
		if err := yaml.Unmarshal(raw, &fresh); err != nil {
			return fmt.Errorf("parsing config file: %w", err)
		}
		if fresh == nil {
			fresh = make(map[string]string)
		}
	}
	s.data = fresh
	return nil
}

// atomicWrite writes data to a temp file beside path and renames it over path.
func atomicWrite(path string, data []byte) error {
	suffix := make([]byte, 8)
	if _, err := rand.Read(suffix); err != nil {
		return fmt.Errorf("generating random suffix: %w", err)
	}
	tmp := path + ".tmp." + hex.EncodeToString(suffix)

	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp) // best effort cleanup
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}
