package config

import "maps"

// MemStore is a Store that never touches disk. It backs --ephemeral runs
// outside a data directory.
type MemStore struct {
	data      map[string]string
	overrides map[string]string
}

var _ Store = (*MemStore)(nil)

// NewMemStore returns a MemStore seeded with a copy of kv.
func NewMemStore(kv map[string]string) *MemStore {
	s := &MemStore{data: maps.Clone(kv), overrides: map[string]string{}}
	if s.data == nil {
		s.data = map[string]string{}
	}
	return s
}

func (s *MemStore) Get(key string) (string, bool) {
	if v, ok := s.overrides[key]; ok {
		return v, true
	}
	v, ok := s.data[key]
	return v, ok
}

func (s *MemStore) Set(key, value string) error {
	s.data[key] = value
	return nil
}

func (s *MemStore) SetInMemory(key, value string) {
	s.overrides[key] = value
}

func (s *MemStore) Unset(key string) error {
	delete(s.data, key)
	return nil
}

func (s *MemStore) All() map[string]string {
	out := maps.Clone(s.data)
	maps.Copy(out, s.overrides)
	return out
}
