package config

// Store provides key-value access to configuration.
// Keys are flat strings (dotted keys like "catalog.flavor" are literal
// strings, not nested paths).
type Store interface {
	// Get returns the value for key and whether it was found.
	Get(key string) (string, bool)

	// Set writes key=value to the store and persists to disk.
	Set(key, value string) error

	// SetInMemory overrides key for this process only. Overrides win over
	// persisted values and are never written back.
	SetInMemory(key, value string)

	// Unset removes key from the store and persists to disk.
	Unset(key string) error

	// All returns a copy of all key-value pairs, overrides included.
	All() map[string]string
}

// Lookup returns the value for key, or def when the key is unset or empty.
func Lookup(s Store, key, def string) string {
	if s == nil {
		return def
	}
	if v, ok := s.Get(key); ok && v != "" {
		return v
	}
	return def
}
