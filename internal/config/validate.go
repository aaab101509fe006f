package config

import (
	"fmt"
	"net"
	"sort"
	"strings"
)

// validValues maps known keys to their allowed values.
// An empty slice means any value is accepted, subject to the type checks in Validate.
var validValues = map[string][]string{
	KeyFlavor:     {"menu", "inventory"},
	KeyBackend:    {BackendFilesystem, BackendMongoDB},
	KeyIDFormat:   {"short", "uuid"},
	KeyCatalogKey: {},
	KeyTable:      {},
	KeyMongoURI:   {},
	KeyMongoDB:    {},
	KeyIDPrefix:   {},
	KeyHTTPAddr:   {},
}

// IsKnownKey reports whether key is a recognised config key.
func IsKnownKey(key string) bool {
	_, ok := validValues[key]
	return ok
}

// KnownKeys returns the recognised config keys, sorted.
func KnownKeys() []string {
	keys := make([]string, 0, len(validValues))
	for k := range validValues {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ValidateValue checks a single key/value pair.
func ValidateValue(key, val string) error {
	allowed, known := validValues[key]
	if !known {
		return nil
	}
	if len(allowed) > 0 {
		if !contains(allowed, val) {
			return fmt.Errorf("%s: invalid value %q (allowed: %s)", key, val, strings.Join(allowed, ", "))
		}
		return nil
	}

	switch key {
	case KeyCatalogKey, KeyTable:
		if val == "" || strings.ContainsAny(val, `/\`) {
			return fmt.Errorf("%s: must be a non-empty name without path separators, got %q", key, val)
		}
	case KeyHTTPAddr:
		if _, _, err := net.SplitHostPort(val); err != nil {
			return fmt.Errorf("%s: must be host:port, got %q", key, val)
		}
	case KeyMongoURI:
		if val != "" && !strings.HasPrefix(val, "mongodb://") && !strings.HasPrefix(val, "mongodb+srv://") {
			return fmt.Errorf("%s: must start with mongodb:// or mongodb+srv://", key)
		}
	}
	return nil
}

// Validate checks all values in s for known keys. It returns an error
// describing every invalid value found, or nil if all values are valid.
func Validate(s Store) error {
	all := s.All()
	var errs []string
	for _, key := range KnownKeys() {
		val, ok := all[key]
		if !ok {
			continue
		}
		if err := ValidateValue(key, val); err != nil {
			errs = append(errs, err.Error())
		}
	}
	if all[KeyBackend] == BackendMongoDB && all[KeyMongoURI] == "" {
		errs = append(errs, fmt.Sprintf("%s: required when %s is %s", KeyMongoURI, KeyBackend, BackendMongoDB))
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("config validation failed:\n  %s", strings.Join(errs, "\n  "))
}

func contains(ss []string, s string) bool {
	for _, v := range ss {
		if v == s {
			return true
		}
	}
	return false
}
