package config

// DefaultValues returns the default config map for the core keys.
// catalog.key is left unset so it follows the flavor.
func DefaultValues() map[string]string {
	return map[string]string{
		KeyFlavor:   "menu",
		KeyBackend:  BackendFilesystem,
		KeyTable:    "catalog",
		KeyMongoDB:  "menukeeper",
		KeyIDFormat: "short",
		KeyIDPrefix: "itm-",
		KeyHTTPAddr: "127.0.0.1:8080",
	}
}

// ApplyDefaults fills any missing core keys in s with their default values.
func ApplyDefaults(s Store) error {
	all := s.All()
	for k, v := range DefaultValues() {
		if _, exists := all[k]; exists {
			continue
		}
		if err := s.Set(k, v); err != nil {
			return err
		}
	}
	return nil
}
