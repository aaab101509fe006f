package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Environment variable names for menukeeper configuration.
const (
	EnvDir      = "MK_DIR"       // Path to the .menukeeper directory
	EnvFlavor   = "MK_FLAVOR"    // Override catalog.flavor
	EnvBackend  = "MK_BACKEND"   // Override storage.backend
	EnvHTTPAddr = "MK_HTTP_ADDR" // Override http.addr
	EnvMongoURI = "MONGODB_URI"  // Override mongodb.uri
)

// envKeys maps environment variables to the config keys they override.
var envKeys = map[string]string{
	EnvFlavor:   KeyFlavor,
	EnvBackend:  KeyBackend,
	EnvHTTPAddr: KeyHTTPAddr,
	EnvMongoURI: KeyMongoURI,
}

// LoadDotEnv loads dir/.env into the process environment if it exists.
// Variables already set in the environment are left alone.
func LoadDotEnv(dir string) error {
	path := filepath.Join(dir, ".env")
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed loading env file %s: %w", path, err)
	}
	return nil
}

// ApplyEnvOverrides copies set environment variables onto s in memory.
// These overrides are not persisted to the config file.
func ApplyEnvOverrides(s Store) {
	for env, key := range envKeys {
		if v := os.Getenv(env); v != "" {
			s.SetInMemory(key, v)
		}
	}
}
