// Package config handles menukeeper configuration: the flat key-value
// Store, defaults, validation, environment overrides and locating the
// .menukeeper data directory.
package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// DirName is the data directory created by `mk init`.
	DirName = ".menukeeper"
	// FileName is the config file inside DirName.
	FileName = "config.yaml"
)

// Config keys.
const (
	KeyFlavor     = "catalog.flavor"
	KeyCatalogKey = "catalog.key"
	KeyBackend    = "storage.backend"
	KeyTable      = "storage.table"
	KeyMongoURI   = "mongodb.uri"
	KeyMongoDB    = "mongodb.database"
	KeyIDFormat   = "id.format"
	KeyIDPrefix   = "id.prefix"
	KeyHTTPAddr   = "http.addr"
)

// Storage backends accepted by KeyBackend.
const (
	BackendFilesystem = "filesystem"
	BackendMongoDB    = "mongodb"
)

// Paths captures resolved locations for config and data.
type Paths struct {
	ConfigDir  string // path to .menukeeper directory
	ConfigFile string // path to .menukeeper/config.yaml
}

// PathsFor returns the Paths rooted at a .menukeeper directory.
func PathsFor(dir string) Paths {
	return Paths{ConfigDir: dir, ConfigFile: filepath.Join(dir, FileName)}
}

// FindDir locates the .menukeeper directory.
// If path is provided it must be the data directory itself or a directory
// containing one. Otherwise MK_DIR is consulted, then the
// working directory and its parents are searched.
func FindDir(path string) (string, error) {
	if path == "" {
		path = os.Getenv(EnvDir)
	}
	if path != "" {
		info, err := os.Stat(path)
		if err != nil {
			return "", fmt.Errorf("cannot access data directory %s: %w", path, err)
		}
		if !info.IsDir() {
			return "", fmt.Errorf("data path is not a directory: %s", path)
		}
		if filepath.Base(path) == DirName {
			return filepath.Abs(path)
		}
		candidate := filepath.Join(path, DirName)
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			return filepath.Abs(candidate)
		}
		return "", fmt.Errorf("no %s directory in %s; run 'mk init'", DirName, path)
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("cannot get current directory: %w", err)
	}
	dir := cwd
	for {
		candidate := filepath.Join(dir, DirName)
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("no %s directory found (searched from %s to /); run 'mk init'", DirName, cwd)
		}
		dir = parent
	}
}
