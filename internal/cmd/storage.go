package cmd

import (
	"context"
	"errors"
	"fmt"

	"menukeeper/internal/config"
	"menukeeper/internal/kvstorage"
	kvfs "menukeeper/internal/kvstorage/filesystem"
	"menukeeper/internal/kvstorage/memory"
	"menukeeper/internal/kvstorage/mongodb"
)

// openStore selects the catalog backend from config. The returned closer
// may be nil.
func openStore(ctx context.Context, cfg config.Store, dir string, ephemeral bool) (kvstorage.KVStore, func(context.Context) error, error) {
	if ephemeral {
		return memory.New(), nil, nil
	}

	table := config.Lookup(cfg, config.KeyTable, "catalog")
	switch backend := config.Lookup(cfg, config.KeyBackend, config.BackendFilesystem); backend {
	case config.BackendFilesystem:
		if dir == "" {
			return nil, nil, errors.New("filesystem backend needs a .menukeeper directory; run 'mk init'")
		}
		store, err := kvfs.New(dir, table)
		if err != nil {
			return nil, nil, fmt.Errorf("opening catalog store: %w", err)
		}
		return store, nil, nil
	case config.BackendMongoDB:
		uri, _ := cfg.Get(config.KeyMongoURI)
		store, err := mongodb.Connect(ctx, uri, config.Lookup(cfg, config.KeyMongoDB, "menukeeper"), table)
		if err != nil {
			return nil, nil, fmt.Errorf("connecting to mongodb: %w", err)
		}
		return store, store.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", backend)
	}
}
