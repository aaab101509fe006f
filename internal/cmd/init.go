package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"menukeeper/internal/config"
	"menukeeper/internal/config/yamlstore"
	kvfs "menukeeper/internal/kvstorage/filesystem"

	"github.com/spf13/cobra"
)

type initOptions struct {
	force   bool
	flavor  string
	prefix  string
	backend string
}

// newInitCmd creates the init command.
// Note: init doesn't use the provider's App since it creates the .menukeeper directory.
func newInitCmd(provider *AppProvider) *cobra.Command {
	var opts initOptions

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new catalog",
		Long: `Initialize a new catalog in the current directory (or --path / MK_DIR).

Creates .menukeeper/config.yaml with defaults and, for the filesystem
backend, the directory the catalog blob is written to.

Examples:
  mk init
  mk init --flavor inventory --prefix inv
  mk init --backend mongodb`,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := provider.Out
			if out == nil {
				out = os.Stdout
			}
			return runInit(cmd.Context(), out, provider.DataPath, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.force, "force", false, "Reinitialize even if .menukeeper exists")
	cmd.Flags().StringVar(&opts.flavor, "flavor", "", "Catalog flavor: menu or inventory")
	cmd.Flags().StringVar(&opts.prefix, "prefix", "", "ID prefix for items (e.g. 'inv-')")
	cmd.Flags().StringVar(&opts.backend, "backend", "", "Storage backend: filesystem or mongodb")

	return cmd
}

func runInit(ctx context.Context, out io.Writer, path string, opts initOptions) error {
	// Path resolution: --path > MK_DIR > CWD
	basePath := path
	if basePath == "" {
		basePath = os.Getenv(config.EnvDir)
	}
	if basePath == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("getting current directory: %w", err)
		}
		basePath = cwd
	}

	absPath, err := filepath.Abs(basePath)
	if err != nil {
		return fmt.Errorf("resolving path: %w", err)
	}
	dir := absPath
	if filepath.Base(dir) != config.DirName {
		dir = filepath.Join(absPath, config.DirName)
	}

	paths := config.PathsFor(dir)
	if _, err := os.Stat(paths.ConfigFile); err == nil {
		if !opts.force {
			return errors.New("catalog already initialized (use --force to reinitialize)")
		}
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("checking %s: %w", paths.ConfigFile, err)
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating %s directory: %w", config.DirName, err)
	}

	store, err := yamlstore.New(paths.ConfigFile)
	if err != nil {
		return fmt.Errorf("creating config store: %w", err)
	}

	settings := []struct{ key, value string }{
		{config.KeyFlavor, opts.flavor},
		{config.KeyBackend, opts.backend},
		{config.KeyIDPrefix, normalizePrefix(opts.prefix)},
	}
	for _, s := range settings {
		if s.value == "" {
			continue
		}
		if err := config.ValidateValue(s.key, s.value); err != nil {
			return err
		}
		if err := store.Set(s.key, s.value); err != nil {
			return fmt.Errorf("setting %s: %w", s.key, err)
		}
	}
	if err := config.ApplyDefaults(store); err != nil {
		return fmt.Errorf("writing default config: %w", err)
	}

	if config.Lookup(store, config.KeyBackend, config.BackendFilesystem) == config.BackendFilesystem {
		table, err := kvfs.New(dir, config.Lookup(store, config.KeyTable, "catalog"))
		if err != nil {
			return fmt.Errorf("creating catalog store: %w", err)
		}
		if err := table.Init(ctx); err != nil {
			return fmt.Errorf("initializing catalog store: %w", err)
		}
	}

	flavor, _ := store.Get(config.KeyFlavor)
	fmt.Fprintf(out, "Initialized %s catalog at %s\n", flavor, dir)
	return nil
}

// normalizePrefix ensures a non-empty prefix ends with a dash.
func normalizePrefix(p string) string {
	if p == "" || p[len(p)-1] == '-' {
		return p
	}
	return p + "-"
}
