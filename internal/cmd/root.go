package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"menukeeper/internal/catalog"
	"menukeeper/internal/config"
	"menukeeper/internal/config/yamlstore"
	"menukeeper/internal/idgen"
	"menukeeper/internal/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// AppProvider lazily initializes the App on first use.
type AppProvider struct {
	once sync.Once
	app  *App
	err  error

	// Config captured from flags before Execute()
	DataPath   string
	JSONOutput bool
	Verbose    bool
	Ephemeral  bool
	Production bool // JSON production logging, set by serve
	In         io.Reader
	Out        io.Writer
	Err        io.Writer
}

// Get returns the App, initializing it on first call.
func (p *AppProvider) Get() (*App, error) {
	p.once.Do(func() {
		if p.app == nil {
			p.app, p.err = p.init(context.Background())
		}
	})
	return p.app, p.err
}

// NewTestProvider creates a provider pre-initialized with the given App.
// Used for testing commands with a mock/test App.
func NewTestProvider(app *App) *AppProvider {
	return &AppProvider{
		app: app,
		In:  app.In,
		Out: app.Out,
		Err: app.Err,
	}
}

// Close releases the App if it was initialized.
func (p *AppProvider) Close(ctx context.Context) error {
	if p.app == nil {
		return nil
	}
	return p.app.Close(ctx)
}

func (p *AppProvider) init(ctx context.Context) (*App, error) {
	in, out, errOut := p.In, p.Out, p.Err
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}
	if errOut == nil {
		errOut = os.Stderr
	}

	app := &App{
		In:      in,
		Out:     out,
		Err:     errOut,
		JSON:    p.JSONOutput,
		Confirm: terminalConfirm(in, out),
	}

	switch {
	case p.Production:
		l, err := logger.New()
		if err != nil {
			return nil, fmt.Errorf("creating logger: %w", err)
		}
		app.Logger = l
	case p.Verbose:
		app.Logger = logger.NewConsole(errOut, true)
	default:
		app.Logger = zap.NewNop()
	}

	dir, err := config.FindDir(p.DataPath)
	switch {
	case err == nil:
		if err := config.LoadDotEnv(dir); err != nil {
			return nil, err
		}
		store, err := yamlstore.New(config.PathsFor(dir).ConfigFile)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
		app.ConfigDir = dir
		app.ConfigStore = store
	case p.Ephemeral:
		app.ConfigStore = config.NewMemStore(config.DefaultValues())
	default:
		return nil, err
	}
	config.ApplyEnvOverrides(app.ConfigStore)
	if err := config.Validate(app.ConfigStore); err != nil {
		return nil, err
	}

	mgr, closer, err := openCatalog(ctx, app, p.Ephemeral)
	if err != nil {
		return nil, err
	}
	if closer != nil {
		app.closers = append(app.closers, closer)
	}
	app.Catalog = mgr

	if err := mgr.Load(ctx); err != nil {
		var corrupt *catalog.CorruptStateError
		if !errors.As(err, &corrupt) {
			app.Close(ctx)
			return nil, err
		}
		fmt.Fprintf(errOut, "%s %v\n", app.WarnColor("warning:"), err)
	}
	return app, nil
}

// openCatalog builds the Manager from config over the selected backend.
func openCatalog(ctx context.Context, app *App, ephemeral bool) (*catalog.Manager, func(context.Context) error, error) {
	cfg := app.ConfigStore

	flavor, err := catalog.ParseFlavor(config.Lookup(cfg, config.KeyFlavor, string(catalog.FlavorMenu)))
	if err != nil {
		return nil, nil, err
	}
	format, err := idgen.ParseFormat(config.Lookup(cfg, config.KeyIDFormat, string(idgen.FormatShort)))
	if err != nil {
		return nil, nil, err
	}

	store, closer, err := openStore(ctx, cfg, app.ConfigDir, ephemeral)
	if err != nil {
		return nil, nil, err
	}

	mgr, err := catalog.New(catalog.Options{
		Flavor: flavor,
		Key:    config.Lookup(cfg, config.KeyCatalogKey, flavor.DefaultKey()),
		Store:  store,
		IDs:    idgen.NewAllocator(config.Lookup(cfg, config.KeyIDPrefix, "itm-"), format),
		Hooks:  catalog.Hooks{logger.CatalogHook(logger.Named(app.Logger, "catalog"))},
	})
	if err != nil {
		if closer != nil {
			closer(ctx)
		}
		return nil, nil, err
	}
	return mgr, closer, nil
}

// Execute runs the CLI.
func Execute() error {
	provider := &AppProvider{
		In:  os.Stdin,
		Out: os.Stdout,
		Err: os.Stderr,
	}
	defer provider.Close(context.Background())

	rootCmd := newRootCmd(provider)
	return rootCmd.Execute()
}

// newRootCmd creates the root command with all subcommands.
func newRootCmd(provider *AppProvider) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "mk",
		Short: "Keep a small coffee menu or stock inventory",
		Long: `menukeeper manages a single catalog of items: a coffee menu (name, price,
type and image) or a stock inventory (name, price and quantity).

The catalog lives in .menukeeper/ and is rewritten in full after every change.
A failed write is retried a few times; if it still fails the change is
discarded, the command exits non-zero and must be re-run.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags - these populate the provider config
	rootCmd.PersistentFlags().BoolVar(&provider.JSONOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().StringVar(&provider.DataPath, "path", "", "Path to repo or .menukeeper directory (default: search from cwd)")
	rootCmd.PersistentFlags().BoolVarP(&provider.Verbose, "verbose", "v", false, "Log catalog events to stderr")
	rootCmd.PersistentFlags().BoolVar(&provider.Ephemeral, "ephemeral", false, "Keep the catalog in memory only")

	rootCmd.AddCommand(newInitCmd(provider))
	rootCmd.AddCommand(newAddCmd(provider))
	rootCmd.AddCommand(newEditCmd(provider))
	rootCmd.AddCommand(newDeleteCmd(provider))
	rootCmd.AddCommand(newListCmd(provider))
	rootCmd.AddCommand(newSearchCmd(provider))
	rootCmd.AddCommand(newShowCmd(provider))
	rootCmd.AddCommand(newSaveCmd(provider))
	rootCmd.AddCommand(newConfigCmd(provider))
	rootCmd.AddCommand(newServeCmd(provider))

	return rootCmd
}
