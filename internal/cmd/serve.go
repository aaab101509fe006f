package cmd

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"menukeeper/internal/config"
	"menukeeper/internal/httpapi"
	"menukeeper/internal/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// newServeCmd creates the serve command.
func newServeCmd(provider *AppProvider) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the catalog over local HTTP",
		Long: `Serve the catalog as a JSON API until interrupted.

Routes:
  GET    /items?q=&where=   list, optionally filtered
  GET    /items/:id         one item (unique prefixes allowed)
  POST   /items             add
  PUT    /items/:id         replace fields
  DELETE /items/:id         delete
  POST   /save              write the catalog again
  GET    /healthz           liveness and dirty flag

The address defaults to http.addr (or MK_HTTP_ADDR).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !provider.Verbose {
				provider.Production = true
			}
			app, err := provider.Get()
			if err != nil {
				return err
			}

			if addr == "" {
				addr = config.Lookup(app.ConfigStore, config.KeyHTTPAddr, "127.0.0.1:8080")
			}
			ln, err := net.Listen("tcp", addr)
			if err != nil {
				return fmt.Errorf("listening on %s: %w", addr, err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			fmt.Fprintf(app.Out, "Serving %s catalog on http://%s\n", app.Catalog.Flavor(), ln.Addr())
			return serve(ctx, app, ln)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (host:port)")
	return cmd
}

// serve runs the HTTP API on ln until ctx is done, then shuts down gracefully.
func serve(ctx context.Context, app *App, ln net.Listener) error {
	base := app.Logger
	if base == nil {
		base = zap.NewNop()
	}
	handler := httpapi.NewHandler(app.Catalog, logger.Named(base, "handlers"))
	engine := httpapi.NewRouter(handler, logger.Named(base, "router"))

	srv := &http.Server{
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		base.Info("server starting", zap.String("addr", ln.Addr().String()))
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}
	base.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	return <-errCh
}
