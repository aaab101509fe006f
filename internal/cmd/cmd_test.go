package cmd

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"menukeeper/internal/catalog"
	"menukeeper/internal/config"
	"menukeeper/internal/kvstorage/memory"

	"go.uber.org/zap"
)

func setupTestApp(t *testing.T, flavor catalog.Flavor) (*App, *memory.Store) {
	t.Helper()
	store := memory.New()
	return openTestApp(t, flavor, store), store
}

// openTestApp loads a fresh App over store, the way a new mk process would.
func openTestApp(t *testing.T, flavor catalog.Flavor, store *memory.Store) *App {
	t.Helper()
	mgr, err := catalog.New(catalog.Options{Flavor: flavor, Store: store})
	if err != nil {
		t.Fatalf("catalog.New: %v", err)
	}
	if err := mgr.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	return &App{
		Catalog:     mgr,
		ConfigStore: config.NewMemStore(config.DefaultValues()),
		Logger:      zap.NewNop(),
		In:          &bytes.Buffer{},
		Out:         &bytes.Buffer{},
		Err:         &bytes.Buffer{},
	}
}

// fastRetries removes the pause between save attempts for the test.
func fastRetries(t *testing.T) {
	t.Helper()
	prev := saveRetryDelay
	saveRetryDelay = 0
	t.Cleanup(func() { saveRetryDelay = prev })
}

// mustAdd adds an item directly through the manager and returns its ID.
func mustAdd(t *testing.T, app *App, d catalog.Draft) string {
	t.Helper()
	items, err := app.Catalog.Add(context.Background(), d)
	if err != nil {
		t.Fatalf("Add(%+v): %v", d, err)
	}
	return items[len(items)-1].ID
}

func latte() catalog.Draft {
	return catalog.Draft{Name: "Latte", Price: "3.5", Type: "hot", Image: "img://latte"}
}

// extractAddedID extracts the item ID from add command output.
// The output format is:
//
//	✓ Added item: itm-xxx
//	  Name:  ...
//	  Price: ...
func extractAddedID(output string) string {
	for _, line := range strings.Split(output, "\n") {
		if _, id, ok := strings.Cut(line, "Added item:"); ok {
			return strings.TrimSpace(id)
		}
	}
	return ""
}
