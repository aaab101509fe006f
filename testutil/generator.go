// Package testutil provides test utilities for populating catalogs.
package testutil

import (
	"context"
	"fmt"
	"math/rand"
	"strconv"

	"menukeeper/internal/catalog"
)

var (
	drinkNames = []string{"Latte", "Cappuccino", "Espresso", "Mocha", "Americano", "Flat White", "Cortado", "Macchiato"}
	stockNames = []string{"Beans", "Milk", "Oat Milk", "Cups", "Lids", "Sugar", "Syrup", "Napkins"}
	drinkTypes = []string{"hot", "cold", ""}
)

// ItemGenerator adds valid items to a catalog.Manager. It is seeded so runs
// are reproducible.
type ItemGenerator struct {
	mgr *catalog.Manager
	rnd *rand.Rand
	ids []string
}

// NewItemGenerator creates a new generator for mgr.
func NewItemGenerator(mgr *catalog.Manager, seed int64) *ItemGenerator {
	return &ItemGenerator{
		mgr: mgr,
		rnd: rand.New(rand.NewSource(seed)),
		ids: make([]string, 0),
	}
}

// IDs returns all item IDs created by this generator, in creation order.
func (g *ItemGenerator) IDs() []string {
	return g.ids
}

// Draft returns a valid draft for the manager's flavor. i keeps names unique.
func (g *ItemGenerator) Draft(i int) catalog.Draft {
	price := strconv.FormatFloat(float64(g.rnd.Intn(1000))/100, 'f', 2, 64)
	if g.mgr.Flavor() == catalog.FlavorInventory {
		return catalog.Draft{
			Name:     fmt.Sprintf("%s %d", stockNames[g.rnd.Intn(len(stockNames))], i),
			Price:    price,
			Quantity: strconv.Itoa(g.rnd.Intn(200)),
		}
	}
	return catalog.Draft{
		Name:  fmt.Sprintf("%s %d", drinkNames[g.rnd.Intn(len(drinkNames))], i),
		Price: price,
		Type:  drinkTypes[g.rnd.Intn(len(drinkTypes))],
		Image: fmt.Sprintf("img://%d", i),
	}
}

// Generate adds n items. It stops at the first error, which includes
// persistence failures; items added before then stay recorded in IDs.
func (g *ItemGenerator) Generate(ctx context.Context, n int) error {
	for i := 0; i < n; i++ {
		items, err := g.mgr.Add(ctx, g.Draft(len(g.ids)))
		if err != nil {
			return fmt.Errorf("add item %d: %w", i, err)
		}
		g.ids = append(g.ids, items[len(items)-1].ID)
	}
	return nil
}

// Cleanup deletes all items created by this generator.
func (g *ItemGenerator) Cleanup(ctx context.Context) error {
	for i := len(g.ids) - 1; i >= 0; i-- {
		if _, err := g.mgr.Delete(ctx, g.ids[i]); err != nil {
			return fmt.Errorf("cleanup item %s: %w", g.ids[i], err)
		}
	}
	g.ids = g.ids[:0]
	return nil
}
