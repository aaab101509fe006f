package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"
	"time"

	"menukeeper/internal/catalog"
)

// formatMoney renders a price with two decimals, e.g. $3.50.
func formatMoney(v float64) string {
	return "$" + strconv.FormatFloat(v, 'f', 2, 64)
}

// writeJSON encodes v to w, one value per line.
func writeJSON(w io.Writer, v any) error {
	return json.NewEncoder(w).Encode(v)
}

// printItems writes one row per item. Menu rows carry the drink type,
// inventory rows the quantity on hand.
func printItems(w io.Writer, flavor catalog.Flavor, items []catalog.Item) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, it := range items {
		switch flavor {
		case catalog.FlavorInventory:
			fmt.Fprintf(tw, "%s\t%s\t%s\tqty %s\n", it.ID, it.Name, formatMoney(it.Price), quantityText(it))
		default:
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", it.ID, it.Name, formatMoney(it.Price), it.Type)
		}
	}
	tw.Flush()
}

// printItem writes the full detail view of one item.
func printItem(w io.Writer, flavor catalog.Flavor, it catalog.Item) {
	fmt.Fprintf(w, "%s  %s\n", it.ID, it.Name)
	fmt.Fprintf(w, "  Price:    %s\n", formatMoney(it.Price))
	switch flavor {
	case catalog.FlavorInventory:
		fmt.Fprintf(w, "  Quantity: %s\n", quantityText(it))
	default:
		if it.Type != "" {
			fmt.Fprintf(w, "  Type:     %s\n", it.Type)
		}
		fmt.Fprintf(w, "  Image:    %s\n", it.Image)
	}
}

func quantityText(it catalog.Item) string {
	if it.Quantity == nil {
		return "-"
	}
	return strconv.Itoa(*it.Quantity)
}

// A failed write is retried a few times before the command gives up. The
// unsaved change lives only in this process, so it is lost on exit.
var (
	saveAttempts   = 3
	saveRetryDelay = 250 * time.Millisecond
)

// settle resolves a mutation's error. Persistence failures are retried with
// Save; when every attempt fails the user is told the change was not kept.
func settle(ctx context.Context, app *App, err error) error {
	if !errors.Is(err, catalog.ErrPersistence) {
		return err
	}
	for i := 0; i < saveAttempts; i++ {
		select {
		case <-ctx.Done():
			return err
		case <-time.After(saveRetryDelay):
		}
		if err = app.Catalog.Save(ctx); err == nil {
			return nil
		}
	}
	fmt.Fprintf(app.Err, "%s change was NOT saved and has been discarded; re-run the command once storage is writable\n", app.WarnColor("warning:"))
	return err
}
