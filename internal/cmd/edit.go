package cmd

import (
	"errors"
	"fmt"

	"menukeeper/internal/catalog"

	"github.com/spf13/cobra"
)

// newEditCmd creates the edit command.
func newEditCmd(provider *AppProvider) *cobra.Command {
	var flags itemFlags

	cmd := &cobra.Command{
		Use:   "edit <item-id> [flags]",
		Short: "Change an item's fields",
		Long: `Change one or more fields of an existing item.

Fields not given keep their current values; the resulting item is
validated as a whole. Supports unique ID prefixes.

Examples:
  mk edit itm-a1b --price 4
  mk edit itm-a1b --name "Flat white" --type hot`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := provider.Get()
			if err != nil {
				return err
			}

			if !anyChanged(cmd, "name", "price", "quantity", "type", "image") {
				return errors.New("no changes specified (use --name, --price, --quantity, --type or --image)")
			}

			current, err := app.Catalog.Resolve(args[0])
			if err != nil {
				return err
			}
			d := flags.overlay(cmd, catalog.DraftFrom(current))

			items, err := app.Catalog.Update(cmd.Context(), current.ID, d)
			if err := settle(cmd.Context(), app, err); err != nil {
				return err
			}

			if app.JSON {
				updated, _ := findItem(items, current.ID)
				if jerr := writeJSON(app.Out, updated); jerr != nil {
					return jerr
				}
			} else {
				fmt.Fprintf(app.Out, "%s Updated item: %s\n", app.SuccessColor("✓"), current.ID)
			}
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}

func anyChanged(cmd *cobra.Command, names ...string) bool {
	for _, n := range names {
		if cmd.Flags().Changed(n) {
			return true
		}
	}
	return false
}

func findItem(items []catalog.Item, id string) (catalog.Item, bool) {
	for _, it := range items {
		if it.ID == id {
			return it, true
		}
	}
	return catalog.Item{}, false
}
