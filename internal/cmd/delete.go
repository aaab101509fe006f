package cmd

import (
	"errors"
	"fmt"

	"menukeeper/internal/catalog"

	"github.com/spf13/cobra"
)

// deleteResult holds the JSON output of a delete operation.
type deleteResult struct {
	ID      string `json:"id"`
	Deleted bool   `json:"deleted"`
	Count   int    `json:"count"`
}

// newDeleteCmd creates the delete command.
func newDeleteCmd(provider *AppProvider) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete <item-id>",
		Short: "Delete an item",
		Long: `Delete an item from the catalog.

Asks for confirmation when stdin is a terminal, unless --force is given.
Deleting an ID that does not exist is not an error. Supports unique ID
prefixes.

Examples:
  mk delete itm-a1b
  mk delete itm-a1b --force`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := provider.Get()
			if err != nil {
				return err
			}

			id := args[0]
			it, err := app.Catalog.Resolve(id)
			found := err == nil
			switch {
			case found:
				id = it.ID
			case errors.Is(err, catalog.ErrNotFound):
			default:
				return err
			}

			if found && !force {
				printItems(app.Out, app.Catalog.Flavor(), []catalog.Item{it})
				ok, err := app.confirm("Are you sure you want to delete this item?")
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(app.Out, "Cancelled")
					return nil
				}
			}

			items, err := app.Catalog.Delete(cmd.Context(), id)
			if err := settle(cmd.Context(), app, err); err != nil {
				return err
			}

			if app.JSON {
				if jerr := writeJSON(app.Out, deleteResult{ID: id, Deleted: found, Count: len(items)}); jerr != nil {
					return jerr
				}
			} else if found {
				fmt.Fprintf(app.Out, "%s Deleted item: %s\n", app.SuccessColor("✓"), id)
			} else {
				fmt.Fprintf(app.Out, "No item %s; nothing to delete\n", id)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Skip confirmation prompt")
	return cmd
}
