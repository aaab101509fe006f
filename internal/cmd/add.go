package cmd

import (
	"fmt"
	"strings"

	"menukeeper/internal/catalog"

	"github.com/spf13/cobra"
)

// newAddCmd creates the add command.
func newAddCmd(provider *AppProvider) *cobra.Command {
	var flags itemFlags

	cmd := &cobra.Command{
		Use:   "add [name]",
		Short: "Add an item to the catalog",
		Long: `Add an item to the catalog.

The name may be given as arguments or with --name. Menu items need a
price and an image; inventory items need a price and a quantity.

Examples:
  mk add Latte --price 3.50 --type hot --image img://latte
  mk add --name "Coffee beans" --price 12 --quantity 40`,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := provider.Get()
			if err != nil {
				return err
			}

			d := flags.overlay(cmd, catalog.Draft{})
			if !cmd.Flags().Changed("name") {
				d.Name = strings.Join(args, " ")
			}

			items, err := app.Catalog.Add(cmd.Context(), d)
			if err := settle(cmd.Context(), app, err); err != nil {
				return err
			}
			added := items[len(items)-1]

			if app.JSON {
				if jerr := writeJSON(app.Out, added); jerr != nil {
					return jerr
				}
			} else {
				fmt.Fprintf(app.Out, "%s Added item: %s\n", app.SuccessColor("✓"), added.ID)
				fmt.Fprintf(app.Out, "  Name:  %s\n", added.Name)
				fmt.Fprintf(app.Out, "  Price: %s\n", formatMoney(added.Price))
			}
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}
