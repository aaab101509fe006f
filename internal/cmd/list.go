package cmd

import (
	"fmt"
	"iter"

	"menukeeper/internal/catalog"
	"menukeeper/internal/query"

	"github.com/spf13/cobra"
)

// newListCmd creates the list command.
func newListCmd(provider *AppProvider) *cobra.Command {
	var where string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List catalog items",
		Long: `List catalog items in the order they were added.

--where filters with an expression over id, name, price, quantity,
has_quantity, type and image.

Examples:
  mk list
  mk list --where 'price < 4 && type == "hot"'
  mk list --where 'has_quantity && quantity == 0' --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := provider.Get()
			if err != nil {
				return err
			}

			seq := app.Catalog.Where(nil)
			var evalErr error
			if where != "" {
				pred, err := query.Compile(where)
				if err != nil {
					return err
				}
				seq = app.Catalog.Where(pred.Keep(&evalErr))
			}

			items := collect(seq)
			if evalErr != nil {
				return evalErr
			}
			return outputItems(app, items)
		},
	}

	cmd.Flags().StringVarP(&where, "where", "w", "", "Filter expression")
	return cmd
}

func collect(seq iter.Seq[catalog.Item]) []catalog.Item {
	items := []catalog.Item{}
	for it := range seq {
		items = append(items, it)
	}
	return items
}

func outputItems(app *App, items []catalog.Item) error {
	if app.JSON {
		return writeJSON(app.Out, items)
	}
	if len(items) == 0 {
		fmt.Fprintln(app.Out, "No items found")
		return nil
	}
	printItems(app.Out, app.Catalog.Flavor(), items)
	return nil
}
