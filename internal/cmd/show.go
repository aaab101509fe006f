package cmd

import (
	"github.com/spf13/cobra"
)

// newShowCmd creates the show command.
func newShowCmd(provider *AppProvider) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <item-id>",
		Short: "Show one item",
		Long: `Display a single item.

Supports prefix matching on item IDs. If the prefix matches more than one
item the command fails and asks for a longer prefix.

Examples:
  mk show itm-a1b
  mk show itm-a       # Prefix match (if unique)`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := provider.Get()
			if err != nil {
				return err
			}

			it, err := app.Catalog.Resolve(args[0])
			if err != nil {
				return err
			}
			if app.JSON {
				return writeJSON(app.Out, it)
			}
			printItem(app.Out, app.Catalog.Flavor(), it)
			return nil
		},
	}

	return cmd
}
