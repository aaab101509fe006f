package cmd

import (
	"strings"

	"github.com/spf13/cobra"
)

// newSearchCmd creates the search command.
func newSearchCmd(provider *AppProvider) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <text>",
		Short: "Find items by name",
		Long: `List items whose name contains the given text, ignoring case.

Examples:
  mk search latte
  mk search "flat white" --json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := provider.Get()
			if err != nil {
				return err
			}
			return outputItems(app, collect(app.Catalog.Filter(strings.Join(args, " "))))
		},
	}

	return cmd
}
