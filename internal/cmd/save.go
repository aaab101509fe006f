package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newSaveCmd creates the save command.
func newSaveCmd(provider *AppProvider) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "save",
		Short: "Write the catalog to storage again",
		Long: `Load the catalog and write it back to storage in full.

This rewrites the stored blob in its normalized form, e.g. to replace a
corrupt catalog that was loaded as empty. It cannot recover a change from
an earlier command whose write failed; that change was discarded when the
command exited.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := provider.Get()
			if err != nil {
				return err
			}

			if err := app.Catalog.Save(cmd.Context()); err != nil {
				return err
			}
			n := app.Catalog.Len()
			if app.JSON {
				return writeJSON(app.Out, map[string]any{"saved": n, "key": app.Catalog.Key()})
			}
			fmt.Fprintf(app.Out, "%s Saved %d items to %s\n", app.SuccessColor("✓"), n, app.Catalog.Key())
			return nil
		},
	}

	return cmd
}
