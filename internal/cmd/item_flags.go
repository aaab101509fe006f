package cmd

import (
	"github.com/spf13/cobra"

	"menukeeper/internal/catalog"
)

// itemFlags holds the item field flags shared by add and edit.
type itemFlags struct {
	name     string
	price    string
	quantity string
	typ      string
	image    string
}

func (f *itemFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.name, "name", "n", "", "Item name")
	cmd.Flags().StringVarP(&f.price, "price", "p", "", "Price, e.g. 3.50")
	cmd.Flags().StringVarP(&f.quantity, "quantity", "q", "", "Quantity on hand (inventory)")
	cmd.Flags().StringVarP(&f.typ, "type", "t", "", "Drink type, e.g. hot or cold (menu)")
	cmd.Flags().StringVar(&f.image, "image", "", "Image reference (menu)")
}

// overlay copies the flags the user actually set onto d.
func (f *itemFlags) overlay(cmd *cobra.Command, d catalog.Draft) catalog.Draft {
	if cmd.Flags().Changed("name") {
		d.Name = f.name
	}
	if cmd.Flags().Changed("price") {
		d.Price = f.price
	}
	if cmd.Flags().Changed("quantity") {
		d.Quantity = f.quantity
	}
	if cmd.Flags().Changed("type") {
		d.Type = f.typ
	}
	if cmd.Flags().Changed("image") {
		d.Image = f.image
	}
	return d
}
