// Package catalog manages an ordered, persisted collection of catalog items
// (coffee menu entries or inventory stock).
//
// A Manager owns the in-memory collection. Every mutation validates a Draft,
// applies the change in memory, and then writes the whole collection to a
// kvstorage.KVStore under a single key. Memory is authoritative: a failed
// write is reported but never rolled back.
package catalog

import (
	"fmt"
	"strings"
)

// Flavor selects which fields an item carries and which are required.
type Flavor string

const (
	// FlavorMenu items have a name, price, required image and optional type.
	FlavorMenu Flavor = "menu"
	// FlavorInventory items have a name, price and required quantity.
	FlavorInventory Flavor = "inventory"
)

// Flavors lists the supported flavors.
var Flavors = []Flavor{FlavorMenu, FlavorInventory}

// ParseFlavor converts a config or flag value to a Flavor.
func ParseFlavor(s string) (Flavor, error) {
	switch Flavor(strings.ToLower(strings.TrimSpace(s))) {
	case "", FlavorMenu:
		return FlavorMenu, nil
	case FlavorInventory:
		return FlavorInventory, nil
	default:
		return "", fmt.Errorf("unknown catalog flavor %q (allowed: menu, inventory)", s)
	}
}

// DefaultKey is the storage key a flavor persists under unless configured otherwise.
func (f Flavor) DefaultKey() string {
	return string(f)
}

// RequiresImage reports whether items of this flavor must carry an image reference.
func (f Flavor) RequiresImage() bool {
	return f == FlavorMenu
}

// RequiresQuantity reports whether items of this flavor must carry a quantity.
func (f Flavor) RequiresQuantity() bool {
	return f == FlavorInventory
}

// Item is a single catalog record.
type Item struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity *int    `json:"quantity,omitempty"`
	Type     string  `json:"type,omitempty"`
	// Image is an opaque reference returned by an image picker. It is
	// stored verbatim and never dereferenced.
	Image string `json:"image,omitempty"`
}

// Clone returns a copy of it that shares no memory with it.
func (it Item) Clone() Item {
	if it.Quantity != nil {
		q := *it.Quantity
		it.Quantity = &q
	}
	return it
}

// Draft is unvalidated, string-typed user input for an Item.
// Fields that do not apply to the manager's flavor are ignored.
type Draft struct {
	Name     string `json:"name"`
	Price    string `json:"price"`
	Quantity string `json:"quantity,omitempty"`
	Type     string `json:"type,omitempty"`
	Image    string `json:"image,omitempty"`
}

// DraftFrom renders an existing item back into form fields, the way an
// edit form is pre-filled.
func DraftFrom(it Item) Draft {
	d := Draft{
		Name:  it.Name,
		Price: formatPrice(it.Price),
		Type:  it.Type,
		Image: it.Image,
	}
	if it.Quantity != nil {
		d.Quantity = fmt.Sprintf("%d", *it.Quantity)
	}
	return d
}
