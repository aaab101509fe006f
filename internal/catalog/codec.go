package catalog

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
)

// Encode serializes items as a JSON array in collection order.
func Encode(items []Item) ([]byte, error) {
	if items == nil {
		items = []Item{}
	}
	return json.Marshal(items)
}

// Decode parses a blob written by Encode. A JSON null or empty blob decodes
// to an empty collection. Records that break collection invariants (missing
// or duplicate IDs, empty names, negative prices or quantities) make the
// whole blob invalid.
func Decode(blob []byte) ([]Item, error) {
	if len(strings.TrimSpace(string(blob))) == 0 {
		return nil, nil
	}
	var items []Item
	if err := json.Unmarshal(blob, &items); err != nil {
		return nil, fmt.Errorf("decoding items: %w", err)
	}

	seen := make(map[string]struct{}, len(items))
	for i, it := range items {
		switch {
		case it.ID == "":
			return nil, fmt.Errorf("record %d: missing id", i)
		case strings.TrimSpace(it.Name) == "":
			return nil, fmt.Errorf("record %d (%s): empty name", i, it.ID)
		case it.Price < 0 || math.IsInf(it.Price, 0):
			return nil, fmt.Errorf("record %d (%s): invalid price %v", i, it.ID, it.Price)
		case it.Quantity != nil && *it.Quantity < 0:
			return nil, fmt.Errorf("record %d (%s): negative quantity", i, it.ID)
		}
		if _, dup := seen[it.ID]; dup {
			return nil, fmt.Errorf("record %d: duplicate id %s", i, it.ID)
		}
		seen[it.ID] = struct{}{}
	}
	return items, nil
}
