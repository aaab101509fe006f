package catalog

import (
	"math"
	"strconv"
	"strings"
)

// validate parses d into an Item for flavor f. The returned Item has no ID.
// Fields are checked in form order and the first failure is returned.
func validate(f Flavor, d Draft) (Item, error) {
	var it Item

	it.Name = strings.TrimSpace(d.Name)
	if it.Name == "" {
		return Item{}, &ValidationError{Field: "name", Reason: "must not be empty"}
	}

	price, err := parsePrice(d.Price)
	if err != nil {
		return Item{}, err
	}
	it.Price = price

	if f.RequiresQuantity() {
		q, err := parseQuantity(d.Quantity)
		if err != nil {
			return Item{}, err
		}
		it.Quantity = &q
	}

	if f == FlavorMenu {
		it.Type = strings.TrimSpace(d.Type)
	}

	if f.RequiresImage() {
		if strings.TrimSpace(d.Image) == "" {
			return Item{}, &ValidationError{Field: "image", Reason: "an image must be selected"}
		}
		it.Image = d.Image
	}

	return it, nil
}

func parsePrice(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, &ValidationError{Field: "price", Reason: "must not be empty"}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, &ValidationError{Field: "price", Reason: "must be a number"}
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, &ValidationError{Field: "price", Reason: "must be a finite number"}
	}
	if v < 0 {
		return 0, &ValidationError{Field: "price", Reason: "must not be negative"}
	}
	if v == 0 {
		v = 0 // drop the sign of -0
	}
	return v, nil
}

func parseQuantity(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, &ValidationError{Field: "quantity", Reason: "must not be empty"}
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, &ValidationError{Field: "quantity", Reason: "must be a whole number"}
	}
	if v < 0 {
		return 0, &ValidationError{Field: "quantity", Reason: "must not be negative"}
	}
	return v, nil
}

func formatPrice(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
