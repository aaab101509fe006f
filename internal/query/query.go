// Package query compiles --where expressions into item predicates.
//
// Expressions use the expr language (github.com/expr-lang/expr) and see one
// item at a time through these variables:
//
//	id, name, type, image  string
//	price                  float
//	quantity               int (0 when the item has none)
//	has_quantity           bool
//
// Examples:
//
//	price < 4 && type == "hot"
//	lower(name) contains "latte"
//	has_quantity && quantity == 0
package query

import (
	"errors"
	"fmt"
	"strings"

	"menukeeper/internal/catalog"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// ErrEmpty is returned by Compile for a blank expression.
var ErrEmpty = errors.New("query: expression must not be empty")

// env is the evaluation environment for a single item.
type env struct {
	ID          string  `expr:"id"`
	Name        string  `expr:"name"`
	Price       float64 `expr:"price"`
	Quantity    int     `expr:"quantity"`
	HasQuantity bool    `expr:"has_quantity"`
	Type        string  `expr:"type"`
	Image       string  `expr:"image"`
}

func envFor(it catalog.Item) env {
	e := env{
		ID:    it.ID,
		Name:  it.Name,
		Price: it.Price,
		Type:  it.Type,
		Image: it.Image,
	}
	if it.Quantity != nil {
		e.Quantity = *it.Quantity
		e.HasQuantity = true
	}
	return e
}

// Predicate is a compiled boolean expression over an item.
type Predicate struct {
	source  string
	program *vm.Program
}

// Compile parses and type-checks source. The expression must evaluate to a bool.
func Compile(source string) (*Predicate, error) {
	source = strings.TrimSpace(source)
	if source == "" {
		return nil, ErrEmpty
	}
	program, err := expr.Compile(source, expr.Env(env{}), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("query %q: %w", source, err)
	}
	return &Predicate{source: source, program: program}, nil
}

// String returns the expression source.
func (p *Predicate) String() string {
	return p.source
}

// Match evaluates the predicate against it.
func (p *Predicate) Match(it catalog.Item) (bool, error) {
	out, err := expr.Run(p.program, envFor(it))
	if err != nil {
		return false, fmt.Errorf("query %q on item %s: %w", p.source, it.ID, err)
	}
	ok, _ := out.(bool)
	return ok, nil
}

// Keep adapts the predicate for catalog.Manager.Where. Items that fail to
// evaluate are skipped and the first error is stored in *errp when errp is
// non-nil.
func (p *Predicate) Keep(errp *error) func(catalog.Item) bool {
	return func(it catalog.Item) bool {
		ok, err := p.Match(it)
		if err != nil {
			if errp != nil && *errp == nil {
				*errp = err
			}
			return false
		}
		return ok
	}
}
