package customizer

import (
	"fmt"
	"strings"

	"github.com/andreasstove999/ecommerce-system/cakeshop-service-go/internal/catalog"
	"github.com/shopspring/decimal"
)

// Quote is the price and description of a selection.
type Quote struct {
	Total       decimal.Decimal `json:"total"`
	Description string          `json:"description"`
}

// Amount is Total rounded to whole currency units, half away from zero.
func (q Quote) Amount() int64 {
	return q.Total.Round(0).IntPart()
}

// Compose prices a selection:
//
//	flavor.price * size.multiplier + frosting.price + sum(topping.price)
//
// Nothing is rounded along the way. The message only affects the description.
func Compose(cat *catalog.Catalog, sel Selection) (Quote, error) {
	flavor, err := cat.Flavor(sel.FlavorID)
	if err != nil {
		return Quote{}, err
	}
	size, err := cat.Size(sel.SizeID)
	if err != nil {
		return Quote{}, err
	}
	frosting, err := cat.Frosting(sel.FrostingID)
	if err != nil {
		return Quote{}, err
	}

	total := flavor.Price.Mul(size.Multiplier).Add(frosting.Price)

	names := make([]string, 0, len(sel.ToppingIDs))
	seen := make(map[string]struct{}, len(sel.ToppingIDs))
	for _, id := range sel.ToppingIDs {
		if _, dup := seen[id]; dup {
			return Quote{}, fmt.Errorf("topping %q: %w", id, ErrDuplicateTopping)
		}
		seen[id] = struct{}{}

		topping, err := cat.Topping(id)
		if err != nil {
			return Quote{}, err
		}
		total = total.Add(topping.Price)
		names = append(names, topping.Name)
	}

	return Quote{Total: total, Description: describe(size.Name, flavor.Name, frosting.Name, names, sel.Message)}, nil
}

func describe(size, flavor, frosting string, toppings []string, message string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s cake with %s frosting", size, flavor, frosting)
	if len(toppings) > 0 {
		b.WriteString(" topped with ")
		b.WriteString(strings.Join(toppings, ", "))
	}
	if message != "" {
		fmt.Fprintf(&b, ". Message: \"%s\"", message)
	}
	return b.String()
}
