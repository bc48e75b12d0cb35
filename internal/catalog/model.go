package catalog

import "github.com/shopspring/decimal"

type Category string

const (
	CategoryFlavor   Category = "flavor"
	CategorySize     Category = "size"
	CategoryFrosting Category = "frosting"
	CategoryTopping  Category = "topping"
)

// Option is a priced flavor, frosting or topping. Prices are whole currency units.
type Option struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// SizeOption scales the flavor's base price. Servings is shown to customers only.
type SizeOption struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Multiplier decimal.Decimal `json:"multiplier"`
	Servings   string          `json:"servings"`
}

// Menu is the wire/file form of a catalog.
type Menu struct {
	Flavors   []Option     `json:"flavors"`
	Sizes     []SizeOption `json:"sizes"`
	Frostings []Option     `json:"frostings"`
	Toppings  []Option     `json:"toppings"`
}
