package cart

import "github.com/shopspring/decimal"

const (
	CategoryCustom = "custom"
	CustomCakeName = "Custom Cake"
	CustomCakeTag  = "Custom Design"
)

// Item is an immutable snapshot of something purchasable: a catalog product or
// a materialized custom cake. ID is the merge key.
type Item struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Price       string `json:"price"`
	Description string `json:"description"`
	Tag         string `json:"tag,omitempty"`
	Image       string `json:"image,omitempty"`

	// Amount is the canonical unit price. Items that only carry a display
	// price leave it invalid and are valued by re-parsing Price.
	Amount decimal.NullDecimal `json:"amount"`
}

type Line struct {
	Item     Item `json:"item"`
	Quantity int  `json:"quantity"`
}

// SummaryLine is what the checkout message composer reads for each line.
type SummaryLine struct {
	Name               string `json:"name"`
	Quantity           int    `json:"quantity"`
	UnitPriceFormatted string `json:"unitPriceFormatted"`
}

type Outcome string

const (
	Added           Outcome = "added"
	QuantityUpdated Outcome = "quantity-updated"
)
