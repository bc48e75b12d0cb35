package products

import (
	"github.com/andreasstove999/ecommerce-system/cakeshop-service-go/internal/cart"
	"github.com/andreasstove999/ecommerce-system/cakeshop-service-go/internal/money"
	"github.com/shopspring/decimal"
)

// Product is a ready-made cake from the shop's catalog. Price is in whole currency units.
type Product struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Price       int64  `json:"price"`
	Description string `json:"description"`
	Tag         string `json:"tag,omitempty"`
	Image       string `json:"image"`
}

// ToItem snapshots the product for the cart.
func (p Product) ToItem(f money.Formatter) cart.Item {
	amount := decimal.NewFromInt(p.Price)
	return cart.Item{
		ID:          p.ID,
		Name:        p.Name,
		Category:    p.Category,
		Price:       f.Format(amount),
		Description: p.Description,
		Tag:         p.Tag,
		Image:       p.Image,
		Amount:      decimal.NewNullDecimal(amount),
	}
}
