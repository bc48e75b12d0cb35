package customizer

import (
	"strconv"
	"strings"

	"github.com/andreasstove999/ecommerce-system/cakeshop-service-go/internal/cart"
	"github.com/andreasstove999/ecommerce-system/cakeshop-service-go/internal/money"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var customCakeNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("urn:cakeshop:custom-cake"))

// CustomCakeID derives the cart id from the option ids and message of a
// selection. Identical configurations share an id and merge in the cart;
// different ones never do, even when their option names coincide.
func CustomCakeID(sel Selection) string {
	return "custom-" + uuid.NewSHA1(customCakeNamespace, []byte(selectionKey(sel))).String()
}

// selectionKey length-prefixes every part so no two selections encode alike.
func selectionKey(sel Selection) string {
	var b strings.Builder
	write := func(s string) {
		b.WriteString(strconv.Itoa(len(s)))
		b.WriteByte(':')
		b.WriteString(s)
	}
	write(sel.FlavorID)
	write(sel.SizeID)
	write(sel.FrostingID)
	b.WriteString(strconv.Itoa(len(sel.ToppingIDs)))
	b.WriteByte('#')
	for _, id := range sel.ToppingIDs {
		write(id)
	}
	write(sel.Message)
	return b.String()
}

// Materialize turns a composed selection into the immutable item the cart stores.
func Materialize(sel Selection, q Quote, f money.Formatter, image string) cart.Item {
	return cart.Item{
		ID:          CustomCakeID(sel),
		Name:        cart.CustomCakeName,
		Category:    cart.CategoryCustom,
		Price:       f.Format(q.Total),
		Description: q.Description,
		Tag:         cart.CustomCakeTag,
		Image:       image,
		Amount:      decimal.NewNullDecimal(decimal.NewFromInt(q.Amount())),
	}
}
