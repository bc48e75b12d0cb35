package customizer

import (
	"github.com/andreasstove999/ecommerce-system/cakeshop-service-go/internal/catalog"
)

// Customizer holds one shopper's in-progress selection and keeps its quote
// current. Every successful mutation recomputes the quote before returning; a
// failed mutation leaves both untouched. Not safe for concurrent use.
type Customizer struct {
	cat   *catalog.Catalog
	sel   Selection
	quote Quote
}

func New(cat *catalog.Catalog) *Customizer {
	c := &Customizer{cat: cat, sel: DefaultSelection(cat)}
	// The defaults come from the catalog itself, so this cannot fail.
	c.quote, _ = Compose(cat, c.sel)
	return c
}

func (c *Customizer) Selection() Selection { return c.sel.clone() }
func (c *Customizer) Quote() Quote { return c.quote }

func (c *Customizer) SelectFlavor(id string) error {
	if _, err := c.cat.Flavor(id); err != nil {
		return err
	}
	return c.apply(func(s *Selection) { s.FlavorID = id })
}

func (c *Customizer) SelectSize(id string) error {
	if _, err := c.cat.Size(id); err != nil {
		return err
	}
	return c.apply(func(s *Selection) { s.SizeID = id })
}

func (c *Customizer) SelectFrosting(id string) error {
	if _, err := c.cat.Frosting(id); err != nil {
		return err
	}
	return c.apply(func(s *Selection) { s.FrostingID = id })
}

// ToggleTopping adds the topping if absent and removes it if present.
func (c *Customizer) ToggleTopping(id string) error {
	if _, err := c.cat.Topping(id); err != nil {
		return err
	}
	return c.apply(func(s *Selection) {
		for i, t := range s.ToppingIDs {
			if t == id {
				s.ToppingIDs = append(s.ToppingIDs[:i], s.ToppingIDs[i+1:]...)
				return
			}
		}
		s.ToppingIDs = append(s.ToppingIDs, id)
	})
}

// SetMessage stores the message clamped to MaxMessageLength characters.
func (c *Customizer) SetMessage(msg string) {
	// Message never touches an option id, so composition cannot fail here.
	_ = c.apply(func(s *Selection) { s.Message = ClampMessage(msg) })
}

func (c *Customizer) apply(mutate func(*Selection)) error {
	next := c.sel.clone()
	mutate(&next)
	q, err := Compose(c.cat, next)
	if err != nil {
		return err
	}
	c.sel, c.quote = next, q
	return nil
}
