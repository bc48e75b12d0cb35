package cart

import (
	"github.com/andreasstove999/ecommerce-system/cakeshop-service-go/internal/money"
	"github.com/shopspring/decimal"
)

// Cart is an ordered set of lines with at most one line per item id.
// A Cart belongs to a single owner and is not safe for concurrent use; see Store.
type Cart struct {
	lines    []Line
	notifier Notifier
}

func New(n Notifier) *Cart {
	return &Cart{notifier: n}
}

// Add appends item with quantity 1, or bumps the quantity of the line that
// already holds item.ID. The existing snapshot is kept as is.
func (c *Cart) Add(item Item) Outcome {
	if i := c.index(item.ID); i >= 0 {
		c.lines[i].Quantity++
		c.notify(Event{Kind: EventQuantityUpdated, ItemID: item.ID, ItemName: c.lines[i].Item.Name, Quantity: c.lines[i].Quantity})
		return QuantityUpdated
	}
	c.lines = append(c.lines, Line{Item: item, Quantity: 1})
	c.notify(Event{Kind: EventAdded, ItemID: item.ID, ItemName: item.Name, Quantity: 1})
	return Added
}

// Remove deletes the line for id. It reports whether a line was removed.
func (c *Cart) Remove(id string) bool {
	i := c.index(id)
	if i < 0 {
		return false
	}
	removed := c.lines[i]
	c.lines = append(c.lines[:i], c.lines[i+1:]...)
	c.notify(Event{Kind: EventRemoved, ItemID: id, ItemName: removed.Item.Name})
	return true
}

// SetQuantity sets an absolute quantity. Zero or negative removes the line.
func (c *Cart) SetQuantity(id string, quantity int) {
	if quantity <= 0 {
		c.Remove(id)
		return
	}
	i := c.index(id)
	if i < 0 {
		return
	}
	c.lines[i].Quantity = quantity
	c.notify(Event{Kind: EventQuantityUpdated, ItemID: id, ItemName: c.lines[i].Item.Name, Quantity: quantity})
}

func (c *Cart) Clear() {
	c.lines = nil
	c.notify(Event{Kind: EventCleared})
}

func (c *Cart) Len() int {
	return len(c.lines)
}

func (c *Cart) Lines() []Line {
	return append([]Line(nil), c.lines...)
}

func (c *Cart) Line(id string) (Line, bool) {
	if i := c.index(id); i >= 0 {
		return c.lines[i], true
	}
	return Line{}, false
}

func (c *Cart) TotalItemCount() int {
	n := 0
	for _, l := range c.lines {
		n += l.Quantity
	}
	return n
}

func (c *Cart) TotalValue() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.lines {
		total = total.Add(UnitValue(l.Item).Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	return total
}

func (c *Cart) Summary() []SummaryLine {
	out := make([]SummaryLine, 0, len(c.lines))
	for _, l := range c.lines {
		out = append(out, SummaryLine{Name: l.Item.Name, Quantity: l.Quantity, UnitPriceFormatted: l.Item.Price})
	}
	return out
}

// UnitValue prefers the canonical amount and falls back to re-parsing the
// display price for items that never had one.
func UnitValue(it Item) decimal.Decimal {
	if it.Amount.Valid {
		return it.Amount.Decimal
	}
	return money.ParseDisplay(it.Price)
}

func (c *Cart) index(id string) int {
	for i := range c.lines {
		if c.lines[i].Item.ID == id {
			return i
		}
	}
	return -1
}

func (c *Cart) notify(e Event) {
	if c.notifier != nil {
		c.notifier.Notify(e)
	}
}
