package cart

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func product(id, name, price string) Item {
	return Item{ID: id, Name: name, Category: "birthday", Price: price}
}

func TestAddMergesByID(t *testing.T) {
	rec := &Recorder{}
	c := New(rec)
	x := product("p1", "Chocolate Fudge", "₦15,000")

	assert.Equal(t, Added, c.Add(x))
	assert.Equal(t, QuantityUpdated, c.Add(x))

	lines := c.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 2, lines[0].Quantity)
	assert.Equal(t, []Event{
		{Kind: EventAdded, ItemID: "p1", ItemName: "Chocolate Fudge", Quantity: 1},
		{Kind: EventQuantityUpdated, ItemID: "p1", ItemName: "Chocolate Fudge", Quantity: 2},
	}, rec.Events())
}

func TestAddKeepsFirstSnapshot(t *testing.T) {
	c := New(nil)
	c.Add(product("p1", "Original", "₦1,000"))
	c.Add(product("p1", "Changed", "₦9,000"))

	l, ok := c.Line("p1")
	require.True(t, ok)
	assert.Equal(t, "Original", l.Item.Name)
	assert.Equal(t, "₦1,000", l.Item.Price)
	assert.True(t, c.TotalValue().Equal(decimal.NewFromInt(2000)))
}

func TestAddPreservesInsertionOrder(t *testing.T) {
	c := New(nil)
	c.Add(product("b", "B", "1"))
	c.Add(product("a", "A", "1"))
	c.Add(product("c", "C", "1"))
	c.Add(product("a", "A", "1"))

	var ids []string
	for _, l := range c.Lines() {
		ids = append(ids, l.Item.ID)
	}
	assert.Equal(t, []string{"b", "a", "c"}, ids)
}

func TestRemove(t *testing.T) {
	rec := &Recorder{}
	c := New(rec)
	c.Add(product("p1", "Cupcakes", "₦3,000"))
	rec.Reset()

	assert.False(t, c.Remove("missing"))
	assert.Empty(t, rec.Events(), "no-op removal must not notify")

	assert.True(t, c.Remove("p1"))
	assert.Equal(t, 0, c.Len())
	assert.Equal(t, []Event{{Kind: EventRemoved, ItemID: "p1", ItemName: "Cupcakes"}}, rec.Events())
}

func TestSetQuantity(t *testing.T) {
	t.Run("absolute set", func(t *testing.T) {
		c := New(nil)
		c.Add(product("p1", "Cupcakes", "₦3,000"))
		c.SetQuantity("p1", 5)
		c.SetQuantity("p1", 3)

		l, _ := c.Line("p1")
		assert.Equal(t, 3, l.Quantity)
		assert.Equal(t, 3, c.TotalItemCount())
	})

	for _, q := range []int{0, -5} {
		t.Run("non-positive removes", func(t *testing.T) {
			c := New(nil)
			c.Add(product("p1", "Cupcakes", "₦3,000"))
			c.Add(product("p2", "Brownies", "₦2,000"))

			c.SetQuantity("p1", q)

			_, ok := c.Line("p1")
			assert.False(t, ok)
			assert.Equal(t, 1, c.Len())
			assert.Equal(t, 1, c.TotalItemCount())
		})
	}

	t.Run("absent id is a no-op", func(t *testing.T) {
		rec := &Recorder{}
		c := New(rec)
		c.SetQuantity("missing", 4)
		c.SetQuantity("missing", 0)
		assert.Equal(t, 0, c.Len())
		assert.Empty(t, rec.Events())
	})

	t.Run("notifies quantity update", func(t *testing.T) {
		rec := &Recorder{}
		c := New(rec)
		c.Add(product("p1", "Cupcakes", "₦3,000"))
		rec.Reset()

		c.SetQuantity("p1", 4)
		assert.Equal(t, []Event{{Kind: EventQuantityUpdated, ItemID: "p1", ItemName: "Cupcakes", Quantity: 4}}, rec.Events())
	})
}

func TestTotalValue(t *testing.T) {
	t.Run("re-parses display price", func(t *testing.T) {
		c := New(nil)
		c.Add(product("p1", "Fudge", "₦15,000"))
		c.SetQuantity("p1", 3)
		assert.True(t, c.TotalValue().Equal(decimal.NewFromInt(45000)), "got %s", c.TotalValue())
	})

	t.Run("prefers canonical amount", func(t *testing.T) {
		c := New(nil)
		it := product("p1", "Fudge", "display only")
		it.Amount = decimal.NewNullDecimal(decimal.NewFromInt(12000))
		c.Add(it)
		c.Add(it)
		assert.True(t, c.TotalValue().Equal(decimal.NewFromInt(24000)))
	})

	t.Run("sums mixed lines", func(t *testing.T) {
		c := New(nil)
		c.Add(product("p1", "A", "₦1,500"))
		c.Add(product("p2", "B", "$2,000.50"))
		c.SetQuantity("p2", 2)
		assert.True(t, c.TotalValue().Equal(decimal.RequireFromString("5501")))
		assert.Equal(t, 3, c.TotalItemCount())
	})
}

func TestClear(t *testing.T) {
	rec := &Recorder{}
	c := New(rec)
	c.Add(product("p1", "A", "₦1,500"))
	c.Add(product("p2", "B", "₦2,500"))
	c.SetQuantity("p2", 7)
	rec.Reset()

	c.Clear()

	assert.Equal(t, 0, c.TotalItemCount())
	assert.True(t, c.TotalValue().IsZero())
	assert.Empty(t, c.Lines())
	assert.Equal(t, []Event{{Kind: EventCleared}}, rec.Events())

	c.Clear()
	assert.Equal(t, 0, c.Len(), "clearing an empty cart is fine")
}

func TestSummary(t *testing.T) {
	c := New(nil)
	c.Add(product("p1", "Fudge", "₦15,000"))
	c.Add(product("p2", "Cupcakes", "₦3,000"))
	c.Add(product("p1", "Fudge", "₦15,000"))

	assert.Equal(t, []SummaryLine{
		{Name: "Fudge", Quantity: 2, UnitPriceFormatted: "₦15,000"},
		{Name: "Cupcakes", Quantity: 1, UnitPriceFormatted: "₦3,000"},
	}, c.Summary())
}

func TestLinesReturnsCopy(t *testing.T) {
	c := New(nil)
	c.Add(product("p1", "Fudge", "₦15,000"))

	lines := c.Lines()
	lines[0].Quantity = 99

	l, _ := c.Line("p1")
	assert.Equal(t, 1, l.Quantity)
}
