package acceptance

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/cucumber/godog"
	"github.com/shopspring/decimal"

	"github.com/andreasstove999/ecommerce-system/cakeshop-service-go/internal/cart"
	"github.com/andreasstove999/ecommerce-system/cakeshop-service-go/internal/catalog"
	"github.com/andreasstove999/ecommerce-system/cakeshop-service-go/internal/customizer"
	"github.com/andreasstove999/ecommerce-system/cakeshop-service-go/internal/money"
)

type shopTestContext struct {
	catalog    *catalog.Catalog
	customizer *customizer.Customizer
	remembered customizer.Quote
	products   map[string]cart.Item
	recorder   *cart.Recorder
	cart       *cart.Cart
	customID   string
	formatter  money.Formatter
}

func (c *shopTestContext) reset() {
	c.catalog = nil
	c.customizer = nil
	c.remembered = customizer.Quote{}
	c.products = map[string]cart.Item{}
	c.recorder = &cart.Recorder{}
	c.cart = cart.New(c.recorder)
	c.customID = ""
	c.formatter = money.DefaultFormatter()
}

func (c *shopTestContext) theDefaultCakeMenu() error {
	cat, err := catalog.Default()
	if err != nil {
		return err
	}
	c.catalog = cat
	return nil
}

func (c *shopTestContext) iOpenTheCustomizer() error {
	if c.catalog == nil {
		return errors.New("no menu loaded")
	}
	c.customizer = customizer.New(c.catalog)
	return nil
}

func (c *shopTestContext) iSelectThe(category, id string) error {
	switch category {
	case "flavor":
		return c.customizer.SelectFlavor(id)
	case "size":
		return c.customizer.SelectSize(id)
	case "frosting":
		return c.customizer.SelectFrosting(id)
	}
	return fmt.Errorf("unknown category %q", category)
}

func (c *shopTestContext) iToggleTheTopping(id string) error {
	return c.customizer.ToggleTopping(id)
}

func (c *shopTestContext) iTypeTheMessage(msg string) error {
	c.customizer.SetMessage(msg)
	return nil
}

func (c *shopTestContext) thePriceIs(want int64) error {
	if got := c.customizer.Quote().Amount(); got != want {
		return fmt.Errorf("expected price %d, got %d", want, got)
	}
	return nil
}

func (c *shopTestContext) theFormattedPriceIs(want string) error {
	if got := c.formatter.Format(c.customizer.Quote().Total); got != want {
		return fmt.Errorf("expected formatted price %q, got %q", want, got)
	}
	return nil
}

func (c *shopTestContext) theDescriptionIs(want string) error {
	if got := c.customizer.Quote().Description; got != want {
		return fmt.Errorf("expected description %q, got %q", want, got)
	}
	return nil
}

func (c *shopTestContext) iRememberTheQuote() error {
	c.remembered = c.customizer.Quote()
	return nil
}

func (c *shopTestContext) theQuoteEqualsTheRememberedQuote() error {
	got := c.customizer.Quote()
	if !got.Total.Equal(c.remembered.Total) || got.Description != c.remembered.Description {
		return fmt.Errorf("expected %+v, got %+v", c.remembered, got)
	}
	return nil
}

func (c *shopTestContext) selectingTheFlavorFailsWithAnUnknownOption(id string) error {
	err := c.customizer.SelectFlavor(id)
	if !errors.Is(err, catalog.ErrUnknownOption) {
		return fmt.Errorf("expected ErrUnknownOption, got %v", err)
	}
	return nil
}

func (c *shopTestContext) iAddTheCakeToTheCart() error {
	item := customizer.Materialize(c.customizer.Selection(), c.customizer.Quote(), c.formatter, "")
	c.customID = item.ID
	c.cart.Add(item)
	return nil
}

func (c *shopTestContext) anEmptyCart() error {
	c.recorder.Reset()
	c.cart = cart.New(c.recorder)
	return nil
}

// Products registered here only carry a display price, so totals go through
// the re-parse path.
func (c *shopTestContext) aCatalogProduct(id, name, price string) error {
	c.products[id] = cart.Item{ID: id, Name: name, Category: "cakes", Price: price}
	return nil
}

func (c *shopTestContext) iAddTheProduct(id string) error {
	item, ok := c.products[id]
	if !ok {
		return fmt.Errorf("no product %q", id)
	}
	c.cart.Add(item)
	return nil
}

func (c *shopTestContext) iSetTheQuantityOf(id string, q int) error {
	c.cart.SetQuantity(id, q)
	return nil
}

func (c *shopTestContext) iRemove(id string) error {
	c.cart.Remove(id)
	return nil
}

func (c *shopTestContext) iClearTheCart() error {
	c.cart.Clear()
	return nil
}

func (c *shopTestContext) theCartHasLines(n int) error {
	if got := c.cart.Len(); got != n {
		return fmt.Errorf("expected %d lines, got %d", n, got)
	}
	return nil
}

func (c *shopTestContext) theLineHasQuantity(id string, q int) error {
	l, ok := c.cart.Line(id)
	if !ok {
		return fmt.Errorf("no line %q", id)
	}
	if l.Quantity != q {
		return fmt.Errorf("expected quantity %d for %q, got %d", q, id, l.Quantity)
	}
	return nil
}

func (c *shopTestContext) theCustomCakeLineHasQuantity(q int) error {
	return c.theLineHasQuantity(c.customID, q)
}

func (c *shopTestContext) theCartHasNoLine(id string) error {
	if _, ok := c.cart.Line(id); ok {
		return fmt.Errorf("expected no line %q", id)
	}
	return nil
}

func (c *shopTestContext) theTotalItemCountIs(n int) error {
	if got := c.cart.TotalItemCount(); got != n {
		return fmt.Errorf("expected %d items, got %d", n, got)
	}
	return nil
}

func (c *shopTestContext) theTotalValueIs(want int64) error {
	if got := c.cart.TotalValue(); !got.Equal(decimal.NewFromInt(want)) {
		return fmt.Errorf("expected total %d, got %s", want, got)
	}
	return nil
}

func (c *shopTestContext) theLastNotificationIs(kind string) error {
	evs := c.recorder.Events()
	if len(evs) == 0 {
		return errors.New("no notifications")
	}
	if got := evs[len(evs)-1].Kind; string(got) != kind {
		return fmt.Errorf("expected last notification %q, got %q", kind, got)
	}
	return nil
}

func (c *shopTestContext) thereWereNoNotifications() error {
	if evs := c.recorder.Events(); len(evs) > 0 {
		return fmt.Errorf("expected no notifications, got %+v", evs)
	}
	return nil
}

func InitializeScenario(ctx *godog.ScenarioContext) {
	tc := &shopTestContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		tc.reset()
		return ctx, nil
	})

	// Given steps
	ctx.Step(`^the default cake menu$`, tc.theDefaultCakeMenu)
	ctx.Step(`^I open the customizer$`, tc.iOpenTheCustomizer)
	ctx.Step(`^an empty cart$`, tc.anEmptyCart)
	ctx.Step(`^a catalog product "([^"]*)" named "([^"]*)" priced "([^"]*)"$`, tc.aCatalogProduct)
	ctx.Step(`^I remember the quote$`, tc.iRememberTheQuote)

	// When steps
	ctx.Step(`^I select the (flavor|size|frosting) "([^"]*)"$`, tc.iSelectThe)
	ctx.Step(`^I toggle the topping "([^"]*)"$`, tc.iToggleTheTopping)
	ctx.Step(`^I type the message "([^"]*)"$`, tc.iTypeTheMessage)
	ctx.Step(`^I add the cake to the cart$`, tc.iAddTheCakeToTheCart)
	ctx.Step(`^I add the product "([^"]*)"$`, tc.iAddTheProduct)
	ctx.Step(`^I set the quantity of "([^"]*)" to (-?\d+)$`, tc.iSetTheQuantityOf)
	ctx.Step(`^I remove "([^"]*)"$`, tc.iRemove)
	ctx.Step(`^I clear the cart$`, tc.iClearTheCart)

	// Then steps
	ctx.Step(`^the price is (\d+)$`, tc.thePriceIs)
	ctx.Step(`^the formatted price is "([^"]*)"$`, tc.theFormattedPriceIs)
	ctx.Step(`^the description is '([^']*)'$`, tc.theDescriptionIs)
	ctx.Step(`^the quote equals the remembered quote$`, tc.theQuoteEqualsTheRememberedQuote)
	ctx.Step(`^selecting the flavor "([^"]*)" fails with an unknown option$`, tc.selectingTheFlavorFailsWithAnUnknownOption)
	ctx.Step(`^the cart has (\d+) lines?$`, tc.theCartHasLines)
	ctx.Step(`^the line "([^"]*)" has quantity (\d+)$`, tc.theLineHasQuantity)
	ctx.Step(`^the custom cake line has quantity (\d+)$`, tc.theCustomCakeLineHasQuantity)
	ctx.Step(`^the cart has no line "([^"]*)"$`, tc.theCartHasNoLine)
	ctx.Step(`^the total item count is (\d+)$`, tc.theTotalItemCountIs)
	ctx.Step(`^the total value is (\d+)$`, tc.theTotalValueIs)
	ctx.Step(`^the last notification is "([^"]*)"$`, tc.theLastNotificationIs)
	ctx.Step(`^there were no notifications$`, tc.thereWereNoNotifications)
}

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"features"},
			Strict:   true,
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
