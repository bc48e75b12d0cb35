package catalog

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

var ErrUnknownOption = errors.New("unknown option")

//go:embed default_menu.json
var defaultMenu string

// Catalog is the read-only menu of customization options. It is built once at
// startup and shared; nothing mutates it afterwards.
type Catalog struct {
	flavors   []Option
	sizes     []SizeOption
	frostings []Option
	toppings  []Option

	flavorIdx   map[string]int
	sizeIdx     map[string]int
	frostingIdx map[string]int
	toppingIdx  map[string]int
}

func New(m Menu) (*Catalog, error) {
	c := &Catalog{
		flavors:   append([]Option(nil), m.Flavors...),
		sizes:     append([]SizeOption(nil), m.Sizes...),
		frostings: append([]Option(nil), m.Frostings...),
		toppings:  append([]Option(nil), m.Toppings...),
	}

	var err error
	if c.flavorIdx, err = indexOptions(CategoryFlavor, c.flavors); err != nil {
		return nil, err
	}
	if c.frostingIdx, err = indexOptions(CategoryFrosting, c.frostings); err != nil {
		return nil, err
	}
	if c.toppingIdx, err = indexOptions(CategoryTopping, c.toppings); err != nil {
		return nil, err
	}
	if c.sizeIdx, err = indexSizes(c.sizes); err != nil {
		return nil, err
	}
	return c, nil
}

// Load reads a JSON menu and validates it.
func Load(r io.Reader) (*Catalog, error) {
	var m Menu
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("decode menu: %w", err)
	}
	return New(m)
}

func Default() (*Catalog, error) {
	return Load(strings.NewReader(defaultMenu))
}

func MustDefault() *Catalog {
	c, err := Default()
	if err != nil {
		panic(fmt.Sprintf("embedded menu is invalid: %v", err))
	}
	return c
}

func (c *Catalog) Flavor(id string) (Option, error) {
	i, ok := c.flavorIdx[id]
	if !ok {
		return Option{}, unknown(CategoryFlavor, id)
	}
	return c.flavors[i], nil
}

func (c *Catalog) Size(id string) (SizeOption, error) {
	i, ok := c.sizeIdx[id]
	if !ok {
		return SizeOption{}, unknown(CategorySize, id)
	}
	return c.sizes[i], nil
}

func (c *Catalog) Frosting(id string) (Option, error) {
	i, ok := c.frostingIdx[id]
	if !ok {
		return Option{}, unknown(CategoryFrosting, id)
	}
	return c.frostings[i], nil
}

func (c *Catalog) Topping(id string) (Option, error) {
	i, ok := c.toppingIdx[id]
	if !ok {
		return Option{}, unknown(CategoryTopping, id)
	}
	return c.toppings[i], nil
}

func (c *Catalog) Flavors() []Option { return append([]Option(nil), c.flavors...) }
func (c *Catalog) Sizes() []SizeOption { return append([]SizeOption(nil), c.sizes...) }
func (c *Catalog) Frostings() []Option { return append([]Option(nil), c.frostings...) }
func (c *Catalog) Toppings() []Option { return append([]Option(nil), c.toppings...) }

// Menu returns a copy of the catalog in its wire form.
func (c *Catalog) Menu() Menu {
	return Menu{
		Flavors:   c.Flavors(),
		Sizes:     c.Sizes(),
		Frostings: c.Frostings(),
		Toppings:  c.Toppings(),
	}
}

// DefaultFlavor and friends return the first entry of each category; New
// guarantees that every category is non-empty.
func (c *Catalog) DefaultFlavor() Option { return c.flavors[0] }
func (c *Catalog) DefaultSize() SizeOption { return c.sizes[0] }
func (c *Catalog) DefaultFrosting() Option { return c.frostings[0] }

func unknown(cat Category, id string) error {
	return fmt.Errorf("%s %q: %w", cat, id, ErrUnknownOption)
}

func indexOptions(cat Category, opts []Option) (map[string]int, error) {
	if len(opts) == 0 && cat != CategoryTopping {
		return nil, fmt.Errorf("%s: at least one option is required", cat)
	}
	idx := make(map[string]int, len(opts))
	for i, o := range opts {
		if o.ID == "" {
			return nil, fmt.Errorf("%s[%d]: missing id", cat, i)
		}
		if o.Name == "" {
			return nil, fmt.Errorf("%s %q: missing name", cat, o.ID)
		}
		if o.Price.IsNegative() {
			return nil, fmt.Errorf("%s %q: price must not be negative", cat, o.ID)
		}
		if _, dup := idx[o.ID]; dup {
			return nil, fmt.Errorf("%s %q: duplicate id", cat, o.ID)
		}
		idx[o.ID] = i
	}
	return idx, nil
}

func indexSizes(sizes []SizeOption) (map[string]int, error) {
	if len(sizes) == 0 {
		return nil, fmt.Errorf("%s: at least one option is required", CategorySize)
	}
	idx := make(map[string]int, len(sizes))
	for i, s := range sizes {
		if s.ID == "" {
			return nil, fmt.Errorf("%s[%d]: missing id", CategorySize, i)
		}
		if s.Name == "" {
			return nil, fmt.Errorf("%s %q: missing name", CategorySize, s.ID)
		}
		if !s.Multiplier.IsPositive() {
			return nil, fmt.Errorf("%s %q: multiplier must be positive", CategorySize, s.ID)
		}
		if _, dup := idx[s.ID]; dup {
			return nil, fmt.Errorf("%s %q: duplicate id", CategorySize, s.ID)
		}
		idx[s.ID] = i
	}
	return idx, nil
}
