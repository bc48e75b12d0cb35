package customizer

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/andreasstove999/ecommerce-system/cakeshop-service-go/internal/catalog"
)

const MaxMessageLength = 50

var (
	ErrMessageTooLong   = fmt.Errorf("message longer than %d characters", MaxMessageLength)
	ErrDuplicateTopping = errors.New("duplicate topping")
)

// Selection identifies one configuration of a custom cake by option id.
// ToppingIDs keeps the order in which toppings were picked.
type Selection struct {
	FlavorID   string   `json:"flavorId"`
	SizeID     string   `json:"sizeId"`
	FrostingID string   `json:"frostingId"`
	ToppingIDs []string `json:"toppingIds"`
	Message    string   `json:"message"`
}

// DefaultSelection is the first option of every category, no toppings and no message.
func DefaultSelection(cat *catalog.Catalog) Selection {
	return Selection{
		FlavorID:   cat.DefaultFlavor().ID,
		SizeID:     cat.DefaultSize().ID,
		FrostingID: cat.DefaultFrosting().ID,
		ToppingIDs: []string{},
	}
}

// WithDefaults fills empty ids from the catalog defaults.
func (s Selection) WithDefaults(cat *catalog.Catalog) Selection {
	d := DefaultSelection(cat)
	if s.FlavorID == "" {
		s.FlavorID = d.FlavorID
	}
	if s.SizeID == "" {
		s.SizeID = d.SizeID
	}
	if s.FrostingID == "" {
		s.FrostingID = d.FrostingID
	}
	if s.ToppingIDs == nil {
		s.ToppingIDs = []string{}
	}
	return s
}

func (s Selection) clone() Selection {
	s.ToppingIDs = append([]string{}, s.ToppingIDs...)
	return s
}

func (s Selection) hasTopping(id string) bool {
	for _, t := range s.ToppingIDs {
		if t == id {
			return true
		}
	}
	return false
}

// ClampMessage truncates s to MaxMessageLength characters, the way the message
// input does while typing.
func ClampMessage(s string) string {
	if utf8.RuneCountInString(s) <= MaxMessageLength {
		return s
	}
	return string([]rune(s)[:MaxMessageLength])
}

// ValidateMessage rejects messages that bypassed the input limit.
func ValidateMessage(s string) error {
	if utf8.RuneCountInString(s) > MaxMessageLength {
		return ErrMessageTooLong
	}
	return nil
}
