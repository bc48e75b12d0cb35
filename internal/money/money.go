package money

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const DefaultSymbol = "₦"

// Formatter renders whole-unit amounts with locale digit grouping, e.g. "₦15,000".
type Formatter struct {
	printer *message.Printer
	symbol  string
}

func NewFormatter(tag language.Tag, symbol string) Formatter {
	return Formatter{printer: message.NewPrinter(tag), symbol: symbol}
}

func DefaultFormatter() Formatter {
	return NewFormatter(language.English, DefaultSymbol)
}

// Format rounds to whole units (half away from zero) and prints no decimal places.
func (f Formatter) Format(amount decimal.Decimal) string {
	whole := amount.Round(0).IntPart()
	sign := ""
	if whole < 0 {
		sign = "-"
		whole = -whole
	}
	return sign + f.symbol + f.printer.Sprintf("%d", whole)
}

func (f Formatter) Symbol() string {
	return f.symbol
}

// ParseDisplay turns a formatted price back into a number by discarding every
// character that is not a digit or '.', then reading the longest numeric prefix.
// Strings with no numeric content parse as zero.
func ParseDisplay(s string) decimal.Decimal {
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	raw := numericPrefix(b.String())
	if raw == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// numericPrefix keeps digits up to the second '.', like a decimal literal reader would.
func numericPrefix(s string) string {
	if first := strings.IndexByte(s, '.'); first >= 0 {
		if second := strings.IndexByte(s[first+1:], '.'); second >= 0 {
			s = s[:first+1+second]
		}
	}
	s = strings.TrimSuffix(s, ".")
	if strings.HasPrefix(s, ".") {
		s = "0" + s
	}
	return s
}
