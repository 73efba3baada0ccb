package money

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Amount is a currency value in minor units (paise).
type Amount int64

const glyph = "₹"

// Parse converts a display price such as "₹49", "₹1,049.50" or "49" into
// paise. Anything that is not a non-negative decimal after stripping the
// glyph and thousands separators is rejected; amounts never silently
// collapse to zero.
func Parse(display string) (Amount, error) {
	s := strings.TrimSpace(display)
	s = strings.TrimPrefix(s, glyph)
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("money: empty amount %q", display)
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("money: unparseable amount %q: %w", display, err)
	}
	if d.IsNegative() {
		return 0, fmt.Errorf("money: negative amount %q", display)
	}

	return Amount(d.Shift(2).Round(0).IntPart()), nil
}

// MustParse is for static fixtures only.
func MustParse(display string) Amount {
	a, err := Parse(display)
	if err != nil {
		panic(err)
	}
	return a
}

// FromPaise wraps a raw minor-unit value.
func FromPaise(paise int64) Amount {
	return Amount(paise)
}

// Paise returns the raw minor-unit value.
func (a Amount) Paise() int64 {
	return int64(a)
}

// Rupees returns the amount as a decimal in major units.
func (a Amount) Rupees() decimal.Decimal {
	return decimal.New(int64(a), -2)
}

// Mul scales the amount by an item quantity.
func (a Amount) Mul(qty int) Amount {
	return Amount(int64(a) * int64(qty))
}

// IsZero reports whether the amount is exactly zero.
func (a Amount) IsZero() bool {
	return a == 0
}

// String renders the display form, e.g. "₹49.00". Presentation only.
func (a Amount) String() string {
	return glyph + a.Rupees().StringFixed(2)
}
