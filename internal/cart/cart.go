package cart

import (
	"github.com/swiftbasket/swiftbasket-backend/pkg/money"
)

// Item is the product snapshot a cart line carries. Price data is
// copied in at add time so later catalog edits do not rewrite carts.
type Item struct {
	Slug      string        `json:"slug"`
	Name      string        `json:"name"`
	Weight    string        `json:"weight"`
	Image     string        `json:"image"`
	UnitPrice money.Amount  `json:"unit_price"`
	CompareAt *money.Amount `json:"compare_at,omitempty"`
}

// Line pairs an item with its quantity.
type Line struct {
	Item
	Quantity int `json:"quantity"`
}

// LineTotal is the unit price multiplied by quantity.
func (l Line) LineTotal() money.Amount {
	return l.UnitPrice.Mul(l.Quantity)
}

// Totals is the derived summary of a cart. It is recomputed from the
// lines on every call and never stored.
type Totals struct {
	Items    int
	Subtotal money.Amount
	Savings  money.Amount
}

// Cart is an ordered collection of lines keyed by item slug. It is not
// safe for concurrent use; Service serializes access per user.
type Cart struct {
	lines []Line
}

// New returns an empty cart.
func New() *Cart {
	return &Cart{}
}

// Restore rebuilds a cart from persisted lines, dropping any line with
// a non-positive quantity or empty slug.
func Restore(lines []Line) *Cart {
	c := &Cart{lines: make([]Line, 0, len(lines))}
	for _, line := range lines {
		if line.Slug == "" || line.Quantity <= 0 {
			continue
		}
		c.lines = append(c.lines, line)
	}
	return c
}

// Add increments the quantity for the item's slug, or appends a new
// line with quantity 1. An existing line keeps its original item
// snapshot.
func (c *Cart) Add(item Item) {
	if item.Slug == "" {
		return
	}
	if i := c.index(item.Slug); i >= 0 {
		c.lines[i].Quantity++
		return
	}
	c.lines = append(c.lines, Line{Item: item, Quantity: 1})
}

// Decrement lowers the quantity by one and removes the line when it
// reaches zero. Unknown slugs are a no-op.
func (c *Cart) Decrement(slug string) {
	i := c.index(slug)
	if i < 0 {
		return
	}
	if c.lines[i].Quantity <= 1 {
		c.removeAt(i)
		return
	}
	c.lines[i].Quantity--
}

// Remove deletes the line regardless of quantity.
func (c *Cart) Remove(slug string) {
	if i := c.index(slug); i >= 0 {
		c.removeAt(i)
	}
}

// SetQuantity replaces an existing line's quantity. Quantities at or
// below zero remove the line. A slug with no line is left untouched:
// only Add creates lines.
func (c *Cart) SetQuantity(slug string, quantity int) {
	i := c.index(slug)
	if i < 0 {
		return
	}
	if quantity <= 0 {
		c.removeAt(i)
		return
	}
	c.lines[i].Quantity = quantity
}

// Quantity reports the quantity for a slug, zero when absent.
func (c *Cart) Quantity(slug string) int {
	if i := c.index(slug); i >= 0 {
		return c.lines[i].Quantity
	}
	return 0
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.lines = nil
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

// Lines returns a copy of the lines in insertion order.
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// Totals recomputes the item count, subtotal, and savings. Savings is
// the sum of positive strike-through gaps; lines priced at or above
// their compare-at price contribute nothing.
func (c *Cart) Totals() Totals {
	var t Totals
	for _, line := range c.lines {
		t.Items += line.Quantity
		t.Subtotal += line.LineTotal()
		if line.CompareAt != nil && *line.CompareAt > line.UnitPrice {
			t.Savings += (*line.CompareAt - line.UnitPrice).Mul(line.Quantity)
		}
	}
	return t
}

func (c *Cart) index(slug string) int {
	for i, line := range c.lines {
		if line.Slug == slug {
			return i
		}
	}
	return -1
}

func (c *Cart) removeAt(i int) {
	c.lines = append(c.lines[:i], c.lines[i+1:]...)
}
