package cart

import (
	"testing"

	"github.com/swiftbasket/swiftbasket-backend/pkg/money"
)

func amountPtr(a money.Amount) *money.Amount { return &a }

func testItem(slug string, unit money.Amount) Item {
	return Item{
		Slug:      slug,
		Name:      "Item " + slug,
		Weight:    "500 g",
		UnitPrice: unit,
	}
}

func TestAddNewItemStartsAtOne(t *testing.T) {
	t.Parallel()

	c := New()
	c.Add(testItem("atta", 5500))

	if got := c.Quantity("atta"); got != 1 {
		t.Fatalf("expected quantity 1, got %d", got)
	}
	if len(c.Lines()) != 1 {
		t.Fatalf("expected one line, got %d", len(c.Lines()))
	}
}

func TestAddExistingItemIncrements(t *testing.T) {
	t.Parallel()

	c := New()
	c.Add(testItem("atta", 5500))
	c.Add(testItem("milk", 3000))
	c.Add(testItem("atta", 5500))
	c.Add(testItem("atta", 5500))

	if got := c.Quantity("atta"); got != 3 {
		t.Fatalf("expected quantity 3, got %d", got)
	}

	lines := c.Lines()
	if len(lines) != 2 {
		t.Fatalf("expected two lines, got %d", len(lines))
	}
	if lines[0].Slug != "atta" || lines[1].Slug != "milk" {
		t.Fatalf("insertion order not preserved: %s, %s", lines[0].Slug, lines[1].Slug)
	}
}

func TestAddKeepsOriginalSnapshot(t *testing.T) {
	t.Parallel()

	c := New()
	c.Add(testItem("atta", 5500))
	c.Add(testItem("atta", 9900))

	lines := c.Lines()
	if lines[0].UnitPrice != 5500 {
		t.Fatalf("expected first snapshot retained, got %d", lines[0].UnitPrice)
	}
	if lines[0].Quantity != 2 {
		t.Fatalf("expected quantity 2, got %d", lines[0].Quantity)
	}
}

func TestDecrementRemovesAtOne(t *testing.T) {
	t.Parallel()

	c := New()
	c.Add(testItem("atta", 5500))
	c.Add(testItem("atta", 5500))

	c.Decrement("atta")
	if got := c.Quantity("atta"); got != 1 {
		t.Fatalf("expected quantity 1, got %d", got)
	}

	c.Decrement("atta")
	if got := c.Quantity("atta"); got != 0 {
		t.Fatalf("expected line removed, got quantity %d", got)
	}
	if !c.IsEmpty() {
		t.Fatal("expected empty cart")
	}
}

func TestDecrementUnknownSlugIsNoop(t *testing.T) {
	t.Parallel()

	c := New()
	c.Add(testItem("atta", 5500))
	c.Decrement("ghee")

	if got := c.Quantity("atta"); got != 1 {
		t.Fatalf("cart changed by unknown decrement: %d", got)
	}
}

func TestRemoveDeletesRegardlessOfQuantity(t *testing.T) {
	t.Parallel()

	c := New()
	c.Add(testItem("atta", 5500))
	c.Add(testItem("atta", 5500))
	c.Add(testItem("milk", 3000))

	c.Remove("atta")
	if got := c.Quantity("atta"); got != 0 {
		t.Fatalf("expected removal, got quantity %d", got)
	}
	if got := c.Quantity("milk"); got != 1 {
		t.Fatalf("unrelated line touched: %d", got)
	}
}

func TestRemoveIsIdempotent(t *testing.T) {
	t.Parallel()

	c := New()
	c.Add(testItem("atta", 5500))
	c.Add(testItem("milk", 3000))

	c.Remove("atta")
	c.Remove("atta")
	if got := c.Quantity("milk"); got != 1 {
		t.Fatalf("repeated remove touched another line: %d", got)
	}
	if len(c.Lines()) != 1 {
		t.Fatalf("expected one line, got %d", len(c.Lines()))
	}

	c.Remove("ghee")
	if got := c.Quantity("milk"); got != 1 {
		t.Fatalf("removing absent slug changed the cart: %d", got)
	}
}

func TestSetQuantityOverwrites(t *testing.T) {
	t.Parallel()

	c := New()
	c.Add(testItem("atta", 5500))

	c.SetQuantity("atta", 7)
	if got := c.Quantity("atta"); got != 7 {
		t.Fatalf("expected quantity 7, got %d", got)
	}
}

func TestSetQuantityZeroOrNegativeRemoves(t *testing.T) {
	t.Parallel()

	for _, quantity := range []int{0, -3} {
		c := New()
		c.Add(testItem("atta", 5500))
		c.SetQuantity("atta", quantity)
		if !c.IsEmpty() {
			t.Fatalf("expected removal for quantity %d", quantity)
		}
	}
}

func TestSetQuantityNeverCreatesLines(t *testing.T) {
	t.Parallel()

	c := New()
	c.SetQuantity("atta", 5)

	if !c.IsEmpty() {
		t.Fatal("set quantity on missing slug created a line")
	}
}

func TestClearEmptiesCart(t *testing.T) {
	t.Parallel()

	c := New()
	c.Add(testItem("atta", 5500))
	c.Add(testItem("milk", 3000))
	c.Clear()

	if !c.IsEmpty() {
		t.Fatal("expected empty cart after clear")
	}
	totals := c.Totals()
	if totals.Items != 0 || totals.Subtotal != 0 || totals.Savings != 0 {
		t.Fatalf("expected zero totals, got %+v", totals)
	}
}

func TestTotalsSubtotalAndItemCount(t *testing.T) {
	t.Parallel()

	c := New()
	c.Add(testItem("atta", 5500))
	c.Add(testItem("atta", 5500))
	c.Add(testItem("milk", 3000))

	totals := c.Totals()
	if totals.Items != 3 {
		t.Fatalf("expected 3 items, got %d", totals.Items)
	}
	if totals.Subtotal != 2*5500+3000 {
		t.Fatalf("unexpected subtotal %d", totals.Subtotal)
	}
}

func TestTotalsSavingsClampsInvertedPrices(t *testing.T) {
	t.Parallel()

	discounted := testItem("atta", 5500)
	discounted.CompareAt = amountPtr(7500)

	inverted := testItem("milk", 3000)
	inverted.CompareAt = amountPtr(2500)

	plain := testItem("bread", 4000)

	c := New()
	c.Add(discounted)
	c.Add(discounted)
	c.Add(inverted)
	c.Add(plain)

	totals := c.Totals()
	if totals.Savings != 2*(7500-5500) {
		t.Fatalf("expected savings from discounted line only, got %d", totals.Savings)
	}
}

func TestShoppingRoundTripTotals(t *testing.T) {
	t.Parallel()

	cumin := testItem("catch-cumin-seeds", 4900)
	cumin.CompareAt = amountPtr(6500)
	raisins := testItem("whole-farm-raisins", 15900)

	c := New()
	c.Add(cumin)
	c.Add(raisins)

	totals := c.Totals()
	if totals.Items != 2 || totals.Subtotal != 4900+15900 {
		t.Fatalf("unexpected totals after adds: %+v", totals)
	}
	if totals.Savings != 6500-4900 {
		t.Fatalf("expected savings 1600, got %d", totals.Savings)
	}

	// dropping the discounted line takes its savings with it
	c.Decrement("catch-cumin-seeds")

	totals = c.Totals()
	if totals.Items != 1 {
		t.Fatalf("expected one item, got %d", totals.Items)
	}
	if totals.Subtotal != 15900 {
		t.Fatalf("expected subtotal 15900, got %d", totals.Subtotal)
	}
	if totals.Savings != 0 {
		t.Fatalf("expected zero savings, got %d", totals.Savings)
	}
}

func TestRestoreDropsCorruptLines(t *testing.T) {
	t.Parallel()

	c := Restore([]Line{
		{Item: testItem("atta", 5500), Quantity: 2},
		{Item: testItem("milk", 3000), Quantity: 0},
		{Item: Item{}, Quantity: 4},
	})

	lines := c.Lines()
	if len(lines) != 1 || lines[0].Slug != "atta" {
		t.Fatalf("unexpected restored lines: %+v", lines)
	}
}
