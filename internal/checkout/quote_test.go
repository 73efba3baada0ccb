package checkout

import (
	"testing"

	"github.com/swiftbasket/swiftbasket-backend/internal/cart"
	"github.com/swiftbasket/swiftbasket-backend/pkg/config"
)

func testFees() Fees {
	return FeesFromConfig(config.CheckoutConfig{
		DeliveryFeePaise:        2500,
		HandlingFeePaise:        200,
		SmallCartFeePaise:       2000,
		SmallCartThresholdPaise: 10000,
		DonationPaise:           200,
	})
}

func TestQuoteEmptyCartIsAllZero(t *testing.T) {
	t.Parallel()

	bill := Quote(cart.Totals{}, testFees(), true)
	if bill != (Bill{}) {
		t.Fatalf("expected zero bill for empty cart, got %+v", bill)
	}
}

func TestQuoteAppliesFlatFees(t *testing.T) {
	t.Parallel()

	totals := cart.Totals{Items: 3, Subtotal: 25000, Savings: 3000}
	bill := Quote(totals, testFees(), false)

	if bill.DeliveryFee != 2500 || bill.HandlingFee != 200 {
		t.Fatalf("unexpected fees: %+v", bill)
	}
	if bill.SmallCartFee != 0 {
		t.Fatalf("small cart fee above threshold: %d", bill.SmallCartFee)
	}
	if bill.GrandTotal != 25000+2500+200 {
		t.Fatalf("unexpected grand total %d", bill.GrandTotal)
	}
}

func TestQuoteSmallCartFeeBelowThreshold(t *testing.T) {
	t.Parallel()

	totals := cart.Totals{Items: 1, Subtotal: 9900}
	bill := Quote(totals, testFees(), false)

	if bill.SmallCartFee != 2000 {
		t.Fatalf("expected small cart fee, got %d", bill.SmallCartFee)
	}
	if bill.GrandTotal != 9900+2500+200+2000 {
		t.Fatalf("unexpected grand total %d", bill.GrandTotal)
	}
}

func TestQuoteSmallCartFeeBoundary(t *testing.T) {
	t.Parallel()

	totals := cart.Totals{Items: 1, Subtotal: 10000}
	bill := Quote(totals, testFees(), false)

	if bill.SmallCartFee != 0 {
		t.Fatalf("fee charged at exact threshold: %d", bill.SmallCartFee)
	}
}

func TestQuoteDonationOptIn(t *testing.T) {
	t.Parallel()

	totals := cart.Totals{Items: 2, Subtotal: 20000}

	without := Quote(totals, testFees(), false)
	with := Quote(totals, testFees(), true)

	if without.Donation != 0 {
		t.Fatalf("donation charged without opt-in: %d", without.Donation)
	}
	if with.Donation != 200 {
		t.Fatalf("expected donation, got %d", with.Donation)
	}
	if with.GrandTotal-without.GrandTotal != 200 {
		t.Fatalf("donation not reflected in total")
	}
}

func TestQuoteSavingsNeverReduceTotal(t *testing.T) {
	t.Parallel()

	totals := cart.Totals{Items: 2, Subtotal: 20000, Savings: 5000}
	bill := Quote(totals, testFees(), false)

	if bill.Savings != 5000 {
		t.Fatalf("savings not surfaced: %d", bill.Savings)
	}
	if bill.GrandTotal != 20000+2500+200 {
		t.Fatalf("savings leaked into total: %d", bill.GrandTotal)
	}
}
