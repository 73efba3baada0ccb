package checkout

import (
	"github.com/swiftbasket/swiftbasket-backend/internal/cart"
	"github.com/swiftbasket/swiftbasket-backend/pkg/config"
	"github.com/swiftbasket/swiftbasket-backend/pkg/money"
)

// Fees are the flat charges applied at checkout.
type Fees struct {
	Delivery           money.Amount
	Handling           money.Amount
	SmallCart          money.Amount
	SmallCartThreshold money.Amount
	Donation           money.Amount
}

// FeesFromConfig maps the configured paise values into Fees.
func FeesFromConfig(cfg config.CheckoutConfig) Fees {
	return Fees{
		Delivery:           money.FromPaise(cfg.DeliveryFeePaise),
		Handling:           money.FromPaise(cfg.HandlingFeePaise),
		SmallCart:          money.FromPaise(cfg.SmallCartFeePaise),
		SmallCartThreshold: money.FromPaise(cfg.SmallCartThresholdPaise),
		Donation:           money.FromPaise(cfg.DonationPaise),
	}
}

// Bill is the itemized total for a cart. Savings is informational and
// never subtracted; the strike-through prices it derives from are not
// part of the subtotal.
type Bill struct {
	Subtotal     money.Amount
	Savings      money.Amount
	DeliveryFee  money.Amount
	HandlingFee  money.Amount
	SmallCartFee money.Amount
	Donation     money.Amount
	GrandTotal   money.Amount
}

// Quote computes the bill for the given cart totals. An empty cart
// produces an all-zero bill. The small cart fee applies only when the
// subtotal is below the threshold.
func Quote(totals cart.Totals, fees Fees, donate bool) Bill {
	if totals.Items == 0 {
		return Bill{}
	}

	bill := Bill{
		Subtotal:    totals.Subtotal,
		Savings:     totals.Savings,
		DeliveryFee: fees.Delivery,
		HandlingFee: fees.Handling,
	}
	if totals.Subtotal < fees.SmallCartThreshold {
		bill.SmallCartFee = fees.SmallCart
	}
	if donate {
		bill.Donation = fees.Donation
	}

	bill.GrandTotal = bill.Subtotal + bill.DeliveryFee + bill.HandlingFee + bill.SmallCartFee + bill.Donation
	return bill
}
