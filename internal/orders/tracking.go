package orders

import (
	"fmt"
	"time"
)

// Status is the simulated courier state of an order.
type Status string

const (
	StatusConfirmed      Status = "confirmed"
	StatusPacking        Status = "packing"
	StatusOutForDelivery Status = "out_for_delivery"
	StatusDelivered      Status = "delivered"
)

// Tracking is the point-in-time view of an order's delivery progress.
type Tracking struct {
	Status    Status    `json:"status"`
	Message   string    `json:"message"`
	PlacedAt  time.Time `json:"placed_at"`
	ETA       time.Time `json:"eta"`
	Delivered bool      `json:"delivered"`
}

// trackOrder derives progress purely from elapsed time since
// placement. The first eighth of the window is confirmation, packing
// runs until three eighths, then the order is out for delivery until
// the window closes.
func trackOrder(placedAt time.Time, window time.Duration, now time.Time) Tracking {
	elapsed := now.Sub(placedAt)
	eta := placedAt.Add(window)

	tracking := Tracking{
		PlacedAt: placedAt,
		ETA:      eta,
	}

	switch {
	case elapsed >= window:
		tracking.Status = StatusDelivered
		tracking.Delivered = true
		tracking.Message = "Order delivered"
	case elapsed >= 3*window/8:
		tracking.Status = StatusOutForDelivery
		tracking.Message = deliveryMessage(eta.Sub(now))
	case elapsed >= window/8:
		tracking.Status = StatusPacking
		tracking.Message = deliveryMessage(eta.Sub(now))
	default:
		tracking.Status = StatusConfirmed
		tracking.Message = deliveryMessage(eta.Sub(now))
	}

	return tracking
}

func deliveryMessage(remaining time.Duration) string {
	minutes := int(remaining.Round(time.Minute) / time.Minute)
	if minutes < 1 {
		return "Delivery in under a minute"
	}
	if minutes == 1 {
		return "Delivery in 1 minute"
	}
	return fmt.Sprintf("Delivery in %d minutes", minutes)
}
