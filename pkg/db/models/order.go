package models

import (
	"time"

	"github.com/google/uuid"
)

// Order snapshots a checkout: cart lines, the fee breakdown, and the
// delivery address at the time of placement. Tracking status is derived
// from PlacedAt rather than stored (the courier flow is simulated).
type Order struct {
	ID                 uuid.UUID   `gorm:"column:id;type:uuid;primaryKey"`
	UserID             uuid.UUID   `gorm:"column:user_id;type:uuid;not null;index"`
	SubtotalPaise      int64       `gorm:"column:subtotal_paise;not null"`
	SavingsPaise       int64       `gorm:"column:savings_paise;not null"`
	DeliveryFeePaise   int64       `gorm:"column:delivery_fee_paise;not null"`
	HandlingFeePaise   int64       `gorm:"column:handling_fee_paise;not null"`
	SmallCartFeePaise  int64       `gorm:"column:small_cart_fee_paise;not null"`
	DonationPaise      int64       `gorm:"column:donation_paise;not null"`
	GrandTotalPaise    int64       `gorm:"column:grand_total_paise;not null"`
	PaymentRef         string      `gorm:"column:payment_ref;not null"`
	DeliveryHouseNo    string      `gorm:"column:delivery_house_no;not null"`
	DeliveryArea       string      `gorm:"column:delivery_area;not null"`
	DeliveryReceiver   string      `gorm:"column:delivery_receiver;not null"`
	DeliveryLabel      string      `gorm:"column:delivery_label;not null"`
	PlacedAt           time.Time   `gorm:"column:placed_at;not null"`
	Items              []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt          time.Time   `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt          time.Time   `gorm:"column:updated_at;autoUpdateTime"`
}

// OrderItem is one purchased cart line, frozen at placement time.
type OrderItem struct {
	ID                  uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	OrderID             uuid.UUID `gorm:"column:order_id;type:uuid;not null;index"`
	ProductSlug         string    `gorm:"column:product_slug;not null"`
	Name                string    `gorm:"column:name;not null"`
	Weight              string    `gorm:"column:weight"`
	Image               string    `gorm:"column:image"`
	UnitPricePaise      int64     `gorm:"column:unit_price_paise;not null"`
	CompareAtPricePaise *int64    `gorm:"column:compare_at_price_paise"`
	Quantity            int       `gorm:"column:quantity;not null"`
	LineTotalPaise      int64     `gorm:"column:line_total_paise;not null"`
	CreatedAt           time.Time `gorm:"column:created_at;autoCreateTime"`
}
