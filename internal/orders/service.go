package orders

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/swiftbasket/swiftbasket-backend/internal/cart"
	"github.com/swiftbasket/swiftbasket-backend/internal/checkout"
	"github.com/swiftbasket/swiftbasket-backend/pkg/db/models"
	pkgerrors "github.com/swiftbasket/swiftbasket-backend/pkg/errors"
	"github.com/swiftbasket/swiftbasket-backend/pkg/logger"
	"gorm.io/gorm"
)

type cartProvider interface {
	Get(ctx context.Context, userID string) (cart.Snapshot, error)
	Clear(ctx context.Context, userID string) error
}

type addressProvider interface {
	Get(ctx context.Context, userID uuid.UUID) (*models.Address, error)
}

// Service places and reads orders.
type Service struct {
	db        *gorm.DB
	carts     cartProvider
	addresses addressProvider
	fees      checkout.Fees
	window    time.Duration
	logg      *logger.Logger
	now       func() time.Time
}

// NewService wires the orders service.
func NewService(db *gorm.DB, carts cartProvider, addresses addressProvider, fees checkout.Fees, window time.Duration, logg *logger.Logger) *Service {
	return &Service{
		db:        db,
		carts:     carts,
		addresses: addresses,
		fees:      fees,
		window:    window,
		logg:      logg,
		now:       time.Now,
	}
}

// PlaceOrder turns the user's cart into an order. The cart must be
// non-empty and a delivery address must be saved. Payment is simulated
// with a generated reference; no gateway is involved. The cart is
// cleared once the order row commits.
func (s *Service) PlaceOrder(ctx context.Context, userID uuid.UUID, donate bool) (*models.Order, error) {
	snapshot, err := s.carts.Get(ctx, userID.String())
	if err != nil {
		return nil, err
	}
	if len(snapshot.Lines) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}

	addr, err := s.addresses.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if addr == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "delivery address is required")
	}

	bill := checkout.Quote(snapshot.Totals, s.fees, donate)
	now := s.now().UTC()

	order := models.Order{
		ID:                uuid.New(),
		UserID:            userID,
		SubtotalPaise:     bill.Subtotal.Paise(),
		SavingsPaise:      bill.Savings.Paise(),
		DeliveryFeePaise:  bill.DeliveryFee.Paise(),
		HandlingFeePaise:  bill.HandlingFee.Paise(),
		SmallCartFeePaise: bill.SmallCartFee.Paise(),
		DonationPaise:     bill.Donation.Paise(),
		GrandTotalPaise:   bill.GrandTotal.Paise(),
		PaymentRef:        newPaymentRef(),
		DeliveryHouseNo:   addr.HouseNo,
		DeliveryArea:      addr.Area,
		DeliveryReceiver:  addr.ReceiverName,
		DeliveryLabel:     string(addr.Label),
		PlacedAt:          now,
	}
	for _, line := range snapshot.Lines {
		item := models.OrderItem{
			ID:             uuid.New(),
			OrderID:        order.ID,
			ProductSlug:    line.Slug,
			Name:           line.Name,
			Weight:         line.Weight,
			Image:          line.Image,
			UnitPricePaise: line.UnitPrice.Paise(),
			Quantity:       line.Quantity,
			LineTotalPaise: line.LineTotal().Paise(),
		}
		if line.CompareAt != nil {
			paise := line.CompareAt.Paise()
			item.CompareAtPricePaise = &paise
		}
		order.Items = append(order.Items, item)
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&order).Error
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persisting order")
	}

	if err := s.carts.Clear(ctx, userID.String()); err != nil {
		// the order is committed; a stale cart is recoverable
		if s.logg != nil {
			s.logg.Error(s.logg.WithOrderID(ctx, order.ID.String()), "clearing cart after order", err)
		}
	}

	if s.logg != nil {
		s.logg.Info(s.logg.WithOrderID(ctx, order.ID.String()), "order placed")
	}
	return &order, nil
}

// List returns the user's orders, newest first, items included.
func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]models.Order, error) {
	var orders []models.Order
	err := s.db.WithContext(ctx).
		Preload("Items").
		Where("user_id = ?", userID).
		Order("placed_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing orders")
	}
	return orders, nil
}

// Detail loads a single order scoped to the user.
func (s *Service) Detail(ctx context.Context, userID, orderID uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := s.db.WithContext(ctx).
		Preload("Items").
		Where("user_id = ?", userID).
		First(&order, "id = ?", orderID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading order")
	}
	return &order, nil
}

// Track reports the simulated delivery progress for an order.
func (s *Service) Track(ctx context.Context, userID, orderID uuid.UUID) (*Tracking, error) {
	order, err := s.Detail(ctx, userID, orderID)
	if err != nil {
		return nil, err
	}
	tracking := trackOrder(order.PlacedAt, s.window, s.now().UTC())
	return &tracking, nil
}

func newPaymentRef() string {
	return "PAY-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:12])
}
