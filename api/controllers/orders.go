package controllers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/swiftbasket/swiftbasket-backend/api/responses"
	"github.com/swiftbasket/swiftbasket-backend/api/validators"
	"github.com/swiftbasket/swiftbasket-backend/internal/orders"
	"github.com/swiftbasket/swiftbasket-backend/pkg/db/models"
	pkgerrors "github.com/swiftbasket/swiftbasket-backend/pkg/errors"
	"github.com/swiftbasket/swiftbasket-backend/pkg/logger"
	"github.com/swiftbasket/swiftbasket-backend/pkg/money"
)

type placeOrderRequest struct {
	Donate bool `json:"donate"`
}

type orderItemResponse struct {
	Slug      string  `json:"slug"`
	Name      string  `json:"name"`
	Weight    string  `json:"weight"`
	Image     string  `json:"image"`
	UnitPrice string  `json:"unit_price"`
	OldPrice  *string `json:"old_price,omitempty"`
	Quantity  int     `json:"quantity"`
	LineTotal string  `json:"line_total"`
}

type orderResponse struct {
	ID           string              `json:"id"`
	PaymentRef   string              `json:"payment_ref"`
	Subtotal     string              `json:"subtotal"`
	Savings      string              `json:"savings"`
	DeliveryFee  string              `json:"delivery_fee"`
	HandlingFee  string              `json:"handling_fee"`
	SmallCartFee string              `json:"small_cart_fee,omitempty"`
	Donation     string              `json:"donation,omitempty"`
	GrandTotal   string              `json:"grand_total"`
	Address      addressResponse     `json:"address"`
	PlacedAt     time.Time           `json:"placed_at"`
	Items        []orderItemResponse `json:"items"`
}

func toOrderResponse(order *models.Order) orderResponse {
	items := make([]orderItemResponse, 0, len(order.Items))
	for _, it := range order.Items {
		item := orderItemResponse{
			Slug:      it.ProductSlug,
			Name:      it.Name,
			Weight:    it.Weight,
			Image:     it.Image,
			UnitPrice: money.FromPaise(it.UnitPricePaise).String(),
			Quantity:  it.Quantity,
			LineTotal: money.FromPaise(it.LineTotalPaise).String(),
		}
		if it.CompareAtPricePaise != nil && *it.CompareAtPricePaise > it.UnitPricePaise {
			old := money.FromPaise(*it.CompareAtPricePaise).String()
			item.OldPrice = &old
		}
		items = append(items, item)
	}

	resp := orderResponse{
		ID:          order.ID.String(),
		PaymentRef:  order.PaymentRef,
		Subtotal:    money.FromPaise(order.SubtotalPaise).String(),
		Savings:     money.FromPaise(order.SavingsPaise).String(),
		DeliveryFee: money.FromPaise(order.DeliveryFeePaise).String(),
		HandlingFee: money.FromPaise(order.HandlingFeePaise).String(),
		GrandTotal:  money.FromPaise(order.GrandTotalPaise).String(),
		Address: addressResponse{
			HouseNo:      order.DeliveryHouseNo,
			Area:         order.DeliveryArea,
			ReceiverName: order.DeliveryReceiver,
			Label:        order.DeliveryLabel,
		},
		PlacedAt: order.PlacedAt,
		Items:    items,
	}
	if order.SmallCartFeePaise > 0 {
		resp.SmallCartFee = money.FromPaise(order.SmallCartFeePaise).String()
	}
	if order.DonationPaise > 0 {
		resp.Donation = money.FromPaise(order.DonationPaise).String()
	}
	return resp
}

func orderIDParam(r *http.Request) (uuid.UUID, error) {
	raw := chi.URLParam(r, "orderId")
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, "order id must be a UUID")
	}
	return id, nil
}

// OrderPlace converts the cart into an order against the saved address.
func OrderPlace(svc *orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := callerID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req placeOrderRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.PlaceOrder(r.Context(), userID, req.Donate)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, toOrderResponse(order))
	}
}

// OrderList returns the caller's orders, newest first.
func OrderList(svc *orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := callerID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		list, err := svc.List(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		out := make([]orderResponse, 0, len(list))
		for i := range list {
			out = append(out, toOrderResponse(&list[i]))
		}
		responses.WriteSuccess(w, map[string]any{"orders": out})
	}
}

// OrderDetail returns one order owned by the caller.
func OrderDetail(svc *orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := callerID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		orderID, err := orderIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.Detail(r.Context(), userID, orderID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, toOrderResponse(order))
	}
}

// OrderTrack reports the simulated delivery progress of an order.
func OrderTrack(svc *orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := callerID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		orderID, err := orderIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		tracking, err := svc.Track(r.Context(), userID, orderID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, tracking)
	}
}
