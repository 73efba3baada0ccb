package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/swiftbasket/swiftbasket-backend/api/middleware"
	"github.com/swiftbasket/swiftbasket-backend/api/responses"
	"github.com/swiftbasket/swiftbasket-backend/api/validators"
	"github.com/swiftbasket/swiftbasket-backend/internal/cart"
	"github.com/swiftbasket/swiftbasket-backend/internal/catalog"
	"github.com/swiftbasket/swiftbasket-backend/internal/checkout"
	pkgerrors "github.com/swiftbasket/swiftbasket-backend/pkg/errors"
	"github.com/swiftbasket/swiftbasket-backend/pkg/logger"
	"github.com/swiftbasket/swiftbasket-backend/pkg/money"
)

type cartAddRequest struct {
	Slug string `json:"slug" validate:"required"`
}

type cartQuantityRequest struct {
	Quantity int `json:"quantity" validate:"min=0"`
}

type cartLineResponse struct {
	Slug      string  `json:"slug"`
	Name      string  `json:"name"`
	Weight    string  `json:"weight"`
	Image     string  `json:"image"`
	UnitPrice string  `json:"unit_price"`
	OldPrice  *string `json:"old_price,omitempty"`
	Quantity  int     `json:"quantity"`
	LineTotal string  `json:"line_total"`
}

type cartResponse struct {
	Lines    []cartLineResponse `json:"lines"`
	Items    int                `json:"items"`
	Subtotal string             `json:"subtotal"`
	Savings  string             `json:"savings"`
}

type billResponse struct {
	Subtotal     string `json:"subtotal"`
	Savings      string `json:"savings"`
	DeliveryFee  string `json:"delivery_fee"`
	HandlingFee  string `json:"handling_fee"`
	SmallCartFee string `json:"small_cart_fee,omitempty"`
	Donation     string `json:"donation,omitempty"`
	GrandTotal   string `json:"grand_total"`
}

func toCartResponse(snapshot cart.Snapshot) cartResponse {
	lines := make([]cartLineResponse, 0, len(snapshot.Lines))
	for _, line := range snapshot.Lines {
		resp := cartLineResponse{
			Slug:      line.Slug,
			Name:      line.Name,
			Weight:    line.Weight,
			Image:     line.Image,
			UnitPrice: line.UnitPrice.String(),
			Quantity:  line.Quantity,
			LineTotal: line.LineTotal().String(),
		}
		if line.CompareAt != nil && *line.CompareAt > line.UnitPrice {
			old := line.CompareAt.String()
			resp.OldPrice = &old
		}
		lines = append(lines, resp)
	}
	return cartResponse{
		Lines:    lines,
		Items:    snapshot.Totals.Items,
		Subtotal: snapshot.Totals.Subtotal.String(),
		Savings:  snapshot.Totals.Savings.String(),
	}
}

func toBillResponse(bill checkout.Bill) billResponse {
	resp := billResponse{
		Subtotal:    bill.Subtotal.String(),
		Savings:     bill.Savings.String(),
		DeliveryFee: bill.DeliveryFee.String(),
		HandlingFee: bill.HandlingFee.String(),
		GrandTotal:  bill.GrandTotal.String(),
	}
	if !bill.SmallCartFee.IsZero() {
		resp.SmallCartFee = bill.SmallCartFee.String()
	}
	if !bill.Donation.IsZero() {
		resp.Donation = bill.Donation.String()
	}
	return resp
}

// CartFetch returns the caller's cart.
func CartFetch(svc *cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := middleware.UserIDFromContext(r.Context())
		if userID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "user not found in context"))
			return
		}

		snapshot, err := svc.Get(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, toCartResponse(snapshot))
	}
}

// CartAdd puts one more unit of a product into the cart. The price
// snapshot is taken from the catalog at add time.
func CartAdd(svc *cart.Service, catalogSvc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := middleware.UserIDFromContext(r.Context())
		if userID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "user not found in context"))
			return
		}

		var req cartAddRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := catalogSvc.Get(r.Context(), req.Slug)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		item := cart.Item{
			Slug:      product.Slug,
			Name:      product.Name,
			Weight:    product.Weight,
			UnitPrice: money.FromPaise(product.PricePaise),
		}
		if len(product.Images) > 0 {
			item.Image = product.Images[0]
		}
		if product.OldPricePaise != nil {
			compareAt := money.FromPaise(*product.OldPricePaise)
			item.CompareAt = &compareAt
		}

		snapshot, err := svc.Add(r.Context(), userID, item)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, toCartResponse(snapshot))
	}
}

// CartDecrement drops one unit, removing the line at quantity one.
func CartDecrement(svc *cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := middleware.UserIDFromContext(r.Context())
		if userID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "user not found in context"))
			return
		}

		snapshot, err := svc.Decrement(r.Context(), userID, chi.URLParam(r, "slug"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, toCartResponse(snapshot))
	}
}

// CartRemove deletes a line regardless of quantity.
func CartRemove(svc *cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := middleware.UserIDFromContext(r.Context())
		if userID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "user not found in context"))
			return
		}

		snapshot, err := svc.Remove(r.Context(), userID, chi.URLParam(r, "slug"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, toCartResponse(snapshot))
	}
}

// CartSetQuantity overwrites a line's quantity. Zero removes the line;
// a slug not already in the cart is left untouched.
func CartSetQuantity(svc *cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := middleware.UserIDFromContext(r.Context())
		if userID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "user not found in context"))
			return
		}

		var req cartQuantityRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		snapshot, err := svc.SetQuantity(r.Context(), userID, chi.URLParam(r, "slug"), req.Quantity)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, toCartResponse(snapshot))
	}
}

// CartClear empties the cart.
func CartClear(svc *cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := middleware.UserIDFromContext(r.Context())
		if userID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "user not found in context"))
			return
		}

		if err := svc.Clear(r.Context(), userID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, toCartResponse(cart.Snapshot{}))
	}
}

// CartQuote prices the current cart without placing an order. The
// charity donation is included when ?donate=true.
func CartQuote(svc *cart.Service, fees checkout.Fees, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := middleware.UserIDFromContext(r.Context())
		if userID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "user not found in context"))
			return
		}

		snapshot, err := svc.Get(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		donate := r.URL.Query().Get("donate") == "true"
		bill := checkout.Quote(snapshot.Totals, fees, donate)

		responses.WriteSuccess(w, map[string]any{
			"cart": toCartResponse(snapshot),
			"bill": toBillResponse(bill),
		})
	}
}
