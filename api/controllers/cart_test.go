package controllers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/swiftbasket/swiftbasket-backend/api/middleware"
	"github.com/swiftbasket/swiftbasket-backend/internal/cart"
	"github.com/swiftbasket/swiftbasket-backend/internal/catalog"
	"github.com/swiftbasket/swiftbasket-backend/internal/checkout"
	pkgerrors "github.com/swiftbasket/swiftbasket-backend/pkg/errors"
	"github.com/swiftbasket/swiftbasket-backend/pkg/logger"
	"github.com/swiftbasket/swiftbasket-backend/pkg/money"
)

type memoryCartStore struct {
	data map[string][]cart.Line
}

func newMemoryCartStore() *memoryCartStore {
	return &memoryCartStore{data: make(map[string][]cart.Line)}
}

func (m *memoryCartStore) Load(ctx context.Context, userID string) ([]cart.Line, error) {
	return m.data[userID], nil
}

func (m *memoryCartStore) Save(ctx context.Context, userID string, lines []cart.Line) error {
	m.data[userID] = lines
	return nil
}

func (m *memoryCartStore) Clear(ctx context.Context, userID string) error {
	delete(m.data, userID)
	return nil
}

type fixedCatalog struct {
	products map[string]catalog.ProductDTO
}

func (f fixedCatalog) List(ctx context.Context) ([]catalog.ProductDTO, error) {
	return nil, nil
}

func (f fixedCatalog) ListByCategory(ctx context.Context, category string) ([]catalog.ProductDTO, error) {
	return nil, nil
}

func (f fixedCatalog) Get(ctx context.Context, slug string) (*catalog.ProductDTO, error) {
	p, ok := f.products[slug]
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return &p, nil
}

func (f fixedCatalog) Search(ctx context.Context, query string) ([]catalog.ProductDTO, error) {
	return nil, nil
}

func (f fixedCatalog) Categories(ctx context.Context) ([]string, error) {
	return nil, nil
}

func testControllerLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Level: logger.ParseLevel("debug"), Output: io.Discard})
}

func testCatalog() fixedCatalog {
	old := int64(6500)
	return fixedCatalog{products: map[string]catalog.ProductDTO{
		"catch-cumin-seeds": {
			Slug:          "catch-cumin-seeds",
			Name:          "Catch Cumin Seeds",
			Weight:        "100 g",
			PricePaise:    4900,
			OldPricePaise: &old,
			Images:        []string{"https://cdn.example.com/cumin.png"},
		},
	}}
}

func authedRequest(method, target string, body io.Reader) *http.Request {
	req := httptest.NewRequest(method, target, body)
	return req.WithContext(middleware.WithUserID(req.Context(), "user-1"))
}

func TestCartAddSnapshotsCatalogPrice(t *testing.T) {
	logg := testControllerLogger()
	svc := cart.NewService(newMemoryCartStore(), logg)
	handler := CartAdd(svc, testCatalog(), logg)

	req := authedRequest(http.MethodPost, "/api/v1/cart/items", strings.NewReader(`{"slug":"catch-cumin-seeds"}`))
	resp := httptest.NewRecorder()
	handler(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body %s", resp.Code, resp.Body.String())
	}

	var envelope struct {
		Data cartResponse `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(envelope.Data.Lines) != 1 {
		t.Fatalf("expected one line got %d", len(envelope.Data.Lines))
	}
	line := envelope.Data.Lines[0]
	if line.UnitPrice != "₹49.00" {
		t.Fatalf("expected snapshot price ₹49.00 got %s", line.UnitPrice)
	}
	if line.OldPrice == nil || *line.OldPrice != "₹65.00" {
		t.Fatalf("expected old price ₹65.00 got %v", line.OldPrice)
	}
}

func TestCartAddUnknownProduct(t *testing.T) {
	logg := testControllerLogger()
	svc := cart.NewService(newMemoryCartStore(), logg)
	handler := CartAdd(svc, testCatalog(), logg)

	req := authedRequest(http.MethodPost, "/api/v1/cart/items", strings.NewReader(`{"slug":"nope"}`))
	resp := httptest.NewRecorder()
	handler(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
}

func TestCartFetchRequiresUser(t *testing.T) {
	logg := testControllerLogger()
	svc := cart.NewService(newMemoryCartStore(), logg)
	handler := CartFetch(svc, logg)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart/", nil)
	resp := httptest.NewRecorder()
	handler(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestCartQuoteIncludesDonation(t *testing.T) {
	logg := testControllerLogger()
	store := newMemoryCartStore()
	svc := cart.NewService(store, logg)

	snapshot, err := svc.Add(context.Background(), "user-1", cart.Item{
		Slug:      "catch-cumin-seeds",
		Name:      "Catch Cumin Seeds",
		UnitPrice: money.Amount(4900),
	})
	if err != nil {
		t.Fatalf("seeding cart: %v", err)
	}
	if snapshot.Totals.Items != 1 {
		t.Fatalf("expected one item got %d", snapshot.Totals.Items)
	}

	fees := checkout.Fees{
		Delivery:           money.Amount(2500),
		Handling:           money.Amount(200),
		SmallCart:          money.Amount(2000),
		SmallCartThreshold: money.Amount(10000),
		Donation:           money.Amount(200),
	}
	handler := CartQuote(svc, fees, logg)

	req := authedRequest(http.MethodGet, "/api/v1/cart/quote?donate=true", nil)
	resp := httptest.NewRecorder()
	handler(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body %s", resp.Code, resp.Body.String())
	}

	var envelope struct {
		Data struct {
			Bill billResponse `json:"bill"`
		} `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	bill := envelope.Data.Bill
	if bill.Donation != "₹2.00" {
		t.Fatalf("expected donation ₹2.00 got %q", bill.Donation)
	}
	if bill.SmallCartFee != "₹20.00" {
		t.Fatalf("expected small cart fee ₹20.00 got %q", bill.SmallCartFee)
	}
	// 49 + 25 + 2 + 20 + 2
	if bill.GrandTotal != "₹98.00" {
		t.Fatalf("expected grand total ₹98.00 got %q", bill.GrandTotal)
	}
}

func TestCartSetQuantityRejectsNegative(t *testing.T) {
	logg := testControllerLogger()
	svc := cart.NewService(newMemoryCartStore(), logg)
	handler := CartSetQuantity(svc, logg)

	req := authedRequest(http.MethodPut, "/api/v1/cart/items/foo", strings.NewReader(`{"quantity":-2}`))
	resp := httptest.NewRecorder()
	handler(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}
