package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nmoreno/bazaar-backend/api/middleware"
	cartsvc "github.com/nmoreno/bazaar-backend/internal/cart"
	checkoutsvc "github.com/nmoreno/bazaar-backend/internal/checkout"
	pkgerrors "github.com/nmoreno/bazaar-backend/pkg/errors"
	"github.com/nmoreno/bazaar-backend/pkg/types"
)

type stubCartService struct {
	added []uuid.UUID
	item  *cartsvc.ItemDTO
	cart  *cartsvc.CartDTO
	err   error
}

func (s *stubCartService) AddItem(_ context.Context, _, productID uuid.UUID) (*cartsvc.ItemDTO, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.added = append(s.added, productID)
	return s.item, nil
}

func (s *stubCartService) ViewCart(_ context.Context, _ uuid.UUID) (*cartsvc.CartDTO, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.cart, nil
}

type stubCheckoutService struct {
	result *checkoutsvc.Result
	err    error
	called bool
}

func (s *stubCheckoutService) Checkout(_ context.Context, _ uuid.UUID) (*checkoutsvc.Result, error) {
	s.called = true
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func TestCartAddItem(t *testing.T) {
	logg := testControllerLogger()
	userID := uuid.New()
	productID := uuid.New()

	t.Run("missing user", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", strings.NewReader(`{"product_id":"`+productID.String()+`"}`))
		rec := httptest.NewRecorder()
		CartAddItem(&stubCartService{}, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("missing product id", func(t *testing.T) {
		ctx := middleware.WithUserID(context.Background(), userID.String())
		req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", strings.NewReader(`{}`)).WithContext(ctx)
		rec := httptest.NewRecorder()
		CartAddItem(&stubCartService{}, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		stub := &stubCartService{item: &cartsvc.ItemDTO{ProductID: productID, Quantity: 2}}
		ctx := middleware.WithUserID(context.Background(), userID.String())
		req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", strings.NewReader(`{"product_id":"`+productID.String()+`"}`)).WithContext(ctx)
		rec := httptest.NewRecorder()
		CartAddItem(stub, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if len(stub.added) != 1 || stub.added[0] != productID {
			t.Fatalf("expected AddItem called with %s", productID)
		}
	})
}

func TestCartView(t *testing.T) {
	logg := testControllerLogger()
	userID := uuid.New()

	stub := &stubCartService{cart: &cartsvc.CartDTO{
		Items: []cartsvc.ItemDTO{{ProductID: uuid.New(), Quantity: 2, LineTotal: decimal.RequireFromString("19.98")}},
		Total: decimal.RequireFromString("19.98"),
	}}
	ctx := middleware.WithUserID(context.Background(), userID.String())
	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil).WithContext(ctx)
	rec := httptest.NewRecorder()
	CartView(stub, logg).ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var body types.SuccessEnvelope
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	data := body.Data.(map[string]any)
	if data["total"] != "19.98" {
		t.Fatalf("unexpected total %v", data["total"])
	}
}

func TestCheckout(t *testing.T) {
	logg := testControllerLogger()
	userID := uuid.New()

	t.Run("success", func(t *testing.T) {
		stub := &stubCheckoutService{result: &checkoutsvc.Result{
			OrderCount: 2,
			InvoiceID:  uuid.New(),
			Total:      decimal.RequireFromString("43.46"),
		}}
		ctx := middleware.WithUserID(context.Background(), userID.String())
		req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout", nil).WithContext(ctx)
		rec := httptest.NewRecorder()
		Checkout(stub, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if !stub.called {
			t.Fatal("expected Checkout to be invoked")
		}
	})

	t.Run("email failure surfaces as dependency error", func(t *testing.T) {
		stub := &stubCheckoutService{err: pkgerrors.New(pkgerrors.CodeDependency, "send invoice email")}
		ctx := middleware.WithUserID(context.Background(), userID.String())
		req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout", nil).WithContext(ctx)
		rec := httptest.NewRecorder()
		Checkout(stub, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusServiceUnavailable {
			t.Fatalf("expected 503, got %d", rec.Code)
		}
	})
}
