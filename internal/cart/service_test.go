package cart

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/nmoreno/bazaar-backend/pkg/db/models"
	pkgerrors "github.com/nmoreno/bazaar-backend/pkg/errors"
)

type stubCartRepo struct {
	items map[uuid.UUID]*models.CartItem
	err   error
}

func newStubCartRepo() *stubCartRepo {
	return &stubCartRepo{items: map[uuid.UUID]*models.CartItem{}}
}

func (s *stubCartRepo) AddOne(_ context.Context, userID, productID uuid.UUID) (*models.CartItem, error) {
	if s.err != nil {
		return nil, s.err
	}
	if item, ok := s.items[productID]; ok && item.UserID == userID {
		item.Quantity++
		return item, nil
	}
	item := &models.CartItem{ID: uuid.New(), UserID: userID, ProductID: productID, Quantity: 1}
	s.items[productID] = item
	return item, nil
}

func (s *stubCartRepo) FindByUser(_ context.Context, userID uuid.UUID) ([]models.CartItem, error) {
	if s.err != nil {
		return nil, s.err
	}
	var out []models.CartItem
	for _, item := range s.items {
		if item.UserID == userID {
			out = append(out, *item)
		}
	}
	return out, nil
}

type stubProductLoader struct {
	products map[uuid.UUID]*models.Product
}

func (s *stubProductLoader) FindByID(_ context.Context, id uuid.UUID) (*models.Product, error) {
	if product, ok := s.products[id]; ok {
		return product, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func testProduct(name, price string) *models.Product {
	return &models.Product{
		ID:     uuid.New(),
		ShopID: uuid.New(),
		Name:   name,
		Price:  decimal.RequireFromString(price),
	}
}

func TestAddItemDoubleAddIncrements(t *testing.T) {
	product := testProduct("Widget", "9.99")
	loader := &stubProductLoader{products: map[uuid.UUID]*models.Product{product.ID: product}}
	svc, err := NewService(newStubCartRepo(), loader)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	userID := uuid.New()

	first, err := svc.AddItem(context.Background(), userID, product.ID)
	if err != nil {
		t.Fatalf("first add: %v", err)
	}
	if first.Quantity != 1 {
		t.Fatalf("expected quantity 1, got %d", first.Quantity)
	}

	second, err := svc.AddItem(context.Background(), userID, product.ID)
	if err != nil {
		t.Fatalf("second add: %v", err)
	}
	if second.Quantity != 2 {
		t.Fatalf("expected quantity 2, got %d", second.Quantity)
	}
	if !second.LineTotal.Equal(decimal.RequireFromString("19.98")) {
		t.Fatalf("expected line total 19.98, got %s", second.LineTotal)
	}
}

func TestAddItemUnknownProductNotFound(t *testing.T) {
	loader := &stubProductLoader{products: map[uuid.UUID]*models.Product{}}
	svc, err := NewService(newStubCartRepo(), loader)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	_, gotErr := svc.AddItem(context.Background(), uuid.New(), uuid.New())
	if typed := pkgerrors.As(gotErr); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", gotErr)
	}
}

func TestViewCartTotalsAcrossItems(t *testing.T) {
	widget := testProduct("Widget", "9.99")
	gadget := testProduct("Gadget", "3.50")
	loader := &stubProductLoader{products: map[uuid.UUID]*models.Product{
		widget.ID: widget,
		gadget.ID: gadget,
	}}
	repo := newStubCartRepo()
	svc, err := NewService(repo, loader)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	userID := uuid.New()

	for i := 0; i < 4; i++ {
		if _, err := svc.AddItem(context.Background(), userID, widget.ID); err != nil {
			t.Fatalf("add widget: %v", err)
		}
	}
	if _, err := svc.AddItem(context.Background(), userID, gadget.ID); err != nil {
		t.Fatalf("add gadget: %v", err)
	}

	// stub FindByUser does not preload; attach products the way the repo would
	for _, item := range repo.items {
		item.Product = loader.products[item.ProductID]
	}

	cart, err := svc.ViewCart(context.Background(), userID)
	if err != nil {
		t.Fatalf("view cart: %v", err)
	}
	if len(cart.Items) != 2 {
		t.Fatalf("expected 2 cart lines, got %d", len(cart.Items))
	}
	if !cart.Total.Equal(decimal.RequireFromString("43.46")) {
		t.Fatalf("expected total 43.46, got %s", cart.Total)
	}
}

func TestViewCartEmptyTotalZero(t *testing.T) {
	svc, err := NewService(newStubCartRepo(), &stubProductLoader{products: map[uuid.UUID]*models.Product{}})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	cart, err := svc.ViewCart(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("view cart: %v", err)
	}
	if len(cart.Items) != 0 {
		t.Fatalf("expected empty cart, got %d items", len(cart.Items))
	}
	if !cart.Total.IsZero() {
		t.Fatalf("expected zero total, got %s", cart.Total)
	}
}
