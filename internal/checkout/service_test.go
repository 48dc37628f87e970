package checkout

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/nmoreno/bazaar-backend/pkg/db/models"
	pkgerrors "github.com/nmoreno/bazaar-backend/pkg/errors"
	"github.com/nmoreno/bazaar-backend/pkg/logger"
	"github.com/nmoreno/bazaar-backend/pkg/mail"
)

type stubTxRunner struct {
	err error
}

func (s *stubTxRunner) WithTx(_ context.Context, fn func(tx *gorm.DB) error) error {
	if s.err != nil {
		return s.err
	}
	return fn(&gorm.DB{})
}

type stubCheckoutCartRepo struct {
	items   []models.CartItem
	cleared bool
	findErr error
}

func (s *stubCheckoutCartRepo) FindByUser(_ context.Context, _ uuid.UUID) ([]models.CartItem, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	return s.items, nil
}

func (s *stubCheckoutCartRepo) DeleteByUser(_ context.Context, _ uuid.UUID) error {
	s.cleared = true
	return nil
}

type stubOrderWriter struct {
	created []*models.Order
	err     error
}

func (s *stubOrderWriter) CreateWithTx(_ *gorm.DB, userID, productID uuid.UUID, quantity int, orderedAt time.Time) (*models.Order, error) {
	if s.err != nil {
		return nil, s.err
	}
	order := &models.Order{
		ID:          uuid.New(),
		UserID:      userID,
		ProductID:   productID,
		Quantity:    quantity,
		DateOrdered: orderedAt,
	}
	s.created = append(s.created, order)
	return order, nil
}

type stubInvoiceWriter struct {
	invoice *models.Invoice
	err     error
}

func (s *stubInvoiceWriter) CreateWithTx(_ *gorm.DB, userID uuid.UUID, content string) (*models.Invoice, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.invoice = &models.Invoice{ID: uuid.New(), UserID: userID, Content: content}
	return s.invoice, nil
}

type stubUserLoader struct {
	user *models.User
}

func (s *stubUserLoader) FindByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	if s.user == nil || s.user.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	return s.user, nil
}

type stubMailer struct {
	sent []mail.Message
	err  error
}

func (s *stubMailer) Send(_ context.Context, msg mail.Message) error {
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, msg)
	return nil
}

func cartLine(name, price string, qty int) models.CartItem {
	productID := uuid.New()
	return models.CartItem{
		ID:        uuid.New(),
		ProductID: productID,
		Quantity:  qty,
		Product: &models.Product{
			ID:    productID,
			Name:  name,
			Price: decimal.RequireFromString(price),
		},
	}
}

type checkoutFixture struct {
	svc      Service
	cart     *stubCheckoutCartRepo
	orders   *stubOrderWriter
	invoices *stubInvoiceWriter
	mailer   *stubMailer
	user     *models.User
}

func newCheckoutFixture(t *testing.T, items []models.CartItem) *checkoutFixture {
	t.Helper()
	user := &models.User{ID: uuid.New(), Email: "buyer@example.com", IsBuyer: true}
	fixture := &checkoutFixture{
		cart:     &stubCheckoutCartRepo{items: items},
		orders:   &stubOrderWriter{},
		invoices: &stubInvoiceWriter{},
		mailer:   &stubMailer{},
		user:     user,
	}
	svc, err := NewService(ServiceParams{
		TxRunner:    &stubTxRunner{},
		CartRepo:    fixture.cart,
		OrderRepo:   fixture.orders,
		InvoiceRepo: fixture.invoices,
		UserRepo:    &stubUserLoader{user: user},
		Mailer:      fixture.mailer,
		Logger:      logger.New(logger.Options{ServiceName: "checkout-test", Level: zerolog.ErrorLevel, Output: io.Discard}),
	})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	fixture.svc = svc
	return fixture
}

func TestCheckoutHappyPath(t *testing.T) {
	items := []models.CartItem{
		cartLine("Widget", "9.99", 4),
		cartLine("Gadget", "3.50", 1),
	}
	fx := newCheckoutFixture(t, items)

	result, err := fx.svc.Checkout(context.Background(), fx.user.ID)
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}

	if result.OrderCount != 2 {
		t.Fatalf("expected 2 orders, got %d", result.OrderCount)
	}
	if len(fx.orders.created) != 2 {
		t.Fatalf("expected 2 order rows, got %d", len(fx.orders.created))
	}
	for i, order := range fx.orders.created {
		if order.ProductID != items[i].ProductID {
			t.Fatalf("order %d product mismatch", i)
		}
		if order.Quantity != items[i].Quantity {
			t.Fatalf("order %d quantity mismatch", i)
		}
	}

	wantInvoice := "Widget x 4 = 39.96\nGadget x 1 = 3.50\n"
	if result.InvoiceContent != wantInvoice {
		t.Fatalf("unexpected invoice content %q", result.InvoiceContent)
	}
	if fx.invoices.invoice == nil || fx.invoices.invoice.Content != wantInvoice {
		t.Fatalf("invoice row mismatch: %+v", fx.invoices.invoice)
	}
	if !result.Total.Equal(decimal.RequireFromString("43.46")) {
		t.Fatalf("expected total 43.46, got %s", result.Total)
	}

	if len(fx.mailer.sent) != 1 {
		t.Fatalf("expected one email, got %d", len(fx.mailer.sent))
	}
	msg := fx.mailer.sent[0]
	if msg.Subject != "Your Invoice" {
		t.Fatalf("unexpected subject %q", msg.Subject)
	}
	if len(msg.To) != 1 || msg.To[0] != "buyer@example.com" {
		t.Fatalf("unexpected recipients %v", msg.To)
	}
	if msg.Body != wantInvoice {
		t.Fatalf("unexpected body %q", msg.Body)
	}

	if !fx.cart.cleared {
		t.Fatal("expected cart cleared")
	}
}

func TestCheckoutEmailFailureKeepsCart(t *testing.T) {
	fx := newCheckoutFixture(t, []models.CartItem{cartLine("Widget", "9.99", 1)})
	fx.mailer.err = errors.New("smtp down")

	_, err := fx.svc.Checkout(context.Background(), fx.user.ID)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", err)
	}

	// orders and invoice are already committed when the email fails
	if len(fx.orders.created) != 1 {
		t.Fatalf("expected committed order, got %d", len(fx.orders.created))
	}
	if fx.invoices.invoice == nil {
		t.Fatal("expected committed invoice")
	}
	if fx.cart.cleared {
		t.Fatal("expected cart retained after email failure")
	}
}

func TestCheckoutEmptyCartStillInvoicesAndEmails(t *testing.T) {
	fx := newCheckoutFixture(t, nil)

	result, err := fx.svc.Checkout(context.Background(), fx.user.ID)
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}
	if result.OrderCount != 0 {
		t.Fatalf("expected zero orders, got %d", result.OrderCount)
	}
	if result.InvoiceContent != "" {
		t.Fatalf("expected empty invoice, got %q", result.InvoiceContent)
	}
	if len(fx.mailer.sent) != 1 {
		t.Fatalf("expected email even for empty cart, got %d", len(fx.mailer.sent))
	}
	if !fx.cart.cleared {
		t.Fatal("expected cart cleared")
	}
}

func TestCheckoutUnknownUserNotFound(t *testing.T) {
	fx := newCheckoutFixture(t, nil)

	_, err := fx.svc.Checkout(context.Background(), uuid.New())
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestCheckoutOrderFailureRollsBack(t *testing.T) {
	fx := newCheckoutFixture(t, []models.CartItem{cartLine("Widget", "9.99", 1)})
	fx.orders.err = errors.New("insert failed")

	_, err := fx.svc.Checkout(context.Background(), fx.user.ID)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", err)
	}
	if fx.invoices.invoice != nil {
		t.Fatal("expected no invoice when order creation fails")
	}
	if len(fx.mailer.sent) != 0 {
		t.Fatal("expected no email when transaction fails")
	}
	if fx.cart.cleared {
		t.Fatal("expected cart retained")
	}
}

func TestCheckoutInvoiceKeepsTrailingZeros(t *testing.T) {
	items := []models.CartItem{
		cartLine("Gadget", "3.50", 1),
		cartLine("Sticker", "2.00", 3),
	}
	fx := newCheckoutFixture(t, items)

	result, err := fx.svc.Checkout(context.Background(), fx.user.ID)
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}

	want := "Gadget x 1 = 3.50\nSticker x 3 = 6.00\n"
	if result.InvoiceContent != want {
		t.Fatalf("unexpected invoice content %q", result.InvoiceContent)
	}
	if len(fx.mailer.sent) != 1 || fx.mailer.sent[0].Body != want {
		t.Fatalf("expected emailed invoice %q, got %+v", want, fx.mailer.sent)
	}
}
