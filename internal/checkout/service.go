package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/nmoreno/bazaar-backend/pkg/db/models"
	pkgerrors "github.com/nmoreno/bazaar-backend/pkg/errors"
	"github.com/nmoreno/bazaar-backend/pkg/logger"
	"github.com/nmoreno/bazaar-backend/pkg/mail"
)

const invoiceEmailSubject = "Your Invoice"

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type cartRepository interface {
	FindByUser(ctx context.Context, userID uuid.UUID) ([]models.CartItem, error)
	DeleteByUser(ctx context.Context, userID uuid.UUID) error
}

type orderWriter interface {
	CreateWithTx(tx *gorm.DB, userID, productID uuid.UUID, quantity int, orderedAt time.Time) (*models.Order, error)
}

type invoiceWriter interface {
	CreateWithTx(tx *gorm.DB, userID uuid.UUID, content string) (*models.Invoice, error)
}

type userLoader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// Result reports what one checkout produced.
type Result struct {
	OrderCount     int             `json:"order_count"`
	InvoiceID      uuid.UUID       `json:"invoice_id"`
	InvoiceContent string          `json:"invoice_content"`
	Total          decimal.Decimal `json:"total"`
}

// Service finalizes carts into orders, an invoice, and an emailed receipt.
type Service interface {
	Checkout(ctx context.Context, userID uuid.UUID) (*Result, error)
}

type service struct {
	tx       txRunner
	cart     cartRepository
	orders   orderWriter
	invoices invoiceWriter
	users    userLoader
	mailer   mail.Sender
	logg     *logger.Logger
}

// ServiceParams bundles the dependencies required to build a checkout service.
type ServiceParams struct {
	TxRunner    txRunner
	CartRepo    cartRepository
	OrderRepo   orderWriter
	InvoiceRepo invoiceWriter
	UserRepo    userLoader
	Mailer      mail.Sender
	Logger      *logger.Logger
}

// NewService builds the checkout workflow with the provided stack.
func NewService(params ServiceParams) (Service, error) {
	if params.TxRunner == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if params.CartRepo == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	if params.OrderRepo == nil {
		return nil, fmt.Errorf("order repository required")
	}
	if params.InvoiceRepo == nil {
		return nil, fmt.Errorf("invoice repository required")
	}
	if params.UserRepo == nil {
		return nil, fmt.Errorf("user repository required")
	}
	if params.Mailer == nil {
		return nil, fmt.Errorf("mail sender required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		tx:       params.TxRunner,
		cart:     params.CartRepo,
		orders:   params.OrderRepo,
		invoices: params.InvoiceRepo,
		users:    params.UserRepo,
		mailer:   params.Mailer,
		logg:     params.Logger,
	}, nil
}

// Checkout snapshots the cart, appends one order per line, persists the
// invoice, emails it, then clears the cart. The orders and invoice commit
// together; the email is sent after the commit and a failure there surfaces
// to the caller with the cart left intact (no compensating rollback).
func (s *service) Checkout(ctx context.Context, userID uuid.UUID) (*Result, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}

	items, err := s.cart.FindByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}

	now := time.Now().UTC()
	var content strings.Builder
	total := decimal.Zero
	for i := range items {
		product := items[i].Product
		if product == nil {
			return nil, pkgerrors.New(pkgerrors.CodeInternal, "cart item missing product")
		}
		lineTotal := product.Price.Mul(decimal.NewFromInt(int64(items[i].Quantity)))
		total = total.Add(lineTotal)
		// Prices are numeric(10,2); render line totals fixed to two places
		// so 3.50 does not collapse to "3.5" in the invoice text.
		fmt.Fprintf(&content, "%s x %d = %s\n", product.Name, items[i].Quantity, lineTotal.StringFixed(2))
	}

	var invoice *models.Invoice
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		for i := range items {
			if _, err := s.orders.CreateWithTx(tx, userID, items[i].ProductID, items[i].Quantity, now); err != nil {
				return fmt.Errorf("create order: %w", err)
			}
		}
		created, err := s.invoices.CreateWithTx(tx, userID, content.String())
		if err != nil {
			return fmt.Errorf("create invoice: %w", err)
		}
		invoice = created
		return nil
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "finalize checkout")
	}

	if err := s.mailer.Send(ctx, mail.Message{
		To:      []string{user.Email},
		Subject: invoiceEmailSubject,
		Body:    content.String(),
	}); err != nil {
		// Orders and invoice are committed; the cart stays for a retry.
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "send invoice email")
	}

	if err := s.cart.DeleteByUser(ctx, userID); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear cart")
	}

	return &Result{
		OrderCount:     len(items),
		InvoiceID:      invoice.ID,
		InvoiceContent: invoice.Content,
		Total:          total,
	}, nil
}
