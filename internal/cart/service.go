package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/nmoreno/bazaar-backend/pkg/db/models"
	pkgerrors "github.com/nmoreno/bazaar-backend/pkg/errors"
)

type cartRepository interface {
	AddOne(ctx context.Context, userID, productID uuid.UUID) (*models.CartItem, error)
	FindByUser(ctx context.Context, userID uuid.UUID) ([]models.CartItem, error)
}

type productLoader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

// Service exposes cart staging operations.
type Service interface {
	AddItem(ctx context.Context, userID, productID uuid.UUID) (*ItemDTO, error)
	ViewCart(ctx context.Context, userID uuid.UUID) (*CartDTO, error)
}

type service struct {
	repo     cartRepository
	products productLoader
}

// NewService builds a cart service backed by the provided repositories.
func NewService(repo cartRepository, products productLoader) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	if products == nil {
		return nil, fmt.Errorf("product loader required")
	}
	return &service{repo: repo, products: products}, nil
}

// AddItem stages one unit of the product. Re-adding increments the quantity.
func (s *service) AddItem(ctx context.Context, userID, productID uuid.UUID) (*ItemDTO, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	if productID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}

	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}

	item, err := s.repo.AddOne(ctx, userID, productID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "add cart item")
	}

	item.Product = product
	dto := itemFromModel(item)
	return &dto, nil
}

// ViewCart returns the user's staged items and the running total.
func (s *service) ViewCart(ctx context.Context, userID uuid.UUID) (*CartDTO, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}

	items, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}

	cart := &CartDTO{
		Items: make([]ItemDTO, 0, len(items)),
		Total: decimal.Zero,
	}
	for i := range items {
		dto := itemFromModel(&items[i])
		cart.Items = append(cart.Items, dto)
		cart.Total = cart.Total.Add(dto.LineTotal)
	}
	return cart, nil
}
