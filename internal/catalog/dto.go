package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nmoreno/bazaar-backend/pkg/db/models"
)

// ShopDTO is the transport shape for a vendor storefront.
type ShopDTO struct {
	ID          uuid.UUID `json:"id"`
	OwnerID     uuid.UUID `json:"owner_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ProductDTO is the transport shape for a listing.
type ProductDTO struct {
	ID          uuid.UUID       `json:"id"`
	ShopID      uuid.UUID       `json:"shop_id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	Image       *string         `json:"image,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// CreateShopInput captures the fields a vendor supplies for a new shop.
type CreateShopInput struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

// UpdateShopInput carries the mutable shop fields. Nil means unchanged.
type UpdateShopInput struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

// CreateProductInput captures the fields a vendor supplies for a new listing.
type CreateProductInput struct {
	Name        string          `json:"name" validate:"required"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price" validate:"required"`
	Quantity    int             `json:"quantity" validate:"gte=0"`
	Image       *string         `json:"image,omitempty"`
}

// UpdateProductInput carries the mutable product fields. Nil means unchanged.
type UpdateProductInput struct {
	Name        *string          `json:"name,omitempty"`
	Description *string          `json:"description,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	Quantity    *int             `json:"quantity,omitempty"`
	Image       *string          `json:"image,omitempty"`
}

// CreateShopDTO holds the data required by the repo to persist a new shop.
type CreateShopDTO struct {
	OwnerID     uuid.UUID
	Name        string
	Description string
}

func (c CreateShopDTO) ToModel() *models.Shop {
	return &models.Shop{
		ID:          uuid.New(),
		OwnerID:     c.OwnerID,
		Name:        c.Name,
		Description: c.Description,
	}
}

// CreateProductDTO holds the data required by the repo to persist a new product.
type CreateProductDTO struct {
	ShopID      uuid.UUID
	Name        string
	Description string
	Price       decimal.Decimal
	Quantity    int
	Image       *string
}

func (c CreateProductDTO) ToModel() *models.Product {
	return &models.Product{
		ID:          uuid.New(),
		ShopID:      c.ShopID,
		Name:        c.Name,
		Description: c.Description,
		Price:       c.Price,
		Quantity:    c.Quantity,
		Image:       c.Image,
	}
}

func ShopFromModel(s *models.Shop) *ShopDTO {
	if s == nil {
		return nil
	}
	return &ShopDTO{
		ID:          s.ID,
		OwnerID:     s.OwnerID,
		Name:        s.Name,
		Description: s.Description,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

func ProductFromModel(p *models.Product) *ProductDTO {
	if p == nil {
		return nil
	}
	return &ProductDTO{
		ID:          p.ID,
		ShopID:      p.ShopID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Quantity:    p.Quantity,
		Image:       p.Image,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func shopsFromModels(shops []models.Shop) []ShopDTO {
	out := make([]ShopDTO, 0, len(shops))
	for i := range shops {
		out = append(out, *ShopFromModel(&shops[i]))
	}
	return out
}

func productsFromModels(products []models.Product) []ProductDTO {
	out := make([]ProductDTO, 0, len(products))
	for i := range products {
		out = append(out, *ProductFromModel(&products[i]))
	}
	return out
}
