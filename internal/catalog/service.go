package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nmoreno/bazaar-backend/pkg/db/models"
	pkgerrors "github.com/nmoreno/bazaar-backend/pkg/errors"
	"github.com/nmoreno/bazaar-backend/pkg/logger"
	"github.com/nmoreno/bazaar-backend/pkg/social"
)

type shopRepository interface {
	Create(ctx context.Context, dto CreateShopDTO) (*models.Shop, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Shop, error)
	FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Shop, error)
	FindByIDForOwner(ctx context.Context, id, ownerID uuid.UUID) (*models.Shop, error)
	Update(ctx context.Context, shop *models.Shop) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type productRepository interface {
	Create(ctx context.Context, dto CreateProductDTO) (*models.Product, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	FindAll(ctx context.Context) ([]models.Product, error)
	FindByShop(ctx context.Context, shopID uuid.UUID) ([]models.Product, error)
	FindByIDForOwner(ctx context.Context, id, ownerID uuid.UUID) (*models.Product, error)
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type announcementRecorder interface {
	IncSuccess(kind string)
	IncFailure(kind string)
}

// Service exposes catalog operations for shops and their products.
type Service interface {
	ListAllProducts(ctx context.Context) ([]ProductDTO, error)
	GetProduct(ctx context.Context, productID uuid.UUID) (*ProductDTO, error)
	ListShopsByOwner(ctx context.Context, ownerID uuid.UUID) ([]ShopDTO, error)
	ListProductsByShop(ctx context.Context, shopID uuid.UUID) ([]ProductDTO, error)

	CreateShop(ctx context.Context, ownerID uuid.UUID, input CreateShopInput) (*ShopDTO, error)
	UpdateShop(ctx context.Context, ownerID, shopID uuid.UUID, input UpdateShopInput) (*ShopDTO, error)
	DeleteShop(ctx context.Context, ownerID, shopID uuid.UUID) error
	CreateProduct(ctx context.Context, ownerID, shopID uuid.UUID, input CreateProductInput) (*ProductDTO, error)
	UpdateProduct(ctx context.Context, ownerID, productID uuid.UUID, input UpdateProductInput) (*ProductDTO, error)
	DeleteProduct(ctx context.Context, ownerID, productID uuid.UUID) error
}

type service struct {
	shops     shopRepository
	products  productRepository
	announcer social.Announcer
	metrics   announcementRecorder
	logg      *logger.Logger
}

// ServiceParams bundles the dependencies required to build a catalog service.
type ServiceParams struct {
	ShopRepo    shopRepository
	ProductRepo productRepository
	Announcer   social.Announcer
	Metrics     announcementRecorder
	Logger      *logger.Logger
}

// NewService builds a catalog service. Announcer and metrics may be nil.
func NewService(params ServiceParams) (Service, error) {
	if params.ShopRepo == nil {
		return nil, fmt.Errorf("shop repository required")
	}
	if params.ProductRepo == nil {
		return nil, fmt.Errorf("product repository required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		shops:     params.ShopRepo,
		products:  params.ProductRepo,
		announcer: params.Announcer,
		metrics:   params.Metrics,
		logg:      params.Logger,
	}, nil
}

// ListAllProducts returns every product in the marketplace.
func (s *service) ListAllProducts(ctx context.Context) ([]ProductDTO, error) {
	products, err := s.products.FindAll(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}
	return productsFromModels(products), nil
}

// GetProduct loads one product by ID.
func (s *service) GetProduct(ctx context.Context, productID uuid.UUID) (*ProductDTO, error) {
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
	return ProductFromModel(product), nil
}

// ListShopsByOwner returns the shops owned by the provided user.
func (s *service) ListShopsByOwner(ctx context.Context, ownerID uuid.UUID) ([]ShopDTO, error) {
	if ownerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "owner id is required")
	}
	shops, err := s.shops.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list shops")
	}
	return shopsFromModels(shops), nil
}

// ListProductsByShop returns all products under the provided shop.
func (s *service) ListProductsByShop(ctx context.Context, shopID uuid.UUID) ([]ProductDTO, error) {
	if shopID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "shop id is required")
	}
	if _, err := s.shops.FindByID(ctx, shopID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "shop not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load shop")
	}
	products, err := s.products.FindByShop(ctx, shopID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list shop products")
	}
	return productsFromModels(products), nil
}

// CreateShop persists a new shop and announces it best-effort.
func (s *service) CreateShop(ctx context.Context, ownerID uuid.UUID, input CreateShopInput) (*ShopDTO, error) {
	if ownerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "owner id is required")
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "shop name is required")
	}

	shop, err := s.shops.Create(ctx, CreateShopDTO{
		OwnerID:     ownerID,
		Name:        name,
		Description: strings.TrimSpace(input.Description),
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create shop")
	}

	s.announce(ctx, "shop", social.Announcement{
		Message: fmt.Sprintf("🛍️ New Shop: %s\n%s", shop.Name, shop.Description),
	})

	return ShopFromModel(shop), nil
}

// UpdateShop mutates an owned shop. Non-owners observe not found.
func (s *service) UpdateShop(ctx context.Context, ownerID, shopID uuid.UUID, input UpdateShopInput) (*ShopDTO, error) {
	shop, err := s.loadOwnedShop(ctx, shopID, ownerID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "shop name cannot be empty")
		}
		shop.Name = name
	}
	if input.Description != nil {
		shop.Description = strings.TrimSpace(*input.Description)
	}

	if err := s.shops.Update(ctx, shop); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update shop")
	}
	return ShopFromModel(shop), nil
}

// DeleteShop removes an owned shop; its products cascade.
func (s *service) DeleteShop(ctx context.Context, ownerID, shopID uuid.UUID) error {
	shop, err := s.loadOwnedShop(ctx, shopID, ownerID)
	if err != nil {
		return err
	}
	if err := s.shops.Delete(ctx, shop.ID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete shop")
	}
	return nil
}

// CreateProduct adds a listing under an owned shop and announces it best-effort.
func (s *service) CreateProduct(ctx context.Context, ownerID, shopID uuid.UUID, input CreateProductInput) (*ProductDTO, error) {
	shop, err := s.loadOwnedShop(ctx, shopID, ownerID)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product name is required")
	}
	if input.Price.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price must be non-negative")
	}
	if input.Quantity < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be non-negative")
	}

	product, err := s.products.Create(ctx, CreateProductDTO{
		ShopID:      shop.ID,
		Name:        name,
		Description: strings.TrimSpace(input.Description),
		Price:       input.Price,
		Quantity:    input.Quantity,
		Image:       input.Image,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create product")
	}

	announcement := social.Announcement{
		Message: fmt.Sprintf("📦 New Product in %s!\n%s - %s", shop.Name, product.Name, product.Description),
	}
	if product.Image != nil {
		announcement.ImagePath = *product.Image
	}
	s.announce(ctx, "product", announcement)

	return ProductFromModel(product), nil
}

// UpdateProduct mutates an owned listing. Non-owners observe not found.
func (s *service) UpdateProduct(ctx context.Context, ownerID, productID uuid.UUID, input UpdateProductInput) (*ProductDTO, error) {
	product, err := s.loadOwnedProduct(ctx, productID, ownerID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "product name cannot be empty")
		}
		product.Name = name
	}
	if input.Description != nil {
		product.Description = strings.TrimSpace(*input.Description)
	}
	if input.Price != nil {
		if input.Price.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "price must be non-negative")
		}
		product.Price = *input.Price
	}
	if input.Quantity != nil {
		if *input.Quantity < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be non-negative")
		}
		product.Quantity = *input.Quantity
	}
	if input.Image != nil {
		product.Image = input.Image
	}

	if err := s.products.Update(ctx, product); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update product")
	}
	return ProductFromModel(product), nil
}

// DeleteProduct removes an owned listing; cart items and reviews cascade.
func (s *service) DeleteProduct(ctx context.Context, ownerID, productID uuid.UUID) error {
	product, err := s.loadOwnedProduct(ctx, productID, ownerID)
	if err != nil {
		return err
	}
	if err := s.products.Delete(ctx, product.ID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete product")
	}
	return nil
}

func (s *service) loadOwnedShop(ctx context.Context, shopID, ownerID uuid.UUID) (*models.Shop, error) {
	if shopID == uuid.Nil || ownerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "shop id and owner id are required")
	}
	shop, err := s.shops.FindByIDForOwner(ctx, shopID, ownerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "shop not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load shop")
	}
	return shop, nil
}

func (s *service) loadOwnedProduct(ctx context.Context, productID, ownerID uuid.UUID) (*models.Product, error) {
	if productID == uuid.Nil || ownerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id and owner id are required")
	}
	product, err := s.products.FindByIDForOwner(ctx, productID, ownerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	return product, nil
}

// announce posts best-effort: failures are logged and counted, never returned.
func (s *service) announce(ctx context.Context, kind string, announcement social.Announcement) {
	if s.announcer == nil {
		return
	}
	if err := s.announcer.Announce(ctx, announcement); err != nil {
		s.logg.Warn(s.logg.WithField(ctx, "kind", kind), "social announcement failed: "+err.Error())
		if s.metrics != nil {
			s.metrics.IncFailure(kind)
		}
		return
	}
	if s.metrics != nil {
		s.metrics.IncSuccess(kind)
	}
}
