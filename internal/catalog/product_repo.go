package catalog

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nmoreno/bazaar-backend/pkg/db/models"
)

// ProductRepository handles product persistence.
type ProductRepository struct {
	db *gorm.DB
}

// NewProductRepository binds a GORM DB to product operations.
func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// Create persists a new product row.
func (r *ProductRepository) Create(ctx context.Context, dto CreateProductDTO) (*models.Product, error) {
	product := dto.ToModel()
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// FindByID loads a product by its UUID.
func (r *ProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// FindAll returns every product across all shops.
func (r *ProductRepository) FindAll(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// FindByShop returns all products listed under the provided shop.
func (r *ProductRepository) FindByShop(ctx context.Context, shopID uuid.UUID) ([]models.Product, error) {
	var products []models.Product
	if err := r.db.WithContext(ctx).
		Where("shop_id = ?", shopID).
		Order("created_at DESC").
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// FindByIDForOwner loads a product only when its shop belongs to the provided owner.
func (r *ProductRepository) FindByIDForOwner(ctx context.Context, id, ownerID uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).
		Joins("JOIN shops ON shops.id = products.shop_id").
		Where("products.id = ? AND shops.owner_id = ?", id, ownerID).
		First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// Update saves the provided product.
func (r *ProductRepository) Update(ctx context.Context, product *models.Product) error {
	if product == nil {
		return fmt.Errorf("product is required")
	}
	return r.db.WithContext(ctx).Save(product).Error
}

// Delete removes the product row. Cart items and reviews cascade at the DB level.
func (r *ProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Product{}, "id = ?", id).Error
}
