package catalog

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nmoreno/bazaar-backend/pkg/db/models"
)

// ShopRepository handles shop persistence.
type ShopRepository struct {
	db *gorm.DB
}

// NewShopRepository binds a GORM DB to shop operations.
func NewShopRepository(db *gorm.DB) *ShopRepository {
	return &ShopRepository{db: db}
}

// Create persists a new shop row.
func (r *ShopRepository) Create(ctx context.Context, dto CreateShopDTO) (*models.Shop, error) {
	shop := dto.ToModel()
	if err := r.db.WithContext(ctx).Create(shop).Error; err != nil {
		return nil, err
	}
	return shop, nil
}

// FindByID loads a shop by its UUID.
func (r *ShopRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Shop, error) {
	var shop models.Shop
	if err := r.db.WithContext(ctx).First(&shop, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &shop, nil
}

// FindByOwner returns all shops owned by the provided user.
func (r *ShopRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Shop, error) {
	var shops []models.Shop
	if err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&shops).Error; err != nil {
		return nil, err
	}
	return shops, nil
}

// FindByIDForOwner loads a shop only when it belongs to the provided owner.
func (r *ShopRepository) FindByIDForOwner(ctx context.Context, id, ownerID uuid.UUID) (*models.Shop, error) {
	var shop models.Shop
	if err := r.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, ownerID).
		First(&shop).Error; err != nil {
		return nil, err
	}
	return &shop, nil
}

// Update saves the provided shop.
func (r *ShopRepository) Update(ctx context.Context, shop *models.Shop) error {
	if shop == nil {
		return fmt.Errorf("shop is required")
	}
	return r.db.WithContext(ctx).Save(shop).Error
}

// Delete removes the shop row. Product rows cascade at the DB level.
func (r *ShopRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Shop{}, "id = ?", id).Error
}
