package cart

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/nmoreno/bazaar-backend/pkg/db/models"
)

// Repository handles cart item persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to cart operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// AddOne inserts a (user, product) row with quantity 1, or bumps the existing
// quantity by one. The unique index on (user_id, product_id) drives the upsert,
// so concurrent adds cannot produce duplicate rows.
func (r *Repository) AddOne(ctx context.Context, userID, productID uuid.UUID) (*models.CartItem, error) {
	item := &models.CartItem{
		ID:        uuid.New(),
		UserID:    userID,
		ProductID: productID,
		Quantity:  1,
	}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "product_id"}},
			DoUpdates: clause.Assignments(map[string]any{"quantity": gorm.Expr("quantity + 1")}),
		}).
		Create(item).Error
	if err != nil {
		return nil, err
	}
	return r.FindByUserAndProduct(ctx, userID, productID)
}

// FindByUserAndProduct loads the single cart row for the pair.
func (r *Repository) FindByUserAndProduct(ctx context.Context, userID, productID uuid.UUID) (*models.CartItem, error) {
	var item models.CartItem
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// FindByUser returns the user's cart items with their products preloaded.
func (r *Repository) FindByUser(ctx context.Context, userID uuid.UUID) ([]models.CartItem, error) {
	var items []models.CartItem
	if err := r.db.WithContext(ctx).
		Preload("Product").
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// DeleteByUser clears the user's cart.
func (r *Repository) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&models.CartItem{}).Error
}
