package orders

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nmoreno/bazaar-backend/pkg/db/models"
)

// Repository handles the append-only order ledger.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to order operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateWithTx appends one order line inside the provided transaction.
func (r *Repository) CreateWithTx(tx *gorm.DB, userID, productID uuid.UUID, quantity int, orderedAt time.Time) (*models.Order, error) {
	if tx == nil {
		return nil, gorm.ErrInvalidTransaction
	}
	order := &models.Order{
		ID:          uuid.New(),
		UserID:      userID,
		ProductID:   productID,
		Quantity:    quantity,
		DateOrdered: orderedAt,
	}
	if err := tx.Create(order).Error; err != nil {
		return nil, err
	}
	return order, nil
}

// ExistsForUserProduct reports whether the user has ever ordered the product.
func (r *Repository) ExistsForUserProduct(ctx context.Context, userID, productID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
