package reviews

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nmoreno/bazaar-backend/pkg/db/models"
)

// Repository handles review persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to review operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create persists a new review row. The unique index on (user_id, product_id)
// rejects a second review for the same pair.
func (r *Repository) Create(ctx context.Context, dto CreateReviewDTO) (*models.Review, error) {
	review := dto.ToModel()
	if err := r.db.WithContext(ctx).Create(review).Error; err != nil {
		return nil, err
	}
	return review, nil
}

// FindByProduct returns the product's reviews, newest first.
func (r *Repository) FindByProduct(ctx context.Context, productID uuid.UUID) ([]models.Review, error) {
	var reviews []models.Review
	if err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("created_at DESC").
		Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}
