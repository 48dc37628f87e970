package models

import (
	"time"

	"github.com/google/uuid"
)

// Review is a buyer's one-per-product rating. IsVerified is frozen at
// creation: it reflects whether an order existed at that instant and is never
// re-evaluated.
type Review struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID     uuid.UUID `gorm:"column:user_id;type:uuid;not null;uniqueIndex:idx_reviews_user_product"`
	ProductID  uuid.UUID `gorm:"column:product_id;type:uuid;not null;uniqueIndex:idx_reviews_user_product"`
	Rating     int       `gorm:"column:rating;not null"`
	Comment    string    `gorm:"column:comment;not null;default:''"`
	IsVerified bool      `gorm:"column:is_verified;not null;default:false"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
}
