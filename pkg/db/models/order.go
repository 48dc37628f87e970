package models

import (
	"time"

	"github.com/google/uuid"
)

// Order is an append-only record of one purchased line. One order is created
// per cart item consumed at checkout.
type Order struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID      uuid.UUID `gorm:"column:user_id;type:uuid;not null;index"`
	ProductID   uuid.UUID `gorm:"column:product_id;type:uuid;not null;index"`
	Quantity    int       `gorm:"column:quantity;not null;default:1"`
	DateOrdered time.Time `gorm:"column:date_ordered;not null"`
}
