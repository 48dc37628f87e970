package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents the canonical identity entity. The vendor and buyer
// capabilities are independent flags; a user may hold both or neither.
type User struct {
	ID           uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Email        string    `gorm:"column:email;type:text;not null;uniqueIndex"`
	PasswordHash string    `gorm:"column:password_hash;not null"`
	IsVendor     bool      `gorm:"column:is_vendor;not null;default:false"`
	IsBuyer      bool      `gorm:"column:is_buyer;not null;default:false"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
