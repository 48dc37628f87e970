package users

import (
	"time"

	"github.com/google/uuid"

	"github.com/nmoreno/bazaar-backend/pkg/db/models"
)

// UserDTO is the transport shape that omits sensitive credentials.
type UserDTO struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	IsVendor  bool      `json:"is_vendor"`
	IsBuyer   bool      `json:"is_buyer"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateUserDTO holds the data required by the repo to persist a new user.
type CreateUserDTO struct {
	Email        string
	PasswordHash string
	IsVendor     bool
	IsBuyer      bool
}

func FromModel(u *models.User) *UserDTO {
	if u == nil {
		return nil
	}

	return &UserDTO{
		ID:        u.ID,
		Email:     u.Email,
		IsVendor:  u.IsVendor,
		IsBuyer:   u.IsBuyer,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func (c CreateUserDTO) ToModel() *models.User {
	return &models.User{
		ID:           uuid.New(),
		Email:        c.Email,
		PasswordHash: c.PasswordHash,
		IsVendor:     c.IsVendor,
		IsBuyer:      c.IsBuyer,
	}
}
