package reviews

import (
	"time"

	"github.com/google/uuid"

	"github.com/nmoreno/bazaar-backend/pkg/db/models"
)

// ReviewDTO is the transport shape for a product review.
type ReviewDTO struct {
	ID         uuid.UUID `json:"id"`
	UserID     uuid.UUID `json:"user_id"`
	ProductID  uuid.UUID `json:"product_id"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment"`
	IsVerified bool      `json:"is_verified"`
	CreatedAt  time.Time `json:"created_at"`
}

// SubmitReviewInput carries the buyer-provided review fields.
type SubmitReviewInput struct {
	Rating  int    `json:"rating" validate:"required,gte=1,lte=5"`
	Comment string `json:"comment"`
}

// CreateReviewDTO holds the data required by the repo to persist a review.
type CreateReviewDTO struct {
	UserID     uuid.UUID
	ProductID  uuid.UUID
	Rating     int
	Comment    string
	IsVerified bool
}

func (c CreateReviewDTO) ToModel() *models.Review {
	return &models.Review{
		ID:         uuid.New(),
		UserID:     c.UserID,
		ProductID:  c.ProductID,
		Rating:     c.Rating,
		Comment:    c.Comment,
		IsVerified: c.IsVerified,
	}
}

func FromModel(r *models.Review) *ReviewDTO {
	if r == nil {
		return nil
	}
	return &ReviewDTO{
		ID:         r.ID,
		UserID:     r.UserID,
		ProductID:  r.ProductID,
		Rating:     r.Rating,
		Comment:    r.Comment,
		IsVerified: r.IsVerified,
		CreatedAt:  r.CreatedAt,
	}
}

func fromModels(reviews []models.Review) []ReviewDTO {
	out := make([]ReviewDTO, 0, len(reviews))
	for i := range reviews {
		out = append(out, *FromModel(&reviews[i]))
	}
	return out
}
