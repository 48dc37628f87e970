package reviews

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nmoreno/bazaar-backend/pkg/db"
	"github.com/nmoreno/bazaar-backend/pkg/db/models"
	pkgerrors "github.com/nmoreno/bazaar-backend/pkg/errors"
)

const reviewsUniqueConstraint = "idx_reviews_user_product"

type reviewRepository interface {
	Create(ctx context.Context, dto CreateReviewDTO) (*models.Review, error)
	FindByProduct(ctx context.Context, productID uuid.UUID) ([]models.Review, error)
}

type productLoader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

type orderChecker interface {
	ExistsForUserProduct(ctx context.Context, userID, productID uuid.UUID) (bool, error)
}

// Service exposes the review ledger.
type Service interface {
	SubmitReview(ctx context.Context, userID, productID uuid.UUID, input SubmitReviewInput) (*ReviewDTO, error)
	ListReviews(ctx context.Context, productID uuid.UUID) ([]ReviewDTO, error)
}

type service struct {
	repo     reviewRepository
	products productLoader
	orders   orderChecker
}

// NewService builds a review service backed by the provided repositories.
func NewService(repo reviewRepository, products productLoader, orders orderChecker) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("review repository required")
	}
	if products == nil {
		return nil, fmt.Errorf("product loader required")
	}
	if orders == nil {
		return nil, fmt.Errorf("order checker required")
	}
	return &service{repo: repo, products: products, orders: orders}, nil
}

// SubmitReview records one review per (user, product). The verified flag is
// computed from the order ledger at creation and never re-evaluated.
func (s *service) SubmitReview(ctx context.Context, userID, productID uuid.UUID, input SubmitReviewInput) (*ReviewDTO, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	if productID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	if input.Rating < 1 || input.Rating > 5 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "rating must be between 1 and 5")
	}

	if _, err := s.products.FindByID(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}

	verified, err := s.orders.ExistsForUserProduct(ctx, userID, productID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check order history")
	}

	review, err := s.repo.Create(ctx, CreateReviewDTO{
		UserID:     userID,
		ProductID:  productID,
		Rating:     input.Rating,
		Comment:    strings.TrimSpace(input.Comment),
		IsVerified: verified,
	})
	if err != nil {
		if db.IsUniqueViolation(err, reviewsUniqueConstraint) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "product already reviewed")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create review")
	}

	return FromModel(review), nil
}

// ListReviews returns the product's reviews, newest first.
func (s *service) ListReviews(ctx context.Context, productID uuid.UUID) ([]ReviewDTO, error) {
	if productID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}

	if _, err := s.products.FindByID(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}

	reviews, err := s.repo.FindByProduct(ctx, productID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list reviews")
	}
	return fromModels(reviews), nil
}
