package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/nmoreno/bazaar-backend/api/middleware"
	"github.com/nmoreno/bazaar-backend/internal/reviews"
	pkgerrors "github.com/nmoreno/bazaar-backend/pkg/errors"
)

type stubReviewService struct {
	review *reviews.ReviewDTO
	list   []reviews.ReviewDTO
	err    error
	input  reviews.SubmitReviewInput
}

func (s *stubReviewService) SubmitReview(_ context.Context, _, _ uuid.UUID, input reviews.SubmitReviewInput) (*reviews.ReviewDTO, error) {
	s.input = input
	if s.err != nil {
		return nil, s.err
	}
	return s.review, nil
}

func (s *stubReviewService) ListReviews(_ context.Context, _ uuid.UUID) ([]reviews.ReviewDTO, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.list, nil
}

func TestSubmitReview(t *testing.T) {
	logg := testControllerLogger()
	userID := uuid.New()
	productID := uuid.New()

	t.Run("rejects out-of-range rating", func(t *testing.T) {
		ctx := middleware.WithUserID(context.Background(), userID.String())
		ctx = withRouteParam(ctx, "productId", productID.String())
		req := httptest.NewRequest(http.MethodPost, "/api/v1/products/"+productID.String()+"/reviews", strings.NewReader(`{"rating":6}`)).WithContext(ctx)
		rec := httptest.NewRecorder()
		SubmitReview(&stubReviewService{}, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("duplicate review conflicts", func(t *testing.T) {
		stub := &stubReviewService{err: pkgerrors.New(pkgerrors.CodeConflict, "product already reviewed")}
		ctx := middleware.WithUserID(context.Background(), userID.String())
		ctx = withRouteParam(ctx, "productId", productID.String())
		req := httptest.NewRequest(http.MethodPost, "/api/v1/products/"+productID.String()+"/reviews", strings.NewReader(`{"rating":4}`)).WithContext(ctx)
		rec := httptest.NewRecorder()
		SubmitReview(stub, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", rec.Code)
		}
	})

	t.Run("success trims the comment", func(t *testing.T) {
		stub := &stubReviewService{review: &reviews.ReviewDTO{ID: uuid.New(), Rating: 5}}
		ctx := middleware.WithUserID(context.Background(), userID.String())
		ctx = withRouteParam(ctx, "productId", productID.String())
		req := httptest.NewRequest(http.MethodPost, "/api/v1/products/"+productID.String()+"/reviews", strings.NewReader(`{"rating":5,"comment":"  solid  "}`)).WithContext(ctx)
		rec := httptest.NewRecorder()
		SubmitReview(stub, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", rec.Code)
		}
		if stub.input.Comment != "solid" {
			t.Fatalf("expected trimmed comment, got %q", stub.input.Comment)
		}
	})
}

func TestListReviews(t *testing.T) {
	logg := testControllerLogger()
	productID := uuid.New()

	t.Run("unknown product", func(t *testing.T) {
		stub := &stubReviewService{err: pkgerrors.New(pkgerrors.CodeNotFound, "product not found")}
		ctx := withRouteParam(context.Background(), "productId", productID.String())
		req := httptest.NewRequest(http.MethodGet, "/api/v1/products/"+productID.String()+"/reviews", nil).WithContext(ctx)
		rec := httptest.NewRecorder()
		ListReviews(stub, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		stub := &stubReviewService{list: []reviews.ReviewDTO{{ID: uuid.New(), Rating: 4}}}
		ctx := withRouteParam(context.Background(), "productId", productID.String())
		req := httptest.NewRequest(http.MethodGet, "/api/v1/products/"+productID.String()+"/reviews", nil).WithContext(ctx)
		rec := httptest.NewRecorder()
		ListReviews(stub, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
	})
}
