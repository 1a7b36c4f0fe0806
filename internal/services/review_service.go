package services

import (
	"errors"

	"pawhaven/internal/domain"
	"pawhaven/internal/repos"

	"github.com/google/uuid"
)

var ErrRatingRange = errors.New("rating must be between 1 and 5")

type ReviewService struct {
	Reviews *repos.ReviewRepo
}

// RateSitter records or revises the owner's rating of a sitter. One review
// per (sitter, owner) pair; a second submission replaces the first.
func (s *ReviewService) RateSitter(sitterID, ownerID, ownerName string, rating int, text string) error {
	if rating < 1 || rating > 5 {
		return ErrRatingRange
	}
	return s.Reviews.UpsertSitterReview(&domain.SitterReview{
		ID:        uuid.NewString(),
		SitterID:  sitterID,
		OwnerID:   ownerID,
		OwnerName: ownerName,
		Rating:    rating,
		Text:      text,
	})
}

func (s *ReviewService) RateProduct(productID, userID string, rating int, text string) error {
	if rating < 1 || rating > 5 {
		return ErrRatingRange
	}
	return s.Reviews.UpsertProductReview(&domain.ProductReview{
		ID:        uuid.NewString(),
		ProductID: productID,
		UserID:    userID,
		Rating:    rating,
		Text:      text,
	})
}

func (s *ReviewService) SitterReviews(sitterID string) ([]domain.SitterReview, error) {
	return s.Reviews.ListSitterReviews(sitterID)
}

func (s *ReviewService) ProductReviews(productID string) ([]domain.ProductReview, error) {
	return s.Reviews.ListProductReviews(productID)
}

func (s *ReviewService) SellerFeedback(sellerID string) ([]repos.ProductReviewRow, error) {
	return s.Reviews.ListReviewsForSeller(sellerID)
}
