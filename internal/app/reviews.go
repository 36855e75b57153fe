package app

import (
	"context"
	"errors"
	"time"

	"stayhub/internal/domain"
)

// ReviewService is anonymous CRUD: no authentication, no ownership.
type ReviewService struct {
	reviews domain.ReviewRepository
	now     func() time.Time
}

func NewReviewService(reviews domain.ReviewRepository) *ReviewService {
	return &ReviewService{reviews: reviews, now: time.Now}
}

func (s *ReviewService) Create(ctx context.Context, placeID string, rating int, text string) (domain.Review, error) {
	if placeID == "" {
		return domain.Review{}, domain.E(domain.ErrInvalidInput, "missing_fields", "Place id is required")
	}
	if rating < 1 || rating > 5 {
		return domain.Review{}, domain.E(domain.ErrInvalidInput, "invalid_rating", "Rating must be between 1 and 5")
	}
	return s.reviews.CreateReview(ctx, domain.Review{
		PlaceID: placeID,
		Rating:  rating,
		Text:    text,
		Date:    s.now().UTC(),
	})
}

func (s *ReviewService) ForPlace(ctx context.Context, placeID string) ([]domain.Review, error) {
	return s.reviews.ReviewsByPlace(ctx, placeID)
}

// Delete reports success whether or not the review existed.
func (s *ReviewService) Delete(ctx context.Context, id int64) error {
	err := s.reviews.DeleteReview(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil
	}
	return err
}
