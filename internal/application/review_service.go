package application

import (
	"context"
	"fmt"

	"github.com/kyso8575/GameBuddy/internal/catalog"
	"github.com/kyso8575/GameBuddy/internal/domain"
)

const reviewPageSize = 5

type ReviewService struct {
	reviews domain.ReviewRepository
	games   domain.GameRepository
}

func NewReviewService(reviews domain.ReviewRepository, games domain.GameRepository) *ReviewService {
	return &ReviewService{reviews: reviews, games: games}
}

// Create enforces one review per user per game and a 1..5 rating.
func (s *ReviewService) Create(ctx context.Context, userID string, gameID, rating int, body string) (*domain.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, fmt.Errorf("rating %d out of range", rating)
	}
	exists, err := s.games.ExistsByID(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrGameNotFound
	}
	if _, err := s.reviews.FindByUserAndGame(ctx, userID, gameID); err == nil {
		return nil, domain.ErrDuplicateReview
	}

	review := &domain.Review{UserID: userID, GameID: gameID, Rating: rating, Body: body}
	if err := s.reviews.Create(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

// ListByGame pages reviews newest first, page size fixed at 5; AverageRating
// covers the whole set of the game's reviews.
func (s *ReviewService) ListByGame(ctx context.Context, gameID, page int) (*domain.ReviewPage, error) {
	if page <= 0 {
		page = 1
	}
	offset := (page - 1) * reviewPageSize
	reviews, total, average, err := s.reviews.ListByGame(ctx, gameID, reviewPageSize, offset)
	if err != nil {
		return nil, err
	}
	return &domain.ReviewPage{
		Reviews:       reviews,
		TotalItems:    total,
		TotalPages:    catalog.TotalPages(total, reviewPageSize),
		CurrentPage:   page,
		PageSize:      reviewPageSize,
		AverageRating: average,
	}, nil
}

// Update only touches the caller's own review.
func (s *ReviewService) Update(ctx context.Context, userID string, reviewID uint, rating int, body string) (*domain.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, fmt.Errorf("rating %d out of range", rating)
	}
	review, err := s.reviews.FindByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	if review.UserID != userID {
		return nil, domain.ErrReviewNotFound
	}
	review.Rating = rating
	review.Body = body
	if err := s.reviews.Update(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

func (s *ReviewService) Delete(ctx context.Context, userID string, reviewID uint) error {
	review, err := s.reviews.FindByID(ctx, reviewID)
	if err != nil {
		return err
	}
	if review.UserID != userID {
		return domain.ErrReviewNotFound
	}
	return s.reviews.Delete(ctx, reviewID)
}
