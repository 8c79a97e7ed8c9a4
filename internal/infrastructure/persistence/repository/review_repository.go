package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/kyso8575/GameBuddy/internal/domain"
	"github.com/kyso8575/GameBuddy/internal/infrastructure/persistence/model"
)

type ReviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

func (r *ReviewRepository) Create(ctx context.Context, review *domain.Review) error {
	m := model.ToReviewModel(review)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return fmt.Errorf("failed to create review: %w", err)
	}
	review.ID = m.ID
	review.CreatedAt = m.CreatedAt
	review.UpdatedAt = m.UpdatedAt
	return nil
}

func (r *ReviewRepository) FindByID(ctx context.Context, id uint) (*domain.Review, error) {
	var m model.ReviewModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrReviewNotFound
		}
		return nil, fmt.Errorf("failed to find review: %w", err)
	}
	return m.ToDomain(), nil
}

func (r *ReviewRepository) FindByUserAndGame(ctx context.Context, userID string, gameID int) (*domain.Review, error) {
	var m model.ReviewModel
	err := r.db.WithContext(ctx).Where("user_id = ? AND game_id = ?", userID, gameID).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrReviewNotFound
		}
		return nil, fmt.Errorf("failed to find review: %w", err)
	}
	return m.ToDomain(), nil
}

// ListByGame returns one page of reviews, newest first, plus the count and
// average rating computed over all reviews of the game.
func (r *ReviewRepository) ListByGame(ctx context.Context, gameID int, limit, offset int) ([]domain.Review, int, float64, error) {
	var total int64
	base := r.db.WithContext(ctx).Model(&model.ReviewModel{}).Where("game_id = ?", gameID)
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, 0, fmt.Errorf("failed to count reviews: %w", err)
	}

	var average float64
	if total > 0 {
		row := r.db.WithContext(ctx).Model(&model.ReviewModel{}).
			Where("game_id = ?", gameID).
			Select("AVG(rating)").Row()
		if err := row.Scan(&average); err != nil {
			return nil, 0, 0, fmt.Errorf("failed to average ratings: %w", err)
		}
	}

	var models []model.ReviewModel
	err := r.db.WithContext(ctx).
		Where("game_id = ?", gameID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&models).Error
	if err != nil {
		return nil, 0, 0, fmt.Errorf("failed to list reviews: %w", err)
	}

	reviews := make([]domain.Review, len(models))
	for i := range models {
		reviews[i] = *models[i].ToDomain()
	}
	return reviews, int(total), average, nil
}

func (r *ReviewRepository) Update(ctx context.Context, review *domain.Review) error {
	updates := map[string]interface{}{
		"rating": review.Rating,
		"body":   review.Body,
	}
	result := r.db.WithContext(ctx).Model(&model.ReviewModel{}).Where("id = ?", review.ID).Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("failed to update review: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrReviewNotFound
	}
	return nil
}

func (r *ReviewRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.ReviewModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete review: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrReviewNotFound
	}
	return nil
}
