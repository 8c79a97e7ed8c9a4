package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/kyso8575/GameBuddy/internal/domain"
	"github.com/kyso8575/GameBuddy/internal/infrastructure/persistence/model"
)

type WishlistRepository struct {
	db *gorm.DB
}

func NewWishlistRepository(db *gorm.DB) *WishlistRepository {
	return &WishlistRepository{db: db}
}

// Add is idempotent: adding a game already on the list is a no-op.
func (r *WishlistRepository) Add(ctx context.Context, item *domain.WishlistItem) error {
	exists, err := r.Exists(ctx, item.UserID, item.GameID)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	m := &model.WishlistModel{UserID: item.UserID, GameID: item.GameID}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return fmt.Errorf("failed to add wishlist item: %w", err)
	}
	item.ID = m.ID
	item.CreatedAt = m.CreatedAt
	return nil
}

func (r *WishlistRepository) Remove(ctx context.Context, userID string, gameID int) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND game_id = ?", userID, gameID).
		Delete(&model.WishlistModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to remove wishlist item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrGameNotFound
	}
	return nil
}

func (r *WishlistRepository) ListByUser(ctx context.Context, userID string) ([]domain.WishlistItem, error) {
	var models []model.WishlistModel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list wishlist: %w", err)
	}
	items := make([]domain.WishlistItem, len(models))
	for i := range models {
		items[i] = *models[i].ToDomain()
	}
	return items, nil
}

func (r *WishlistRepository) Exists(ctx context.Context, userID string, gameID int) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.WishlistModel{}).
		Where("user_id = ? AND game_id = ?", userID, gameID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check wishlist: %w", err)
	}
	return count > 0, nil
}
