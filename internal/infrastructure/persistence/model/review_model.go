package model

import (
	"time"

	"github.com/kyso8575/GameBuddy/internal/domain"
)

// ReviewModel mirrors the reviews table. The composite unique index enforces
// one review per user per game.
type ReviewModel struct {
	ID        uint      `gorm:"primaryKey;autoIncrement;column:id"`
	UserID    string    `gorm:"uniqueIndex:idx_review_user_game;size:36;not null;column:user_id"`
	GameID    int       `gorm:"uniqueIndex:idx_review_user_game;index;not null;column:game_id"`
	Rating    int       `gorm:"not null;column:rating"`
	Body      string    `gorm:"type:text;column:body"`
	CreatedAt time.Time `gorm:"autoCreateTime;column:created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime;column:updated_at"`
}

func (ReviewModel) TableName() string {
	return "reviews"
}

func (m *ReviewModel) ToDomain() *domain.Review {
	return &domain.Review{
		ID:        m.ID,
		UserID:    m.UserID,
		GameID:    m.GameID,
		Rating:    m.Rating,
		Body:      m.Body,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func ToReviewModel(d *domain.Review) *ReviewModel {
	return &ReviewModel{
		ID:        d.ID,
		UserID:    d.UserID,
		GameID:    d.GameID,
		Rating:    d.Rating,
		Body:      d.Body,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

// WishlistModel mirrors the wishlist_items table.
type WishlistModel struct {
	ID        uint      `gorm:"primaryKey;autoIncrement;column:id"`
	UserID    string    `gorm:"uniqueIndex:idx_wishlist_user_game;size:36;not null;column:user_id"`
	GameID    int       `gorm:"uniqueIndex:idx_wishlist_user_game;not null;column:game_id"`
	CreatedAt time.Time `gorm:"autoCreateTime;column:created_at"`
}

func (WishlistModel) TableName() string {
	return "wishlist_items"
}

func (m *WishlistModel) ToDomain() *domain.WishlistItem {
	return &domain.WishlistItem{
		ID:        m.ID,
		UserID:    m.UserID,
		GameID:    m.GameID,
		CreatedAt: m.CreatedAt,
	}
}
