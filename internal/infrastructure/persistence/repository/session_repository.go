package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/kyso8575/GameBuddy/internal/domain"
	"github.com/kyso8575/GameBuddy/internal/infrastructure/persistence/model"
)

type SessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// Save upserts by session_id so repeated saves of the same session rewrite the
// message log instead of inserting a second row.
func (r *SessionRepository) Save(ctx context.Context, session *domain.ChatSession) error {
	m, err := model.ToSessionModel(session)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	var existing model.SessionModel
	err = r.db.WithContext(ctx).Where("session_id = ?", session.SessionID).First(&existing).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
			return fmt.Errorf("failed to create session: %w", err)
		}
	case err != nil:
		return fmt.Errorf("failed to load session: %w", err)
	default:
		updates := map[string]interface{}{"messages": m.Messages}
		if err := r.db.WithContext(ctx).Model(&existing).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to update session: %w", err)
		}
	}
	return nil
}

func (r *SessionRepository) FindByID(ctx context.Context, sessionID, userID string) (*domain.ChatSession, error) {
	var m model.SessionModel
	err := r.db.WithContext(ctx).Where("session_id = ? AND user_id = ?", sessionID, userID).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to find session: %w", err)
	}
	return m.ToDomain()
}

func (r *SessionRepository) FindByUserID(ctx context.Context, userID string, limit, offset int) ([]*domain.ChatSession, error) {
	var models []model.SessionModel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	sessions := make([]*domain.ChatSession, 0, len(models))
	for i := range models {
		s, err := models[i].ToDomain()
		if err != nil {
			return nil, fmt.Errorf("session %s: %w", models[i].SessionID, err)
		}
		sessions = append(sessions, s)
	}
	return sessions, nil
}
