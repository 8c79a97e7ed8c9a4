package cache

import (
	"context"
	"errors"
	"log"

	"github.com/kyso8575/GameBuddy/internal/domain"
)

// Cache is the subset of SessionCache the read-through repository needs.
type Cache interface {
	Save(ctx context.Context, session *domain.ChatSession) error
	Get(ctx context.Context, sessionID string) (*domain.ChatSession, error)
	GetUserSessions(ctx context.Context, userID string, limit, offset int) ([]*domain.ChatSession, error)
}

// CachedSessionRepository 读缓存 -> 降级读库. Writes go to the database
// first; cache writes are best-effort and never fail the request.
type CachedSessionRepository struct {
	store domain.SessionRepository
	cache Cache
}

func NewCachedSessionRepository(store domain.SessionRepository, cache Cache) domain.SessionRepository {
	return &CachedSessionRepository{store: store, cache: cache}
}

func (r *CachedSessionRepository) Save(ctx context.Context, session *domain.ChatSession) error {
	if err := r.store.Save(ctx, session); err != nil {
		return err
	}
	if err := r.cache.Save(ctx, session); err != nil {
		log.Printf("session cache write failed (degraded): %v", err)
	}
	return nil
}

func (r *CachedSessionRepository) FindByID(ctx context.Context, sessionID, userID string) (*domain.ChatSession, error) {
	cached, err := r.cache.Get(ctx, sessionID)
	if err == nil {
		if cached.UserID != userID {
			return nil, domain.ErrSessionNotFound
		}
		return cached, nil
	}
	if !errors.Is(err, ErrCacheMiss) {
		log.Printf("session cache read failed (degraded): %v", err)
	}

	session, err := r.store.FindByID(ctx, sessionID, userID)
	if err != nil {
		return nil, err
	}
	if err := r.cache.Save(ctx, session); err != nil {
		log.Printf("session cache backfill failed (degraded): %v", err)
	}
	return session, nil
}

func (r *CachedSessionRepository) FindByUserID(ctx context.Context, userID string, limit, offset int) ([]*domain.ChatSession, error) {
	sessions, err := r.cache.GetUserSessions(ctx, userID, limit, offset)
	if err == nil {
		return sessions, nil
	}
	if !errors.Is(err, ErrCacheMiss) {
		log.Printf("session list cache read failed (degraded): %v", err)
	}
	return r.store.FindByUserID(ctx, userID, limit, offset)
}
