package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/kyso8575/GameBuddy/internal/domain"
)

var ErrCacheMiss = errors.New("cache miss")

const (
	SessionTTL     = 48 * time.Hour
	UserSessionTTL = 48 * time.Hour
)

// SessionCache 会话热数据缓存. Whole sessions are cached as one JSON blob
// keyed by session id; a per-user ZSet scored by update time backs the
// session list.
type SessionCache struct {
	client *redis.Client
}

func NewSessionCache(client *redis.Client) (*SessionCache, error) {
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &SessionCache{client: client}, nil
}

type messageRecord struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type sessionRecord struct {
	SessionID string          `json:"session_id"`
	UserID    string          `json:"user_id"`
	Messages  []messageRecord `json:"messages"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func toRecord(s *domain.ChatSession) *sessionRecord {
	messages := make([]messageRecord, len(s.Messages))
	for i, m := range s.Messages {
		messages[i] = messageRecord{Role: m.Role.String(), Content: m.Content}
	}
	return &sessionRecord{
		SessionID: s.SessionID,
		UserID:    s.UserID,
		Messages:  messages,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func (r *sessionRecord) toDomain() *domain.ChatSession {
	messages := make([]domain.Message, len(r.Messages))
	for i, m := range r.Messages {
		messages[i] = domain.Message{Role: domain.Role(m.Role), Content: m.Content}
	}
	return &domain.ChatSession{
		SessionID: r.SessionID,
		UserID:    r.UserID,
		Messages:  messages,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func (c *SessionCache) Save(ctx context.Context, session *domain.ChatSession) error {
	data, err := json.Marshal(toRecord(session))
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	pipe := c.client.Pipeline()
	pipe.Set(ctx, c.sessionKey(session.SessionID), data, SessionTTL)
	userKey := c.userSessionsKey(session.UserID)
	pipe.ZAdd(ctx, userKey, &redis.Z{
		Score:  float64(session.UpdatedAt.UnixMicro()),
		Member: session.SessionID,
	})
	pipe.Expire(ctx, userKey, UserSessionTTL)
	_, err = pipe.Exec(ctx)
	return err
}

func (c *SessionCache) Get(ctx context.Context, sessionID string) (*domain.ChatSession, error) {
	data, err := c.client.Get(ctx, c.sessionKey(sessionID)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("get session from cache: %w", err)
	}
	var record sessionRecord
	if err := json.Unmarshal([]byte(data), &record); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}
	return record.toDomain(), nil
}

// GetUserSessions returns the user's sessions newest first. A missing or
// empty ZSet is a miss so callers fall back to the database.
func (c *SessionCache) GetUserSessions(ctx context.Context, userID string, limit, offset int) ([]*domain.ChatSession, error) {
	start := int64(offset)
	stop := int64(offset + limit - 1)
	ids, err := c.client.ZRevRange(ctx, c.userSessionsKey(userID), start, stop).Result()
	if err != nil {
		return nil, fmt.Errorf("get user session ids: %w", err)
	}
	if len(ids) == 0 {
		return nil, ErrCacheMiss
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = c.sessionKey(id)
	}
	results, err := c.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("mget sessions: %w", err)
	}

	sessions := make([]*domain.ChatSession, 0, len(results))
	for _, result := range results {
		if result == nil {
			// Blob expired ahead of the ZSet, report a miss so the
			// caller reads a complete list from the database.
			return nil, ErrCacheMiss
		}
		var record sessionRecord
		if err := json.Unmarshal([]byte(result.(string)), &record); err != nil {
			return nil, ErrCacheMiss
		}
		sessions = append(sessions, record.toDomain())
	}
	return sessions, nil
}

func (c *SessionCache) Delete(ctx context.Context, userID, sessionID string) error {
	pipe := c.client.Pipeline()
	pipe.Del(ctx, c.sessionKey(sessionID))
	pipe.ZRem(ctx, c.userSessionsKey(userID), sessionID)
	_, err := pipe.Exec(ctx)
	return err
}

func (c *SessionCache) sessionKey(sessionID string) string {
	return fmt.Sprintf("session:%s", sessionID)
}

func (c *SessionCache) userSessionsKey(userID string) string {
	return fmt.Sprintf("user_sessions:%s", userID)
}

func (c *SessionCache) Close() error {
	return c.client.Close()
}
