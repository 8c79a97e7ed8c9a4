package application

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/kyso8575/GameBuddy/internal/domain"
	"github.com/kyso8575/GameBuddy/internal/recommend"
)

const defaultSessionPageSize = 20

// Recommender produces the bot side of a conversation.
type Recommender interface {
	Recommend(ctx context.Context, userText string) (string, error)
	ContinueChat(ctx context.Context, history []domain.Message, userText string) (string, error)
}

type ChatService struct {
	sessions    domain.SessionRepository
	recommender Recommender
}

func NewChatService(sessions domain.SessionRepository, recommender Recommender) *ChatService {
	return &ChatService{sessions: sessions, recommender: recommender}
}

// StartSession 创建会话并处理首条消息. The first exchange runs the structured
// recommendation pipeline.
func (s *ChatService) StartSession(ctx context.Context, userID, message string) (*domain.ChatSession, error) {
	reply := s.answer(ctx, message)
	session := &domain.ChatSession{
		SessionID: uuid.New().String(),
		UserID:    userID,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	session.Append(message, reply)
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	return session, nil
}

// ProcessMessage 处理会话内消息, structured recommendation path. The user
// message and bot reply are appended as a pair and the session re-saved.
func (s *ChatService) ProcessMessage(ctx context.Context, userID, sessionID, message string) (*domain.ChatSession, error) {
	session, err := s.sessions.FindByID(ctx, sessionID, userID)
	if err != nil {
		return nil, err
	}
	reply := s.answer(ctx, message)
	session.Append(message, reply)
	session.UpdatedAt = time.Now()
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	return session, nil
}

// ContinueSession 自由对话. The prior exchange feeds the prompt; no catalog
// filtering happens on this path.
func (s *ChatService) ContinueSession(ctx context.Context, userID, sessionID, message string) (*domain.ChatSession, error) {
	session, err := s.sessions.FindByID(ctx, sessionID, userID)
	if err != nil {
		return nil, err
	}
	reply, err := s.recommender.ContinueChat(ctx, session.Messages, message)
	if err != nil {
		return nil, fmt.Errorf("continue chat: %w", err)
	}
	session.Append(message, reply)
	session.UpdatedAt = time.Now()
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	return session, nil
}

func (s *ChatService) LoadSession(ctx context.Context, userID, sessionID string) (*domain.ChatSession, error) {
	return s.sessions.FindByID(ctx, sessionID, userID)
}

func (s *ChatService) ListSessions(ctx context.Context, userID string, limit, offset int) ([]*domain.ChatSession, error) {
	if limit <= 0 {
		limit = defaultSessionPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return s.sessions.FindByUserID(ctx, userID, limit, offset)
}

// answer always yields user-facing text: a narrated recommendation, the fixed
// no-matches apology, or the parse-failure apology when the extraction reply
// cannot be read.
func (s *ChatService) answer(ctx context.Context, message string) string {
	reply, err := s.recommender.Recommend(ctx, message)
	if err != nil {
		if !errors.Is(err, domain.ErrMalformedReply) {
			log.Printf("recommendation failed: %v", err)
		}
		return recommend.ApologyParseFailure
	}
	return reply
}
