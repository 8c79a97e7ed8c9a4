package model

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/kyso8575/GameBuddy/internal/domain"
)

// SessionModel mirrors the chat_sessions table. The message log is one JSON
// array in a text column, append-only from the application's point of view.
type SessionModel struct {
	ID        uint      `gorm:"primaryKey;autoIncrement;column:id"`
	SessionID string    `gorm:"uniqueIndex:idx_session_id;size:36;not null;column:session_id"`
	UserID    string    `gorm:"index:idx_session_user;size:36;not null;column:user_id"`
	Messages  string    `gorm:"type:text;not null;column:messages"`
	CreatedAt time.Time `gorm:"autoCreateTime;column:created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime;column:updated_at"`
}

func (SessionModel) TableName() string {
	return "chat_sessions"
}

type messageRecord struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

func (m *SessionModel) ToDomain() (*domain.ChatSession, error) {
	var records []messageRecord
	if m.Messages != "" {
		if err := json.Unmarshal([]byte(m.Messages), &records); err != nil {
			return nil, fmt.Errorf("decode session messages: %w", err)
		}
	}
	messages := make([]domain.Message, len(records))
	for i, r := range records {
		messages[i] = domain.Message{Role: domain.Role(r.Role), Content: r.Content}
	}
	return &domain.ChatSession{
		SessionID: m.SessionID,
		UserID:    m.UserID,
		Messages:  messages,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}, nil
}

func ToSessionModel(d *domain.ChatSession) (*SessionModel, error) {
	records := make([]messageRecord, len(d.Messages))
	for i, msg := range d.Messages {
		records[i] = messageRecord{Role: msg.Role.String(), Content: msg.Content}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("encode session messages: %w", err)
	}
	return &SessionModel{
		SessionID: d.SessionID,
		UserID:    d.UserID,
		Messages:  string(data),
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}, nil
}
