package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/kyso8575/GameBuddy/internal/application"
	"github.com/kyso8575/GameBuddy/internal/domain"
)

type ChatHandler struct {
	chat *application.ChatService
}

func NewChatHandler(chat *application.ChatService) *ChatHandler {
	return &ChatHandler{chat: chat}
}

// StartSession 创建会话并返回首次应答
func (h *ChatHandler) StartSession(c *gin.Context) {
	userID := c.GetString("user_id")

	var req struct {
		Message string `json:"message" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Message is required"})
		return
	}

	session, err := h.chat.StartSession(c.Request.Context(), userID, req.Message)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start session"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"session_id": session.SessionID,
		"reply":      session.Messages[len(session.Messages)-1].Content,
	})
}

// ProcessMessage 结构化推荐路径
func (h *ChatHandler) ProcessMessage(c *gin.Context) {
	h.respond(c, h.chat.ProcessMessage)
}

// ContinueSession 自由对话路径
func (h *ChatHandler) ContinueSession(c *gin.Context) {
	h.respond(c, h.chat.ContinueSession)
}

func (h *ChatHandler) respond(c *gin.Context, process func(ctx context.Context, userID, sessionID, message string) (*domain.ChatSession, error)) {
	userID := c.GetString("user_id")
	sessionID := c.Param("sessionId")

	var req struct {
		Message string `json:"message" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Message is required"})
		return
	}

	session, err := process(c.Request.Context(), userID, sessionID, req.Message)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process message"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"session_id": session.SessionID,
		"reply":      session.Messages[len(session.Messages)-1].Content,
	})
}

// GetSession 会话历史
func (h *ChatHandler) GetSession(c *gin.Context) {
	userID := c.GetString("user_id")
	sessionID := c.Param("sessionId")

	session, err := h.chat.LoadSession(c.Request.Context(), userID, sessionID)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load session"})
		return
	}

	messages := make([]gin.H, len(session.Messages))
	for i, msg := range session.Messages {
		messages[i] = gin.H{
			"role":    msg.Role.String(),
			"content": msg.Content,
		}
	}
	c.JSON(http.StatusOK, gin.H{
		"session_id": session.SessionID,
		"messages":   messages,
		"created_at": session.CreatedAt,
		"updated_at": session.UpdatedAt,
	})
}

// ListSessions 用户会话列表
func (h *ChatHandler) ListSessions(c *gin.Context) {
	userID := c.GetString("user_id")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	sessions, err := h.chat.ListSessions(c.Request.Context(), userID, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list sessions"})
		return
	}

	out := make([]gin.H, len(sessions))
	for i, s := range sessions {
		preview := ""
		if len(s.Messages) > 0 {
			preview = s.Messages[0].Content
		}
		out[i] = gin.H{
			"session_id": s.SessionID,
			"preview":    preview,
			"messages":   len(s.Messages),
			"updated_at": s.UpdatedAt,
		}
	}
	c.JSON(http.StatusOK, gin.H{"sessions": out})
}
