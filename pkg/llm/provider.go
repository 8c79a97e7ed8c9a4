package llm

import "context"

// Provider defines the interface for text-in/text-out LLM backends. The
// recommendation pipeline treats the model as an opaque service: it sends
// role-tagged messages and reads back free text.
type Provider interface {
	Complete(ctx context.Context, messages []Message) (string, error)
}

// Message represents a chat message in a conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Config holds common configuration for LLM providers.
type Config struct {
	BaseURL     string
	APIKey      string
	Model       string
	MaxTokens   int
	Temperature float32
}
