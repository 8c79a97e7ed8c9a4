// Package recommend implements the retrieval-augmented recommendation
// pipeline: extract structured filter criteria from free text with one LLM
// call, filter the catalog, and narrate the top matches with a second call.
package recommend

import (
	"context"
	"fmt"
	"sync"

	"github.com/kyso8575/GameBuddy/internal/catalog"
	"github.com/kyso8575/GameBuddy/internal/domain"
	"github.com/kyso8575/GameBuddy/pkg/llm"
)

// topN is how many ranked matches feed the narration prompt.
const topN = 3

// Service holds the LLM client handle and an immutable vocabulary snapshot.
// It keeps no per-request state, so independent requests may run in parallel.
type Service struct {
	provider llm.Provider
	games    domain.GameRepository

	mu    sync.RWMutex
	vocab domain.Vocabulary
}

// NewService snapshots the catalog vocabulary once. Newly ingested values
// only show up in extraction prompts after RefreshVocabulary.
func NewService(ctx context.Context, provider llm.Provider, games domain.GameRepository) (*Service, error) {
	s := &Service{provider: provider, games: games}
	if err := s.RefreshVocabulary(ctx); err != nil {
		return nil, fmt.Errorf("load vocabulary: %w", err)
	}
	return s, nil
}

// RefreshVocabulary re-reads the distinct catalog values.
func (s *Service) RefreshVocabulary(ctx context.Context) error {
	vocab, err := s.games.DistinctValues(ctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.vocab = *vocab
	s.mu.Unlock()
	return nil
}

func (s *Service) vocabulary() domain.Vocabulary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.vocab
}

// Recommend runs the full pipeline for one free-text request. The returned
// string is always user-facing text: a narrated recommendation or the fixed
// no-matches apology. A structural parse failure of the extraction reply is
// returned as an error wrapping domain.ErrMalformedReply.
func (s *Service) Recommend(ctx context.Context, userText string) (string, error) {
	ext, err := s.extract(ctx, userText)
	if err != nil {
		return "", err
	}

	games, err := s.games.ListRanked(ctx)
	if err != nil {
		return "", fmt.Errorf("list games: %w", err)
	}
	top := catalog.Top(games, ext.criteria(), topN)
	if len(top) == 0 {
		return ApologyNoMatches, nil
	}

	names := make([]string, len(top))
	for i, g := range top {
		names[i] = g.Name
	}
	return s.narrate(ctx, names)
}

// ContinueChat answers inside an existing conversation: the prior exchange is
// flattened into the prompt and the reply is free-form. No extraction or
// catalog filtering happens on this path.
func (s *Service) ContinueChat(ctx context.Context, history []domain.Message, userText string) (string, error) {
	reply, err := s.provider.Complete(ctx, []llm.Message{
		{Role: "system", Content: chatSystem},
		{Role: "user", Content: chatUserPrompt(history, userText)},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	return reply, nil
}

func (s *Service) extract(ctx context.Context, userText string) (*extraction, error) {
	reply, err := s.provider.Complete(ctx, []llm.Message{
		{Role: "system", Content: extractSystemPrompt(s.vocabulary())},
		{Role: "user", Content: extractUserPrompt(userText)},
	})
	if err != nil {
		return nil, fmt.Errorf("extraction completion: %w", err)
	}
	return parseReply(reply)
}

func (s *Service) narrate(ctx context.Context, names []string) (string, error) {
	reply, err := s.provider.Complete(ctx, []llm.Message{
		{Role: "system", Content: narrateSystem},
		{Role: "user", Content: narrateUserPrompt(names)},
	})
	if err != nil {
		return "", fmt.Errorf("narration completion: %w", err)
	}
	return reply, nil
}
