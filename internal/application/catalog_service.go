package application

import (
	"context"
	"fmt"
	"log"

	"github.com/kyso8575/GameBuddy/internal/catalog"
	"github.com/kyso8575/GameBuddy/internal/domain"
)

// DescriptionFetcher pulls the long description for one game from the
// upstream catalog API.
type DescriptionFetcher interface {
	FetchDescription(ctx context.Context, gameID int) (string, error)
}

type CatalogService struct {
	games   domain.GameRepository
	fetcher DescriptionFetcher
}

func NewCatalogService(games domain.GameRepository, fetcher DescriptionFetcher) *CatalogService {
	return &CatalogService{games: games, fetcher: fetcher}
}

// Search 过滤并分页目录. The whole ranked catalog is loaded and filtered in
// process, matching works on the decoded list values.
func (s *CatalogService) Search(ctx context.Context, criteria domain.FilterCriteria) (*domain.GamePage, error) {
	games, err := s.games.ListRanked(ctx)
	if err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}
	page := catalog.Search(games, criteria)
	return &page, nil
}

// GetGame returns one game, lazily enriching an empty description from the
// upstream API. Enrichment failures are logged and the game is returned as
// stored.
func (s *CatalogService) GetGame(ctx context.Context, id int) (*domain.Game, error) {
	game, err := s.games.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if game.Description != "" || s.fetcher == nil {
		return game, nil
	}

	description, err := s.fetcher.FetchDescription(ctx, id)
	if err != nil {
		log.Printf("description fetch for game %d failed: %v", id, err)
		return game, nil
	}
	if description == "" {
		return game, nil
	}
	if err := s.games.UpdateDescription(ctx, id, description); err != nil {
		log.Printf("description update for game %d failed: %v", id, err)
		return game, nil
	}
	game.Description = description
	return game, nil
}

// Vocabulary 目录取值全集
func (s *CatalogService) Vocabulary(ctx context.Context) (*domain.Vocabulary, error) {
	return s.games.DistinctValues(ctx)
}
