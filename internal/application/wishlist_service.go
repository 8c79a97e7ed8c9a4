package application

import (
	"context"
	"errors"

	"github.com/kyso8575/GameBuddy/internal/domain"
)

type WishlistService struct {
	wishlist domain.WishlistRepository
	games    domain.GameRepository
}

func NewWishlistService(wishlist domain.WishlistRepository, games domain.GameRepository) *WishlistService {
	return &WishlistService{wishlist: wishlist, games: games}
}

// Add is idempotent: re-adding a wishlisted game succeeds without a second
// row.
func (s *WishlistService) Add(ctx context.Context, userID string, gameID int) (*domain.WishlistItem, error) {
	exists, err := s.games.ExistsByID(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrGameNotFound
	}
	item := &domain.WishlistItem{UserID: userID, GameID: gameID}
	if err := s.wishlist.Add(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *WishlistService) Remove(ctx context.Context, userID string, gameID int) error {
	return s.wishlist.Remove(ctx, userID, gameID)
}

// List returns the wishlisted games as full game records, newest first.
// Entries whose game row has vanished are skipped.
func (s *WishlistService) List(ctx context.Context, userID string) ([]domain.Game, error) {
	items, err := s.wishlist.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	games := make([]domain.Game, 0, len(items))
	for _, item := range items {
		game, err := s.games.FindByID(ctx, item.GameID)
		if err != nil {
			if errors.Is(err, domain.ErrGameNotFound) {
				continue
			}
			return nil, err
		}
		games = append(games, *game)
	}
	return games, nil
}
