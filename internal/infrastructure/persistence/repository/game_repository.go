package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"gorm.io/gorm"

	"github.com/kyso8575/GameBuddy/internal/domain"
	"github.com/kyso8575/GameBuddy/internal/infrastructure/persistence/model"
)

// rankedOrder puts zero/unknown metacritic scores last and breaks ties by id.
const rankedOrder = "CASE WHEN metacritic_score > 0 THEN 0 ELSE 1 END, metacritic_score DESC, id ASC"

type GameRepository struct {
	db *gorm.DB
}

func NewGameRepository(db *gorm.DB) *GameRepository {
	return &GameRepository{db: db}
}

func (r *GameRepository) ListRanked(ctx context.Context) ([]domain.Game, error) {
	var models []model.GameModel
	if err := r.db.WithContext(ctx).Order(rankedOrder).Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list games: %w", err)
	}
	games := make([]domain.Game, 0, len(models))
	for i := range models {
		g, err := models[i].ToDomain()
		if err != nil {
			return nil, fmt.Errorf("game %d: %w", models[i].ID, err)
		}
		games = append(games, *g)
	}
	return games, nil
}

func (r *GameRepository) FindByID(ctx context.Context, id int) (*domain.Game, error) {
	var m model.GameModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrGameNotFound
		}
		return nil, fmt.Errorf("failed to find game: %w", err)
	}
	return m.ToDomain()
}

func (r *GameRepository) ExistsByID(ctx context.Context, id int) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.GameModel{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check game existence: %w", err)
	}
	return count > 0, nil
}

// SaveBatch inserts the batch in one transaction, skipping games whose id is
// already present. Existing rows are left untouched.
func (r *GameRepository) SaveBatch(ctx context.Context, games []domain.Game) (int, error) {
	saved := 0
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range games {
			var count int64
			if err := tx.Model(&model.GameModel{}).Where("id = ?", games[i].ID).Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				continue
			}
			m, err := model.ToGameModel(&games[i])
			if err != nil {
				return err
			}
			if err := tx.Create(m).Error; err != nil {
				return err
			}
			saved++
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to save batch: %w", err)
	}
	return saved, nil
}

func (r *GameRepository) UpdateDescription(ctx context.Context, id int, description string) error {
	result := r.db.WithContext(ctx).Model(&model.GameModel{}).Where("id = ?", id).Update("description", description)
	if result.Error != nil {
		return fmt.Errorf("failed to update description: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrGameNotFound
	}
	return nil
}

// DistinctValues decodes every stored record and collects the deduplicated
// genre/platform/store/ESRB values in lexical order.
func (r *GameRepository) DistinctValues(ctx context.Context) (*domain.Vocabulary, error) {
	var models []model.GameModel
	if err := r.db.WithContext(ctx).Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to load vocabulary: %w", err)
	}

	genres := map[string]struct{}{}
	platforms := map[string]struct{}{}
	stores := map[string]struct{}{}
	esrb := map[string]struct{}{}
	for i := range models {
		g, err := models[i].ToDomain()
		if err != nil {
			return nil, fmt.Errorf("game %d: %w", models[i].ID, err)
		}
		collect(genres, g.Genres)
		collect(platforms, g.Platforms)
		collect(stores, g.Stores)
		if g.ESRBRating != "" {
			esrb[g.ESRBRating] = struct{}{}
		}
	}

	return &domain.Vocabulary{
		Genres:      sorted(genres),
		Platforms:   sorted(platforms),
		Stores:      sorted(stores),
		ESRBRatings: sorted(esrb),
	}, nil
}

func (r *GameRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.GameModel{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count games: %w", err)
	}
	return count, nil
}

func collect(set map[string]struct{}, values []string) {
	for _, v := range values {
		if v != "" {
			set[v] = struct{}{}
		}
	}
}

func sorted(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
