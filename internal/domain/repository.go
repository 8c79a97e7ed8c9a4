package domain

import "context"

// GameRepository 定义目录数据访问接口
// 不关心具体实现是 postgres 还是内存
type GameRepository interface {
	// ListRanked returns every game ordered by metacritic score descending,
	// zero/unknown scores last, id ascending as the tie-breaker.
	ListRanked(ctx context.Context) ([]Game, error)
	FindByID(ctx context.Context, id int) (*Game, error)
	ExistsByID(ctx context.Context, id int) (bool, error)
	// SaveBatch inserts the given games inside one transaction, skipping any
	// whose id already exists. Returns the number actually inserted.
	SaveBatch(ctx context.Context, games []Game) (int, error)
	UpdateDescription(ctx context.Context, id int, description string) error
	// DistinctValues collects the decoded, deduplicated genre/platform/store/
	// ESRB values across the whole catalog.
	DistinctValues(ctx context.Context) (*Vocabulary, error)
	Count(ctx context.Context) (int64, error)
}

type SessionRepository interface {
	Save(ctx context.Context, session *ChatSession) error
	// FindByID returns ErrSessionNotFound when the id is unknown or owned by
	// a different user.
	FindByID(ctx context.Context, sessionID, userID string) (*ChatSession, error)
	FindByUserID(ctx context.Context, userID string, limit, offset int) ([]*ChatSession, error)
}

type ReviewRepository interface {
	Create(ctx context.Context, review *Review) error
	FindByID(ctx context.Context, id uint) (*Review, error)
	FindByUserAndGame(ctx context.Context, userID string, gameID int) (*Review, error)
	// ListByGame returns one page ordered by created_at descending plus the
	// total count and average rating over the whole set.
	ListByGame(ctx context.Context, gameID int, limit, offset int) ([]Review, int, float64, error)
	Update(ctx context.Context, review *Review) error
	Delete(ctx context.Context, id uint) error
}

type WishlistRepository interface {
	Add(ctx context.Context, item *WishlistItem) error
	Remove(ctx context.Context, userID string, gameID int) error
	ListByUser(ctx context.Context, userID string) ([]WishlistItem, error)
	Exists(ctx context.Context, userID string, gameID int) (bool, error)
}
