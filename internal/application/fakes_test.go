package application

import (
	"context"
	"sort"

	"github.com/kyso8575/GameBuddy/internal/domain"
)

type fakeGameRepo struct {
	games       map[int]domain.Game
	descUpdates map[int]string
}

func newFakeGameRepo(games ...domain.Game) *fakeGameRepo {
	repo := &fakeGameRepo{games: map[int]domain.Game{}, descUpdates: map[int]string{}}
	for _, g := range games {
		repo.games[g.ID] = g
	}
	return repo
}

func (f *fakeGameRepo) ListRanked(ctx context.Context) ([]domain.Game, error) {
	out := make([]domain.Game, 0, len(f.games))
	for _, g := range f.games {
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		aScored, bScored := a.MetacriticScore > 0, b.MetacriticScore > 0
		if aScored != bScored {
			return aScored
		}
		if a.MetacriticScore != b.MetacriticScore {
			return a.MetacriticScore > b.MetacriticScore
		}
		return a.ID < b.ID
	})
	return out, nil
}

func (f *fakeGameRepo) FindByID(ctx context.Context, id int) (*domain.Game, error) {
	g, ok := f.games[id]
	if !ok {
		return nil, domain.ErrGameNotFound
	}
	return &g, nil
}

func (f *fakeGameRepo) ExistsByID(ctx context.Context, id int) (bool, error) {
	_, ok := f.games[id]
	return ok, nil
}

func (f *fakeGameRepo) SaveBatch(ctx context.Context, games []domain.Game) (int, error) {
	saved := 0
	for _, g := range games {
		if _, ok := f.games[g.ID]; ok {
			continue
		}
		f.games[g.ID] = g
		saved++
	}
	return saved, nil
}

func (f *fakeGameRepo) UpdateDescription(ctx context.Context, id int, description string) error {
	g, ok := f.games[id]
	if !ok {
		return domain.ErrGameNotFound
	}
	g.Description = description
	f.games[id] = g
	f.descUpdates[id] = description
	return nil
}

func (f *fakeGameRepo) DistinctValues(ctx context.Context) (*domain.Vocabulary, error) {
	return &domain.Vocabulary{}, nil
}

func (f *fakeGameRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(f.games)), nil
}

type fakeSessionRepo struct {
	sessions map[string]*domain.ChatSession
	saves    int
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: map[string]*domain.ChatSession{}}
}

func (f *fakeSessionRepo) Save(ctx context.Context, session *domain.ChatSession) error {
	copied := *session
	copied.Messages = append([]domain.Message(nil), session.Messages...)
	f.sessions[session.SessionID] = &copied
	f.saves++
	return nil
}

func (f *fakeSessionRepo) FindByID(ctx context.Context, sessionID, userID string) (*domain.ChatSession, error) {
	s, ok := f.sessions[sessionID]
	if !ok || s.UserID != userID {
		return nil, domain.ErrSessionNotFound
	}
	copied := *s
	copied.Messages = append([]domain.Message(nil), s.Messages...)
	return &copied, nil
}

func (f *fakeSessionRepo) FindByUserID(ctx context.Context, userID string, limit, offset int) ([]*domain.ChatSession, error) {
	var out []*domain.ChatSession
	for _, s := range f.sessions {
		if s.UserID == userID {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SessionID < out[j].SessionID })
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

type fakeRecommender struct {
	recommendFunc func(ctx context.Context, userText string) (string, error)
	continueFunc  func(ctx context.Context, history []domain.Message, userText string) (string, error)
	lastHistory   []domain.Message
}

func (f *fakeRecommender) Recommend(ctx context.Context, userText string) (string, error) {
	if f.recommendFunc != nil {
		return f.recommendFunc(ctx, userText)
	}
	return "추천: Hades", nil
}

func (f *fakeRecommender) ContinueChat(ctx context.Context, history []domain.Message, userText string) (string, error) {
	f.lastHistory = history
	if f.continueFunc != nil {
		return f.continueFunc(ctx, history, userText)
	}
	return "자유 대화 응답", nil
}

type fakeReviewRepo struct {
	reviews map[uint]*domain.Review
	nextID  uint
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{reviews: map[uint]*domain.Review{}, nextID: 1}
}

func (f *fakeReviewRepo) Create(ctx context.Context, review *domain.Review) error {
	review.ID = f.nextID
	f.nextID++
	copied := *review
	f.reviews[review.ID] = &copied
	return nil
}

func (f *fakeReviewRepo) FindByID(ctx context.Context, id uint) (*domain.Review, error) {
	r, ok := f.reviews[id]
	if !ok {
		return nil, domain.ErrReviewNotFound
	}
	copied := *r
	return &copied, nil
}

func (f *fakeReviewRepo) FindByUserAndGame(ctx context.Context, userID string, gameID int) (*domain.Review, error) {
	for _, r := range f.reviews {
		if r.UserID == userID && r.GameID == gameID {
			copied := *r
			return &copied, nil
		}
	}
	return nil, domain.ErrReviewNotFound
}

func (f *fakeReviewRepo) ListByGame(ctx context.Context, gameID int, limit, offset int) ([]domain.Review, int, float64, error) {
	var all []domain.Review
	sum := 0
	for _, r := range f.reviews {
		if r.GameID == gameID {
			all = append(all, *r)
			sum += r.Rating
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID > all[j].ID })
	total := len(all)
	average := 0.0
	if total > 0 {
		average = float64(sum) / float64(total)
	}
	if offset >= len(all) {
		return nil, total, average, nil
	}
	all = all[offset:]
	if limit < len(all) {
		all = all[:limit]
	}
	return all, total, average, nil
}

func (f *fakeReviewRepo) Update(ctx context.Context, review *domain.Review) error {
	if _, ok := f.reviews[review.ID]; !ok {
		return domain.ErrReviewNotFound
	}
	copied := *review
	f.reviews[review.ID] = &copied
	return nil
}

func (f *fakeReviewRepo) Delete(ctx context.Context, id uint) error {
	if _, ok := f.reviews[id]; !ok {
		return domain.ErrReviewNotFound
	}
	delete(f.reviews, id)
	return nil
}

type fakeWishlistRepo struct {
	items  []domain.WishlistItem
	nextID uint
}

func newFakeWishlistRepo() *fakeWishlistRepo {
	return &fakeWishlistRepo{nextID: 1}
}

func (f *fakeWishlistRepo) Add(ctx context.Context, item *domain.WishlistItem) error {
	for _, existing := range f.items {
		if existing.UserID == item.UserID && existing.GameID == item.GameID {
			return nil
		}
	}
	item.ID = f.nextID
	f.nextID++
	f.items = append(f.items, *item)
	return nil
}

func (f *fakeWishlistRepo) Remove(ctx context.Context, userID string, gameID int) error {
	for i, item := range f.items {
		if item.UserID == userID && item.GameID == gameID {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return domain.ErrGameNotFound
}

func (f *fakeWishlistRepo) ListByUser(ctx context.Context, userID string) ([]domain.WishlistItem, error) {
	var out []domain.WishlistItem
	for i := len(f.items) - 1; i >= 0; i-- {
		if f.items[i].UserID == userID {
			out = append(out, f.items[i])
		}
	}
	return out, nil
}

func (f *fakeWishlistRepo) Exists(ctx context.Context, userID string, gameID int) (bool, error) {
	for _, item := range f.items {
		if item.UserID == userID && item.GameID == gameID {
			return true, nil
		}
	}
	return false, nil
}

type fakeFetcher struct {
	descriptions map[int]string
	err          error
	calls        int
}

func (f *fakeFetcher) FetchDescription(ctx context.Context, gameID int) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.descriptions[gameID], nil
}
