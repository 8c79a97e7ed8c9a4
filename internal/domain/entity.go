package domain

import (
	"time"
)

type Role string

const (
	RoleUser Role = "user"
	RoleBot  Role = "bot"
)

func (r Role) String() string {
	return string(r)
}

// Game 核心游戏实体. ID is the upstream RAWG catalog id and doubles as the
// dedup key: ingestion never inserts a second row for the same id.
type Game struct {
	ID              int
	Name            string
	Released        string
	BackgroundImage string
	Rating          float64
	MetacriticScore int
	Playtime        int
	Platforms       []string
	Genres          []string
	Stores          []string
	ESRBRating      string
	Description     string
	Screenshots     []string
}

// FilterCriteria describes one catalog query. A nil/empty slice or empty
// string means "no constraint on this dimension"; Page and PageSize fall back
// to per-surface defaults when <= 0.
type FilterCriteria struct {
	Genres      []string
	Platforms   []string
	Stores      []string
	ESRBRatings []string
	Search      string
	Page        int
	PageSize    int
}

// GamePage 分页结果
type GamePage struct {
	Games       []Game
	TotalItems  int
	TotalPages  int
	CurrentPage int
}

// Vocabulary is the closed set of values the recommendation pipeline may
// extract from free text. Snapshotted once from the catalog store.
type Vocabulary struct {
	Genres      []string
	Platforms   []string
	Stores      []string
	ESRBRatings []string
}

// Message is a single chat utterance.
type Message struct {
	Role    Role
	Content string
}

// ChatSession 会话聚合根. Messages is append-only: a user message and the
// bot reply are appended as a pair, never rewritten.
type ChatSession struct {
	SessionID string
	UserID    string
	Messages  []Message
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Append adds one user/bot exchange to the session log.
func (s *ChatSession) Append(userText, botText string) {
	s.Messages = append(s.Messages,
		Message{Role: RoleUser, Content: userText},
		Message{Role: RoleBot, Content: botText},
	)
}

// Review 游戏评论. One review per (UserID, GameID).
type Review struct {
	ID        uint
	UserID    string
	GameID    int
	Rating    int
	Body      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ReviewPage carries one page of reviews plus the average rating over the
// whole filtered set, not just the page.
type ReviewPage struct {
	Reviews       []Review
	TotalItems    int
	TotalPages    int
	CurrentPage   int
	PageSize      int
	AverageRating float64
}

// WishlistItem 心愿单条目
type WishlistItem struct {
	ID        uint
	UserID    string
	GameID    int
	CreatedAt time.Time
}
