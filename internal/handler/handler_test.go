package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/kyso8575/GameBuddy/internal/application"
	"github.com/kyso8575/GameBuddy/internal/domain"
	"github.com/kyso8575/GameBuddy/internal/middleware"
)

type stubGameRepo struct {
	games map[int]domain.Game
}

func (s *stubGameRepo) ListRanked(ctx context.Context) ([]domain.Game, error) {
	out := make([]domain.Game, 0, len(s.games))
	for _, g := range s.games {
		out = append(out, g)
	}
	return out, nil
}

func (s *stubGameRepo) FindByID(ctx context.Context, id int) (*domain.Game, error) {
	g, ok := s.games[id]
	if !ok {
		return nil, domain.ErrGameNotFound
	}
	return &g, nil
}

func (s *stubGameRepo) ExistsByID(ctx context.Context, id int) (bool, error) {
	_, ok := s.games[id]
	return ok, nil
}

func (s *stubGameRepo) SaveBatch(ctx context.Context, games []domain.Game) (int, error) {
	return 0, nil
}

func (s *stubGameRepo) UpdateDescription(ctx context.Context, id int, description string) error {
	return nil
}

func (s *stubGameRepo) DistinctValues(ctx context.Context) (*domain.Vocabulary, error) {
	return &domain.Vocabulary{Genres: []string{"Action"}}, nil
}

func (s *stubGameRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(s.games)), nil
}

type stubSessionRepo struct {
	sessions map[string]*domain.ChatSession
}

func (s *stubSessionRepo) Save(ctx context.Context, session *domain.ChatSession) error {
	s.sessions[session.SessionID] = session
	return nil
}

func (s *stubSessionRepo) FindByID(ctx context.Context, sessionID, userID string) (*domain.ChatSession, error) {
	sess, ok := s.sessions[sessionID]
	if !ok || sess.UserID != userID {
		return nil, domain.ErrSessionNotFound
	}
	return sess, nil
}

func (s *stubSessionRepo) FindByUserID(ctx context.Context, userID string, limit, offset int) ([]*domain.ChatSession, error) {
	var out []*domain.ChatSession
	for _, sess := range s.sessions {
		if sess.UserID == userID {
			out = append(out, sess)
		}
	}
	return out, nil
}

type stubRecommender struct{}

func (stubRecommender) Recommend(ctx context.Context, userText string) (string, error) {
	return "추천: Hades", nil
}

func (stubRecommender) ContinueChat(ctx context.Context, history []domain.Message, userText string) (string, error) {
	return "자유 응답", nil
}

type stubReviewRepo struct {
	byID   map[uint]*domain.Review
	nextID uint
}

func (s *stubReviewRepo) Create(ctx context.Context, review *domain.Review) error {
	s.nextID++
	review.ID = s.nextID
	s.byID[review.ID] = review
	return nil
}

func (s *stubReviewRepo) FindByID(ctx context.Context, id uint) (*domain.Review, error) {
	r, ok := s.byID[id]
	if !ok {
		return nil, domain.ErrReviewNotFound
	}
	return r, nil
}

func (s *stubReviewRepo) FindByUserAndGame(ctx context.Context, userID string, gameID int) (*domain.Review, error) {
	for _, r := range s.byID {
		if r.UserID == userID && r.GameID == gameID {
			return r, nil
		}
	}
	return nil, domain.ErrReviewNotFound
}

func (s *stubReviewRepo) ListByGame(ctx context.Context, gameID int, limit, offset int) ([]domain.Review, int, float64, error) {
	return nil, 0, 0, nil
}

func (s *stubReviewRepo) Update(ctx context.Context, review *domain.Review) error {
	return nil
}

func (s *stubReviewRepo) Delete(ctx context.Context, id uint) error {
	return nil
}

func testRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	games := &stubGameRepo{games: map[int]domain.Game{
		10: {ID: 10, Name: "Hades", Genres: []string{"Action"}, MetacriticScore: 93},
	}}
	sessions := &stubSessionRepo{sessions: map[string]*domain.ChatSession{}}
	reviews := &stubReviewRepo{byID: map[uint]*domain.Review{}}

	gameHandler := NewGameHandler(application.NewCatalogService(games, nil))
	chatHandler := NewChatHandler(application.NewChatService(sessions, stubRecommender{}))
	reviewHandler := NewReviewHandler(application.NewReviewService(reviews, games))

	r := gin.New()
	api := r.Group("/api")
	api.POST("/games", gameHandler.ListGames)
	api.GET("/games/:id", gameHandler.GetGame)
	api.POST("/games/:id/reviews", middleware.RequireUser(), reviewHandler.CreateReview)
	chat := api.Group("/chat", middleware.RequireUser())
	chat.POST("/sessions", chatHandler.StartSession)
	chat.GET("/sessions/:sessionId", chatHandler.GetSession)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, user string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if user != "" {
		req.Header.Set("X-User-ID", user)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestListGamesEmptyBody(t *testing.T) {
	r := testRouter()
	w := doJSON(t, r, http.MethodPost, "/api/games", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	var resp struct {
		Games      []map[string]any `json:"games"`
		TotalItems int              `json:"total_items"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.TotalItems != 1 || len(resp.Games) != 1 {
		t.Fatalf("resp = %+v", resp)
	}
}

func TestGetGameNotFound(t *testing.T) {
	r := testRouter()
	w := doJSON(t, r, http.MethodGet, "/api/games/404", "", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestChatRequiresUser(t *testing.T) {
	r := testRouter()
	w := doJSON(t, r, http.MethodPost, "/api/chat/sessions", "", map[string]string{"message": "hi"})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestStartSessionReturnsReply(t *testing.T) {
	r := testRouter()
	w := doJSON(t, r, http.MethodPost, "/api/chat/sessions", "user-1", map[string]string{"message": "액션 게임 추천해줘"})
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	var resp struct {
		SessionID string `json:"session_id"`
		Reply     string `json:"reply"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.SessionID == "" || resp.Reply != "추천: Hades" {
		t.Fatalf("resp = %+v", resp)
	}

	// The session is readable back by its owner but not by others.
	w = doJSON(t, r, http.MethodGet, "/api/chat/sessions/"+resp.SessionID, "user-1", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("owner read status = %d", w.Code)
	}
	w = doJSON(t, r, http.MethodGet, "/api/chat/sessions/"+resp.SessionID, "user-2", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("foreign read status = %d, want 404", w.Code)
	}
}

func TestCreateReviewDuplicate(t *testing.T) {
	r := testRouter()
	body := map[string]any{"rating": 4, "body": "great"}
	w := doJSON(t, r, http.MethodPost, "/api/games/10/reviews", "user-1", body)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	w = doJSON(t, r, http.MethodPost, "/api/games/10/reviews", "user-1", body)
	if w.Code != http.StatusConflict {
		t.Fatalf("duplicate status = %d, want 409", w.Code)
	}
}
