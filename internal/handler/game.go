package handler

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/kyso8575/GameBuddy/internal/application"
	"github.com/kyso8575/GameBuddy/internal/domain"
)

type GameHandler struct {
	catalog *application.CatalogService
}

func NewGameHandler(catalog *application.CatalogService) *GameHandler {
	return &GameHandler{catalog: catalog}
}

// ListGames 过滤目录. The filter criteria arrive as a JSON body; an empty
// body lists the whole ranked catalog.
func (h *GameHandler) ListGames(c *gin.Context) {
	var req struct {
		Genres      []string `json:"genres"`
		Platforms   []string `json:"platforms"`
		Stores      []string `json:"stores"`
		ESRBRatings []string `json:"esrb_ratings"`
		Search      string   `json:"search"`
		Page        int      `json:"page"`
		PageSize    int      `json:"page_size"`
	}
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid filter payload"})
		return
	}

	page, err := h.catalog.Search(c.Request.Context(), domain.FilterCriteria{
		Genres:      req.Genres,
		Platforms:   req.Platforms,
		Stores:      req.Stores,
		ESRBRatings: req.ESRBRatings,
		Search:      req.Search,
		Page:        req.Page,
		PageSize:    req.PageSize,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to search games"})
		return
	}

	games := make([]gin.H, len(page.Games))
	for i := range page.Games {
		games[i] = gameJSON(&page.Games[i])
	}
	c.JSON(http.StatusOK, gin.H{
		"games":        games,
		"total_items":  page.TotalItems,
		"total_pages":  page.TotalPages,
		"current_page": page.CurrentPage,
	})
}

// GetGame 游戏详情, lazily enriching the description on first read.
func (h *GameHandler) GetGame(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid game id"})
		return
	}

	game, err := h.catalog.GetGame(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrGameNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Game not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load game"})
		return
	}

	body := gameJSON(game)
	body["description"] = game.Description
	body["screenshots"] = game.Screenshots
	c.JSON(http.StatusOK, body)
}

func (h *GameHandler) Vocabulary(c *gin.Context) {
	vocab, err := h.catalog.Vocabulary(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load vocabulary"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"genres":       vocab.Genres,
		"platforms":    vocab.Platforms,
		"stores":       vocab.Stores,
		"esrb_ratings": vocab.ESRBRatings,
	})
}

func gameJSON(g *domain.Game) gin.H {
	return gin.H{
		"id":               g.ID,
		"name":             g.Name,
		"released":         g.Released,
		"background_image": g.BackgroundImage,
		"rating":           g.Rating,
		"metacritic_score": g.MetacriticScore,
		"playtime":         g.Playtime,
		"platforms":        g.Platforms,
		"genres":           g.Genres,
		"stores":           g.Stores,
		"esrb_rating":      g.ESRBRating,
	}
}
