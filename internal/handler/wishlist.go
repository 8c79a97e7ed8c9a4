package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/kyso8575/GameBuddy/internal/application"
	"github.com/kyso8575/GameBuddy/internal/domain"
)

type WishlistHandler struct {
	wishlist *application.WishlistService
}

func NewWishlistHandler(wishlist *application.WishlistService) *WishlistHandler {
	return &WishlistHandler{wishlist: wishlist}
}

// AddToWishlist 幂等
func (h *WishlistHandler) AddToWishlist(c *gin.Context) {
	userID := c.GetString("user_id")

	var req struct {
		GameID int `json:"game_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "game_id is required"})
		return
	}

	item, err := h.wishlist.Add(c.Request.Context(), userID, req.GameID)
	if err != nil {
		if errors.Is(err, domain.ErrGameNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Game not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add to wishlist"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"game_id":    item.GameID,
		"created_at": item.CreatedAt,
	})
}

func (h *WishlistHandler) RemoveFromWishlist(c *gin.Context) {
	userID := c.GetString("user_id")
	gameID, err := strconv.Atoi(c.Param("gameId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid game id"})
		return
	}

	if err := h.wishlist.Remove(c.Request.Context(), userID, gameID); err != nil {
		if errors.Is(err, domain.ErrGameNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Game not on wishlist"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove from wishlist"})
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *WishlistHandler) ListWishlist(c *gin.Context) {
	userID := c.GetString("user_id")

	games, err := h.wishlist.List(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list wishlist"})
		return
	}

	out := make([]gin.H, len(games))
	for i := range games {
		out[i] = gameJSON(&games[i])
	}
	c.JSON(http.StatusOK, gin.H{"games": out})
}
