package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/kyso8575/GameBuddy/internal/application"
	"github.com/kyso8575/GameBuddy/internal/domain"
)

type ReviewHandler struct {
	reviews *application.ReviewService
}

func NewReviewHandler(reviews *application.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviews: reviews}
}

// CreateReview 每个用户每个游戏一条
func (h *ReviewHandler) CreateReview(c *gin.Context) {
	userID := c.GetString("user_id")
	gameID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid game id"})
		return
	}

	var req struct {
		Rating int    `json:"rating" binding:"required"`
		Body   string `json:"body"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Rating is required"})
		return
	}

	review, err := h.reviews.Create(c.Request.Context(), userID, gameID, req.Rating, req.Body)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrGameNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Game not found"})
		case errors.Is(err, domain.ErrDuplicateReview):
			c.JSON(http.StatusConflict, gin.H{"error": "Review already exists for this game"})
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusCreated, reviewJSON(review))
}

// ListReviews 分页 + 平均分
func (h *ReviewHandler) ListReviews(c *gin.Context) {
	gameID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid game id"})
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))

	result, err := h.reviews.ListByGame(c.Request.Context(), gameID, page)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list reviews"})
		return
	}

	reviews := make([]gin.H, len(result.Reviews))
	for i := range result.Reviews {
		reviews[i] = reviewJSON(&result.Reviews[i])
	}
	c.JSON(http.StatusOK, gin.H{
		"reviews":        reviews,
		"total_items":    result.TotalItems,
		"total_pages":    result.TotalPages,
		"current_page":   result.CurrentPage,
		"average_rating": result.AverageRating,
	})
}

func (h *ReviewHandler) UpdateReview(c *gin.Context) {
	userID := c.GetString("user_id")
	reviewID, err := strconv.ParseUint(c.Param("reviewId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid review id"})
		return
	}

	var req struct {
		Rating int    `json:"rating" binding:"required"`
		Body   string `json:"body"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Rating is required"})
		return
	}

	review, err := h.reviews.Update(c.Request.Context(), userID, uint(reviewID), req.Rating, req.Body)
	if err != nil {
		if errors.Is(err, domain.ErrReviewNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Review not found"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, reviewJSON(review))
}

func (h *ReviewHandler) DeleteReview(c *gin.Context) {
	userID := c.GetString("user_id")
	reviewID, err := strconv.ParseUint(c.Param("reviewId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid review id"})
		return
	}

	if err := h.reviews.Delete(c.Request.Context(), userID, uint(reviewID)); err != nil {
		if errors.Is(err, domain.ErrReviewNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Review not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete review"})
		return
	}

	c.Status(http.StatusNoContent)
}

func reviewJSON(r *domain.Review) gin.H {
	return gin.H{
		"id":         r.ID,
		"user_id":    r.UserID,
		"game_id":    r.GameID,
		"rating":     r.Rating,
		"body":       r.Body,
		"created_at": r.CreatedAt,
		"updated_at": r.UpdatedAt,
	}
}
