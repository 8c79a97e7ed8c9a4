package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"github.com/kyso8575/GameBuddy/config"
	"github.com/kyso8575/GameBuddy/internal/application"
	"github.com/kyso8575/GameBuddy/internal/domain"
	"github.com/kyso8575/GameBuddy/internal/handler"
	"github.com/kyso8575/GameBuddy/internal/infrastructure/cache"
	"github.com/kyso8575/GameBuddy/internal/infrastructure/persistence/db"
	"github.com/kyso8575/GameBuddy/internal/infrastructure/persistence/repository"
	"github.com/kyso8575/GameBuddy/internal/ingest"
	"github.com/kyso8575/GameBuddy/internal/middleware"
	"github.com/kyso8575/GameBuddy/internal/recommend"
	"github.com/kyso8575/GameBuddy/pkg/llm"
	"github.com/kyso8575/GameBuddy/pkg/llm/openai"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if cfg.LLM.APIKey == "" {
		log.Fatal("llm api key is not configured")
	}

	gormDB, err := db.InitGorm(cfg.Postgres.DSN())
	if err != nil {
		log.Fatalf("failed to init postgres: %v", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:         cfg.Redis.Addr(),
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.Database,
		DialTimeout:  cfg.Redis.DialTimeout,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
		PoolSize:     cfg.Redis.PoolSize,
	})

	games := repository.NewGameRepository(gormDB)
	sessions := repository.NewSessionRepository(gormDB)
	reviews := repository.NewReviewRepository(gormDB)
	wishlist := repository.NewWishlistRepository(gormDB)

	var sessionRepo domain.SessionRepository = sessions
	if sessionCache, err := cache.NewSessionCache(redisClient); err != nil {
		log.Printf("session cache unavailable, reads go straight to postgres: %v", err)
	} else {
		sessionRepo = cache.NewCachedSessionRepository(sessions, sessionCache)
	}

	provider := openai.New(&llm.Config{
		BaseURL:     cfg.LLM.BaseURL,
		APIKey:      cfg.LLM.APIKey,
		Model:       cfg.LLM.Model,
		MaxTokens:   cfg.LLM.MaxTokens,
		Temperature: float32(cfg.LLM.Temperature),
	})

	recommender, err := recommend.NewService(context.Background(), provider, games)
	if err != nil {
		log.Fatalf("failed to init recommender: %v", err)
	}

	rawgClient := ingest.NewClient(cfg.RAWG.BaseURL, cfg.RAWG.APIKey)

	catalogSvc := application.NewCatalogService(games, rawgClient)
	chatSvc := application.NewChatService(sessionRepo, recommender)
	reviewSvc := application.NewReviewService(reviews, games)
	wishlistSvc := application.NewWishlistService(wishlist, games)

	gameHandler := handler.NewGameHandler(catalogSvc)
	chatHandler := handler.NewChatHandler(chatSvc)
	reviewHandler := handler.NewReviewHandler(reviewSvc)
	wishlistHandler := handler.NewWishlistHandler(wishlistSvc)

	r := gin.Default()
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":    "healthy",
			"service":   cfg.ServerName,
			"timestamp": time.Now(),
		})
	})

	api := r.Group("/api")
	{
		api.GET("/vocabulary", gameHandler.Vocabulary)

		games := api.Group("/games")
		{
			games.POST("", gameHandler.ListGames)
			games.GET("/:id", gameHandler.GetGame)
			games.GET("/:id/reviews", reviewHandler.ListReviews)
			games.POST("/:id/reviews", middleware.RequireUser(), reviewHandler.CreateReview)
		}

		reviews := api.Group("/reviews")
		reviews.Use(middleware.RequireUser())
		{
			reviews.PUT("/:reviewId", reviewHandler.UpdateReview)
			reviews.DELETE("/:reviewId", reviewHandler.DeleteReview)
		}

		wishlist := api.Group("/wishlist")
		wishlist.Use(middleware.RequireUser())
		{
			wishlist.GET("", wishlistHandler.ListWishlist)
			wishlist.POST("", wishlistHandler.AddToWishlist)
			wishlist.DELETE("/:gameId", wishlistHandler.RemoveFromWishlist)
		}

		chat := api.Group("/chat")
		chat.Use(middleware.RequireUser())
		chat.Use(middleware.RateLimit(redisClient, cfg.Redis.RateLimitQPS))
		{
			chat.POST("/sessions", chatHandler.StartSession)
			chat.GET("/sessions", chatHandler.ListSessions)
			chat.GET("/sessions/:sessionId", chatHandler.GetSession)
			chat.POST("/sessions/:sessionId/messages", chatHandler.ProcessMessage)
			chat.POST("/sessions/:sessionId/chat", chatHandler.ContinueSession)
		}
	}

	log.Printf("%s listening on :%d", cfg.ServerName, cfg.Port)
	log.Fatal(r.Run(fmt.Sprintf(":%d", cfg.Port)))
}
