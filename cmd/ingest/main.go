package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/kyso8575/GameBuddy/config"
	"github.com/kyso8575/GameBuddy/internal/infrastructure/persistence/db"
	"github.com/kyso8575/GameBuddy/internal/infrastructure/persistence/repository"
	"github.com/kyso8575/GameBuddy/internal/ingest"
)

func main() {
	maxPages := flag.Int("max-pages", 1000, "number of catalog pages to fetch")
	workers := flag.Int("workers", 10, "concurrent page fetchers")
	batchSize := flag.Int("batch-size", 100, "games per database batch")
	startPage := flag.Int("start-page", 1, "first page to fetch")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if cfg.RAWG.APIKey == "" {
		log.Fatal("rawg api key is not configured")
	}

	gormDB, err := db.InitGorm(cfg.Postgres.DSN())
	if err != nil {
		log.Fatalf("failed to init postgres: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := ingest.NewClient(cfg.RAWG.BaseURL, cfg.RAWG.APIKey)
	games := repository.NewGameRepository(gormDB)
	runner := ingest.NewRunner(client, games)

	summary, err := runner.Run(ctx, ingest.Options{
		MaxPages:  *maxPages,
		Workers:   *workers,
		BatchSize: *batchSize,
		StartPage: *startPage,
	})
	if err != nil {
		log.Fatalf("ingestion failed: %v", err)
	}

	log.Printf("ingestion done: %d games saved across %d pages in %s",
		summary.SavedCount, summary.PagesProcessed, summary.Elapsed)
}
