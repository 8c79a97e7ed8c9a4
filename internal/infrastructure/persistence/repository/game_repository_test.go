package repository

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/kyso8575/GameBuddy/internal/domain"
)

func seedGames(t *testing.T, repo *GameRepository, games []domain.Game) {
	t.Helper()
	if _, err := repo.SaveBatch(context.Background(), games); err != nil {
		t.Fatalf("seed: %v", err)
	}
}

func TestGameRepositoryListRankedOrder(t *testing.T) {
	repo := NewGameRepository(openTestDB(t))
	seedGames(t, repo, []domain.Game{
		{ID: 10, Name: "Unscored", MetacriticScore: 0},
		{ID: 3, Name: "Mid", MetacriticScore: 80},
		{ID: 7, Name: "Top", MetacriticScore: 95},
		{ID: 5, Name: "Mid Twin", MetacriticScore: 80},
	})

	games, err := repo.ListRanked(context.Background())
	if err != nil {
		t.Fatalf("ListRanked: %v", err)
	}
	got := make([]int, len(games))
	for i, g := range games {
		got[i] = g.ID
	}
	want := []int{7, 3, 5, 10}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ranked ids = %v, want %v", got, want)
	}
}

func TestGameRepositorySaveBatchSkipsExisting(t *testing.T) {
	repo := NewGameRepository(openTestDB(t))
	first := []domain.Game{
		{ID: 1, Name: "Hades"},
		{ID: 2, Name: "Celeste"},
	}
	saved, err := repo.SaveBatch(context.Background(), first)
	if err != nil {
		t.Fatalf("SaveBatch: %v", err)
	}
	if saved != 2 {
		t.Fatalf("saved = %d, want 2", saved)
	}

	second := []domain.Game{
		{ID: 2, Name: "Celeste Renamed"},
		{ID: 3, Name: "Hollow Knight"},
	}
	saved, err = repo.SaveBatch(context.Background(), second)
	if err != nil {
		t.Fatalf("SaveBatch: %v", err)
	}
	if saved != 1 {
		t.Fatalf("saved = %d, want 1", saved)
	}

	// The existing row keeps its original name.
	g, err := repo.FindByID(context.Background(), 2)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if g.Name != "Celeste" {
		t.Fatalf("name = %q, want %q", g.Name, "Celeste")
	}

	count, err := repo.Count(context.Background())
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != 3 {
		t.Fatalf("count = %d, want 3", count)
	}
}

func TestGameRepositoryFindByIDRoundTrip(t *testing.T) {
	repo := NewGameRepository(openTestDB(t))
	game := domain.Game{
		ID:              42,
		Name:            "DOOM Eternal",
		Released:        "2020-03-20",
		BackgroundImage: "https://example.com/doom.jpg",
		Rating:          4.4,
		MetacriticScore: 88,
		Playtime:        14,
		Platforms:       []string{"PC", "PlayStation 4"},
		Genres:          []string{"Action", "Shooter"},
		Stores:          []string{"Steam", "Epic Games"},
		ESRBRating:      "Mature",
		Screenshots:     []string{"https://example.com/s1.jpg"},
	}
	seedGames(t, repo, []domain.Game{game})

	got, err := repo.FindByID(context.Background(), 42)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if !reflect.DeepEqual(*got, game) {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", *got, game)
	}
}

func TestGameRepositoryFindByIDNotFound(t *testing.T) {
	repo := NewGameRepository(openTestDB(t))
	_, err := repo.FindByID(context.Background(), 999)
	if !errors.Is(err, domain.ErrGameNotFound) {
		t.Fatalf("err = %v, want ErrGameNotFound", err)
	}
}

func TestGameRepositoryExistsByID(t *testing.T) {
	repo := NewGameRepository(openTestDB(t))
	seedGames(t, repo, []domain.Game{{ID: 1, Name: "Hades"}})

	exists, err := repo.ExistsByID(context.Background(), 1)
	if err != nil || !exists {
		t.Fatalf("ExistsByID(1) = %v, %v; want true, nil", exists, err)
	}
	exists, err = repo.ExistsByID(context.Background(), 2)
	if err != nil || exists {
		t.Fatalf("ExistsByID(2) = %v, %v; want false, nil", exists, err)
	}
}

func TestGameRepositoryUpdateDescription(t *testing.T) {
	repo := NewGameRepository(openTestDB(t))
	seedGames(t, repo, []domain.Game{{ID: 1, Name: "Hades"}})

	if err := repo.UpdateDescription(context.Background(), 1, "Roguelike dungeon crawler."); err != nil {
		t.Fatalf("UpdateDescription: %v", err)
	}
	g, err := repo.FindByID(context.Background(), 1)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if g.Description != "Roguelike dungeon crawler." {
		t.Fatalf("description = %q", g.Description)
	}

	err = repo.UpdateDescription(context.Background(), 404, "x")
	if !errors.Is(err, domain.ErrGameNotFound) {
		t.Fatalf("err = %v, want ErrGameNotFound", err)
	}
}

func TestGameRepositoryDistinctValues(t *testing.T) {
	repo := NewGameRepository(openTestDB(t))
	seedGames(t, repo, []domain.Game{
		{ID: 1, Name: "A", Genres: []string{"Action", "Indie"}, Platforms: []string{"PC"}, Stores: []string{"Steam"}, ESRBRating: "Teen"},
		{ID: 2, Name: "B", Genres: []string{"Indie"}, Platforms: []string{"PC", "Nintendo Switch"}, Stores: []string{"Steam", "GOG"}, ESRBRating: "Everyone"},
		{ID: 3, Name: "C"},
	})

	vocab, err := repo.DistinctValues(context.Background())
	if err != nil {
		t.Fatalf("DistinctValues: %v", err)
	}
	if want := []string{"Action", "Indie"}; !reflect.DeepEqual(vocab.Genres, want) {
		t.Errorf("genres = %v, want %v", vocab.Genres, want)
	}
	if want := []string{"Nintendo Switch", "PC"}; !reflect.DeepEqual(vocab.Platforms, want) {
		t.Errorf("platforms = %v, want %v", vocab.Platforms, want)
	}
	if want := []string{"GOG", "Steam"}; !reflect.DeepEqual(vocab.Stores, want) {
		t.Errorf("stores = %v, want %v", vocab.Stores, want)
	}
	if want := []string{"Everyone", "Teen"}; !reflect.DeepEqual(vocab.ESRBRatings, want) {
		t.Errorf("esrb = %v, want %v", vocab.ESRBRatings, want)
	}
}
