package repository

import (
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/kyso8575/GameBuddy/internal/infrastructure/persistence/model"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	err = db.AutoMigrate(
		&model.GameModel{},
		&model.SessionModel{},
		&model.ReviewModel{},
		&model.WishlistModel{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}
