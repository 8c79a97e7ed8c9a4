package db

import (
	"github.com/kyso8575/GameBuddy/internal/infrastructure/persistence/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func InitGorm(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	err = db.AutoMigrate(
		&model.GameModel{},
		&model.SessionModel{},
		&model.ReviewModel{},
		&model.WishlistModel{},
	)
	if err != nil {
		return nil, err
	}
	return db, nil
}
