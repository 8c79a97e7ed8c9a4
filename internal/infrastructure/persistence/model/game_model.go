package model

import (
	"github.com/kyso8575/GameBuddy/internal/domain"
)

// GameModel mirrors the games table. The primary key is the upstream RAWG id
// and is never auto-generated.
type GameModel struct {
	ID              int     `gorm:"primaryKey;autoIncrement:false;column:id"`
	Name            string  `gorm:"size:255;not null;column:name"`
	Released        string  `gorm:"size:32;column:released"`
	BackgroundImage string  `gorm:"type:text;column:background_image"`
	Rating          float64 `gorm:"column:rating"`
	MetacriticScore int     `gorm:"index;column:metacritic_score"`
	Playtime        int     `gorm:"column:playtime"`
	Platforms       *string `gorm:"type:text;column:platforms"`
	Genres          *string `gorm:"type:text;column:genres"`
	Stores          string  `gorm:"size:255;column:stores"`
	ESRBRating      string  `gorm:"size:255;column:esrb_rating"`
	Description     string  `gorm:"type:text;column:description"`
	Screenshots     *string `gorm:"type:text;column:screenshots"`
}

func (GameModel) TableName() string {
	return "games"
}

func (m *GameModel) ToDomain() (*domain.Game, error) {
	platforms, err := decodeList(m.Platforms)
	if err != nil {
		return nil, err
	}
	genres, err := decodeList(m.Genres)
	if err != nil {
		return nil, err
	}
	screenshots, err := decodeList(m.Screenshots)
	if err != nil {
		return nil, err
	}
	return &domain.Game{
		ID:              m.ID,
		Name:            m.Name,
		Released:        m.Released,
		BackgroundImage: m.BackgroundImage,
		Rating:          m.Rating,
		MetacriticScore: m.MetacriticScore,
		Playtime:        m.Playtime,
		Platforms:       platforms,
		Genres:          genres,
		Stores:          decodeCSV(m.Stores),
		ESRBRating:      m.ESRBRating,
		Description:     m.Description,
		Screenshots:     screenshots,
	}, nil
}

func ToGameModel(d *domain.Game) (*GameModel, error) {
	platforms, err := encodeList(d.Platforms)
	if err != nil {
		return nil, err
	}
	genres, err := encodeList(d.Genres)
	if err != nil {
		return nil, err
	}
	screenshots, err := encodeList(d.Screenshots)
	if err != nil {
		return nil, err
	}
	return &GameModel{
		ID:              d.ID,
		Name:            d.Name,
		Released:        d.Released,
		BackgroundImage: d.BackgroundImage,
		Rating:          d.Rating,
		MetacriticScore: d.MetacriticScore,
		Playtime:        d.Playtime,
		Platforms:       platforms,
		Genres:          genres,
		Stores:          encodeCSV(d.Stores),
		ESRBRating:      d.ESRBRating,
		Description:     d.Description,
		Screenshots:     screenshots,
	}, nil
}
