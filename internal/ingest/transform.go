package ingest

import (
	"github.com/kyso8575/GameBuddy/internal/domain"
)

// Transform shapes one raw payload into a catalog record. A payload without
// an upstream id cannot be deduplicated and is skipped (ok=false); missing
// nested fields simply become empty values.
func Transform(raw RawGame) (domain.Game, bool) {
	if raw.ID == 0 {
		return domain.Game{}, false
	}

	platforms := make([]string, 0, len(raw.Platforms))
	for _, p := range raw.Platforms {
		platforms = append(platforms, p.Platform.Name)
	}
	genres := make([]string, 0, len(raw.Genres))
	for _, g := range raw.Genres {
		genres = append(genres, g.Name)
	}
	stores := make([]string, 0, len(raw.Stores))
	for _, s := range raw.Stores {
		stores = append(stores, s.Store.Name)
	}
	screenshots := make([]string, 0, len(raw.ShortScreenshots))
	for _, s := range raw.ShortScreenshots {
		screenshots = append(screenshots, s.Image)
	}

	esrb := ""
	if raw.ESRBRating != nil {
		esrb = raw.ESRBRating.Name
	}

	return domain.Game{
		ID:              raw.ID,
		Name:            raw.Name,
		Released:        raw.Released,
		BackgroundImage: raw.BackgroundImage,
		Rating:          raw.Rating,
		MetacriticScore: raw.Metacritic,
		Playtime:        raw.Playtime,
		Platforms:       platforms,
		Genres:          genres,
		Stores:          stores,
		ESRBRating:      esrb,
		Screenshots:     screenshots,
	}, true
}
