// Package catalog implements the filter engine: it turns FilterCriteria into
// a predicate over game records and returns ranked, paginated results.
//
// Filter semantics follow the catalog query surface: the search term is a
// case-insensitive substring match on name; genres and stores match when any
// requested value is contained (case-insensitive substring) in a stored value;
// platforms match when any requested value equals a stored value
// (case-insensitive); ESRB ratings are exact-match-in-set. Dimensions combine
// with AND, values within a dimension with OR.
package catalog

import (
	"sort"
	"strings"

	"github.com/kyso8575/GameBuddy/internal/domain"
)

const (
	// DefaultPage is used when criteria carry no page number.
	DefaultPage = 1
	// DefaultPageSize is the catalog-browsing page size.
	DefaultPageSize = 50
)

// Rank orders games by metacritic score descending with zero/unknown scores
// last; ties keep id order. The sort is stable so repeated ranking of the
// same slice is idempotent.
func Rank(games []domain.Game) {
	sort.SliceStable(games, func(i, j int) bool {
		gi, gj := games[i], games[j]
		if (gi.MetacriticScore > 0) != (gj.MetacriticScore > 0) {
			return gi.MetacriticScore > 0
		}
		if gi.MetacriticScore != gj.MetacriticScore {
			return gi.MetacriticScore > gj.MetacriticScore
		}
		return gi.ID < gj.ID
	})
}

// Matches reports whether a single game satisfies every constrained dimension
// of the criteria.
func Matches(g domain.Game, c domain.FilterCriteria) bool {
	if c.Search != "" && !strings.Contains(strings.ToLower(g.Name), strings.ToLower(c.Search)) {
		return false
	}
	if len(c.Genres) > 0 && !containsAnySubstring(g.Genres, c.Genres) {
		return false
	}
	if len(c.Platforms) > 0 && !containsAnyValue(g.Platforms, c.Platforms) {
		return false
	}
	if len(c.Stores) > 0 && !containsAnySubstring(g.Stores, c.Stores) {
		return false
	}
	if len(c.ESRBRatings) > 0 && !inSet(g.ESRBRating, c.ESRBRatings) {
		return false
	}
	return true
}

// Search filters, ranks, and pages the given records. An empty matching set
// yields an empty page with TotalPages 0; the same ceil policy applies to
// every listing surface.
func Search(games []domain.Game, c domain.FilterCriteria) domain.GamePage {
	matched := make([]domain.Game, 0, len(games))
	for _, g := range games {
		if Matches(g, c) {
			matched = append(matched, g)
		}
	}
	Rank(matched)

	page := c.Page
	if page < 1 {
		page = DefaultPage
	}
	size := c.PageSize
	if size < 1 {
		size = DefaultPageSize
	}

	total := len(matched)
	start := (page - 1) * size
	end := start + size
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return domain.GamePage{
		Games:       matched[start:end],
		TotalItems:  total,
		TotalPages:  TotalPages(total, size),
		CurrentPage: page,
	}
}

// Top returns the first n matches by rank, ignoring pagination. Used by the
// recommendation pipeline to cut the candidate list to three.
func Top(games []domain.Game, c domain.FilterCriteria, n int) []domain.Game {
	matched := make([]domain.Game, 0, len(games))
	for _, g := range games {
		if Matches(g, c) {
			matched = append(matched, g)
		}
	}
	Rank(matched)
	if len(matched) > n {
		matched = matched[:n]
	}
	return matched
}

// TotalPages computes ceil(total/size) without floating point. Zero items
// means zero pages.
func TotalPages(total, size int) int {
	if size < 1 {
		return 0
	}
	return (total + size - 1) / size
}

func containsAnySubstring(values, wanted []string) bool {
	for _, w := range wanted {
		lw := strings.ToLower(w)
		for _, v := range values {
			if strings.Contains(strings.ToLower(v), lw) {
				return true
			}
		}
	}
	return false
}

func containsAnyValue(values, wanted []string) bool {
	for _, w := range wanted {
		for _, v := range values {
			if strings.EqualFold(v, w) {
				return true
			}
		}
	}
	return false
}

func inSet(value string, set []string) bool {
	for _, s := range set {
		if value == s {
			return true
		}
	}
	return false
}
