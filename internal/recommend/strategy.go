// Package recommend ranks the catalog for display. Strategies are
// mutually exclusive and swappable at runtime; returning a film from a
// strategy counts as showing it to the user, so the film's view
// counter is incremented as part of the contract.
package recommend

import (
	"sort"
	"time"

	"github.com/iliyamo/cinema-box-office/internal/catalog"
)

// Strategy orders films for presentation and returns at most limit of
// them. Implementations must be order-stable: films with equal scores
// keep their input order.
type Strategy interface {
	Name() string
	Recommend(films []*catalog.Film, limit int) []*catalog.Film
}

// Popularity ranks the whole catalog by popularity score.
type Popularity struct{}

func (Popularity) Name() string { return "popularity" }

func (Popularity) Recommend(films []*catalog.Film, limit int) []*catalog.Film {
	return rankByPopularity(films, limit)
}

// ByGenre keeps only films of one genre, then ranks like Popularity.
type ByGenre struct {
	Genre catalog.Genre
}

func (s ByGenre) Name() string { return "genre:" + string(s.Genre) }

func (s ByGenre) Recommend(films []*catalog.Film, limit int) []*catalog.Film {
	filtered := make([]*catalog.Film, 0, len(films))
	for _, f := range films {
		if f.Genre == s.Genre {
			filtered = append(filtered, f)
		}
	}
	return rankByPopularity(filtered, limit)
}

// rankByPopularity sorts descending by popularity score and returns
// the top entries, bumping each returned film's view counter. Scores
// are computed once up front so one timestamp covers the whole sort.
func rankByPopularity(films []*catalog.Film, limit int) []*catalog.Film {
	if limit < 0 {
		limit = 0
	}
	now := time.Now()
	type scored struct {
		film  *catalog.Film
		score float64
	}
	ranked := make([]scored, 0, len(films))
	for _, f := range films {
		ranked = append(ranked, scored{film: f, score: f.PopularityScore(now)})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})
	if limit > len(ranked) {
		limit = len(ranked)
	}
	top := make([]*catalog.Film, 0, limit)
	for _, r := range ranked[:limit] {
		r.film.AddView()
		top = append(top, r.film)
	}
	return top
}
