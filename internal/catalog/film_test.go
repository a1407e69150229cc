package catalog

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFilmTruncatesLongTitle(t *testing.T) {
	long := strings.Repeat("A", 200)
	f, err := NewFilm(long, GenreSciFi, 10.0, 0)
	require.NoError(t, err)
	assert.Len(t, f.Title, MaxTitleLen)
	assert.Equal(t, strings.Repeat("A", MaxTitleLen), f.Title)
}

func TestNewFilmKeepsShortTitle(t *testing.T) {
	f, err := NewFilm("Laugh Track", GenreComedy, 28.0, 0)
	require.NoError(t, err)
	assert.Equal(t, "Laugh Track", f.Title)
	assert.NotEmpty(t, f.ID)
}

func TestNewFilmRejectsNegativePrice(t *testing.T) {
	_, err := NewFilm("X", GenreAction, -1.0, 0)
	assert.ErrorIs(t, err, ErrNegativePrice)
}

func TestNewFilmRejectsNegativeMinAge(t *testing.T) {
	_, err := NewFilm("X", GenreAction, 1.0, -3)
	assert.ErrorIs(t, err, ErrNegativeMinAge)
}

func TestParseGenre(t *testing.T) {
	g, err := ParseGenre("COMEDY")
	require.NoError(t, err)
	assert.Equal(t, GenreComedy, g)

	_, err = ParseGenre("WESTERN")
	assert.Error(t, err)
}

func TestCountersAreMonotonicUnderConcurrency(t *testing.T) {
	f, err := NewFilm("Busy", GenreDrama, 12.0, 0)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			f.AddView()
			f.AddSales(2)
		}()
	}
	wg.Wait()

	assert.Equal(t, uint64(50), f.Views())
	assert.Equal(t, uint64(100), f.Sales())
}

func TestAddSalesIgnoresNonPositive(t *testing.T) {
	f, err := NewFilm("Zero", GenreDrama, 12.0, 0)
	require.NoError(t, err)
	f.AddSales(0)
	f.AddSales(-4)
	assert.Equal(t, uint64(0), f.Sales())
}

func TestPopularityScore(t *testing.T) {
	f, err := NewFilm("Fresh", GenreAction, 20.0, 0)
	require.NoError(t, err)

	// Freshly created film scores only its freshness term: 100/60.
	assert.InDelta(t, 1.67, f.PopularityScore(f.CreatedAt), 0.01)

	f.AddSales(2)
	f.AddView()
	// 1 view / 10 + 2 sales * 5 + freshness.
	assert.InDelta(t, 0.1+10+1.67, f.PopularityScore(f.CreatedAt), 0.01)

	// Freshness decays with age.
	later := f.CreatedAt.Add(10 * time.Minute)
	assert.Less(t, f.PopularityScore(later), f.PopularityScore(f.CreatedAt))
}
