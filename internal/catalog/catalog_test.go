package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogAddAndGet(t *testing.T) {
	cat := NewCatalog()
	f, err := NewFilm("After Hours", GenreDrama, 30.0, 16)
	require.NoError(t, err)

	require.NoError(t, cat.Add(f))
	got, err := cat.Get(f.ID)
	require.NoError(t, err)
	assert.Same(t, f, got)
}

func TestCatalogRejectsDuplicateID(t *testing.T) {
	cat := NewCatalog()
	f, err := NewFilm("Twice", GenreComedy, 10.0, 0)
	require.NoError(t, err)

	require.NoError(t, cat.Add(f))
	assert.ErrorIs(t, cat.Add(f), ErrDuplicateFilm)
}

func TestCatalogGetUnknown(t *testing.T) {
	cat := NewCatalog()
	_, err := cat.Get("nope")
	assert.ErrorIs(t, err, ErrFilmNotFound)
}

func TestCatalogListIsStable(t *testing.T) {
	cat := NewCatalog()
	var films []*Film
	for _, title := range []string{"one", "two", "three"} {
		f, err := NewFilm(title, GenreAction, 5.0, 0)
		require.NoError(t, err)
		require.NoError(t, cat.Add(f))
		films = append(films, f)
	}

	first := cat.List()
	second := cat.List()
	require.Len(t, first, 3)
	assert.Equal(t, first, second)
}
