// Package catalog holds the film registry and the Film entity itself.
// Films are append-only within a session: once added they are never
// removed, and the only mutation allowed on a Film is incrementing its
// view and sale counters through the dedicated methods.
package catalog

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"go.uber.org/atomic"
)

// Genre is an enumerated tag describing the kind of film.
type Genre string

const (
	GenreAction Genre = "ACTION"
	GenreDrama  Genre = "DRAMA"
	GenreComedy Genre = "COMEDY"
	GenreSciFi  Genre = "SCIFI"
)

// ParseGenre maps a request string onto a known Genre. Unknown values
// are rejected so that typos do not silently create new genres.
func ParseGenre(s string) (Genre, error) {
	switch Genre(s) {
	case GenreAction, GenreDrama, GenreComedy, GenreSciFi:
		return Genre(s), nil
	}
	return "", fmt.Errorf("unknown genre %q", s)
}

// MaxTitleLen is the longest title the catalog stores. Longer input is
// truncated, not rejected.
const MaxTitleLen = 45

// ErrNegativePrice is returned by NewFilm when the base price is below zero.
var ErrNegativePrice = errors.New("base price must not be negative")

// ErrNegativeMinAge is returned by NewFilm when the age limit is below zero.
var ErrNegativeMinAge = errors.New("minimum age must not be negative")

// Film is a title screened by the cinema.
//
// Fields:
//  ID        - opaque identifier assigned at construction.
//  Title     - display title, at most MaxTitleLen characters.
//  Genre     - enumerated genre tag.
//  BasePrice - ticket price before any pricing stage, never negative.
//  MinAge    - minimum buyer age, 0 means unrestricted.
//  CreatedAt - when the film entered the catalog; feeds the freshness
//              part of the popularity score.
//
// The view and sale counters are private and atomic: recommendation
// strategies and the purchase flow increment them from concurrent
// goroutines without any surrounding lock.
type Film struct {
	ID        string
	Title     string
	Genre     Genre
	BasePrice float64
	MinAge    int
	CreatedAt time.Time

	views atomic.Uint64
	sales atomic.Uint64
}

// NewFilm validates and constructs a Film. A negative base price or a
// negative age limit is rejected; an overlong title is silently cut to
// MaxTitleLen characters.
func NewFilm(title string, genre Genre, basePrice float64, minAge int) (*Film, error) {
	if basePrice < 0 {
		return nil, ErrNegativePrice
	}
	if minAge < 0 {
		return nil, ErrNegativeMinAge
	}
	if runes := []rune(title); len(runes) > MaxTitleLen {
		title = string(runes[:MaxTitleLen])
	}
	return &Film{
		ID:        uuid.NewString(),
		Title:     title,
		Genre:     genre,
		BasePrice: basePrice,
		MinAge:    minAge,
		CreatedAt: time.Now(),
	}, nil
}

// AddView records that the film was surfaced to a user, e.g. in a
// recommendation list.
func (f *Film) AddView() {
	f.views.Inc()
}

// AddSales records n sold tickets. Called once per confirmed
// reservation with the number of seats purchased.
func (f *Film) AddSales(n int) {
	if n > 0 {
		f.sales.Add(uint64(n))
	}
}

// Views returns the cumulative view count.
func (f *Film) Views() uint64 { return f.views.Load() }

// Sales returns the cumulative sold-ticket count.
func (f *Film) Sales() uint64 { return f.sales.Load() }

// PopularityScore ranks the film for recommendations. Views and sales
// raise the score; freshness decays with the time since the film was
// added so new titles get a head start.
func (f *Film) PopularityScore(now time.Time) float64 {
	ageSeconds := now.Sub(f.CreatedAt).Seconds()
	if ageSeconds < 0 {
		ageSeconds = 0
	}
	freshness := 100 / (ageSeconds + 60)
	score := float64(f.Views())/10 + float64(f.Sales())*5 + freshness
	return math.Round(score*100) / 100
}
