package validation

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/cinema-box-office/internal/catalog"
	"github.com/iliyamo/cinema-box-office/internal/showing"
)

func ratedFilm(t *testing.T, minAge int) *catalog.Film {
	t.Helper()
	f, err := catalog.NewFilm("Rated", catalog.GenreAction, 30.0, minAge)
	require.NoError(t, err)
	return f
}

func smallRoom(t *testing.T, f *catalog.Film) *showing.Showing {
	t.Helper()
	seats := []showing.Seat{
		{Row: 1, Number: 1, Premium: true},
		{Row: 1, Number: 2},
		{Row: 1, Number: 3},
		{Row: 1, Number: 4},
	}
	return showing.New(f, time.Now().Add(time.Hour), "Room-1", seats)
}

func TestAgeLimitRejectsUnderage(t *testing.T) {
	f := ratedFilm(t, 16)
	err := AgeLimit{}.Check(Context{Film: f, BuyerAge: 15})

	var verr *Error
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "age_limit", verr.Check)
	assert.Contains(t, verr.Reason, "16+")
}

func TestAgeLimitPassesAtExactMinimum(t *testing.T) {
	f := ratedFilm(t, 16)
	assert.NoError(t, AgeLimit{}.Check(Context{Film: f, BuyerAge: 16}))
}

func TestSeatExistsListsEveryUnknownSeat(t *testing.T) {
	f := ratedFilm(t, 0)
	sh := smallRoom(t, f)
	err := SeatExists{}.Check(Context{
		Film:    f,
		Showing: sh,
		Seats: []showing.Seat{
			{Row: 1, Number: 2},
			{Row: 9, Number: 1},
			{Row: 1, Number: 99},
		},
	})

	var verr *Error
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "seat_exists", verr.Check)
	assert.Contains(t, verr.Reason, "R9S1")
	assert.Contains(t, verr.Reason, "R1S99")
	assert.NotContains(t, verr.Reason, "R1S2")
}

func TestSeatAvailabilityEnumeratesAllConflicts(t *testing.T) {
	f := ratedFilm(t, 0)
	sh := smallRoom(t, f)
	sh.Hold(showing.Seat{Row: 1, Number: 1})
	sh.Hold(showing.Seat{Row: 1, Number: 4})

	err := SeatAvailability{}.Check(Context{
		Film:    f,
		Showing: sh,
		Seats: []showing.Seat{
			{Row: 1, Number: 1},
			{Row: 1, Number: 2},
			{Row: 1, Number: 4},
		},
	})

	var verr *Error
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "seat_availability", verr.Check)
	assert.Contains(t, verr.Reason, "R1S1")
	assert.Contains(t, verr.Reason, "R1S4")
	assert.NotContains(t, verr.Reason, "R1S2")
}

func TestChainStopsAtFirstFailure(t *testing.T) {
	f := ratedFilm(t, 18)
	sh := smallRoom(t, f)
	sh.Hold(showing.Seat{Row: 1, Number: 1})

	chain := NewChain(AgeLimit{}, SeatExists{}, SeatAvailability{})
	err := chain.Run(Context{
		Film:     f,
		BuyerAge: 12,
		Showing:  sh,
		Seats:    []showing.Seat{{Row: 1, Number: 1}},
	})

	// Both checks would fail; the age limit runs first.
	var verr *Error
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "age_limit", verr.Check)
}

func TestChainPassesCleanRequest(t *testing.T) {
	f := ratedFilm(t, 12)
	sh := smallRoom(t, f)

	chain := NewChain(AgeLimit{}, SeatExists{}, SeatAvailability{})
	err := chain.Run(Context{
		Film:     f,
		BuyerAge: 30,
		Showing:  sh,
		Seats:    []showing.Seat{{Row: 1, Number: 1}, {Row: 1, Number: 2}},
	})
	assert.NoError(t, err)
}

func TestInsertPlacesCheckInOrder(t *testing.T) {
	f := ratedFilm(t, 18)
	sh := smallRoom(t, f)

	chain := NewChain(SeatExists{})
	chain.Insert(0, AgeLimit{})

	err := chain.Run(Context{
		Film:     f,
		BuyerAge: 10,
		Showing:  sh,
		Seats:    []showing.Seat{{Row: 9, Number: 9}},
	})

	var verr *Error
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "age_limit", verr.Check)
}

func TestInsertClampsOutOfRange(t *testing.T) {
	chain := NewChain()
	chain.Insert(50, AgeLimit{})
	chain.Insert(-3, SeatExists{})

	f := ratedFilm(t, 0)
	sh := smallRoom(t, f)
	err := chain.Run(Context{
		Film:     f,
		BuyerAge: 20,
		Showing:  sh,
		Seats:    []showing.Seat{{Row: 9, Number: 9}},
	})

	// SeatExists sits in front after the clamped inserts.
	var verr *Error
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "seat_exists", verr.Check)
}

func TestErrorMessageFormat(t *testing.T) {
	err := error(&Error{Check: "age_limit", Reason: "too young"})
	assert.Equal(t, `validation failed (age_limit): too young`, err.Error())

	var verr *Error
	assert.True(t, errors.As(err, &verr))
}
