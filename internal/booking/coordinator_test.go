package booking

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/cinema-box-office/internal/catalog"
	"github.com/iliyamo/cinema-box-office/internal/payment"
	"github.com/iliyamo/cinema-box-office/internal/pricing"
	"github.com/iliyamo/cinema-box-office/internal/recommend"
	"github.com/iliyamo/cinema-box-office/internal/showing"
)

// thursdayStart avoids the midweek discount so expected totals stay
// simple.
var thursdayStart = time.Date(2026, 1, 15, 20, 0, 0, 0, time.UTC)

func setup(t *testing.T, gw payment.Gateway) (*Coordinator, *catalog.Film, *showing.Showing) {
	t.Helper()
	cat := catalog.NewCatalog()
	film, err := catalog.NewFilm("Escape Velocity", catalog.GenreSciFi, 30.0, 12)
	require.NoError(t, err)
	require.NoError(t, cat.Add(film))

	seats := []showing.Seat{
		{Row: 1, Number: 1, Premium: true},
		{Row: 1, Number: 2, Premium: true},
		{Row: 1, Number: 3},
		{Row: 1, Number: 4},
	}
	sh := showing.New(film, thursdayStart, "Room-1", seats)

	co := NewCoordinator(cat, gw, recommend.Popularity{})
	require.NoError(t, co.AddShowing(sh))
	return co, film, sh
}

func TestPurchaseSuccess(t *testing.T) {
	co, film, sh := setup(t, payment.Fixed(true))

	seats := []showing.Seat{{Row: 1, Number: 1}, {Row: 1, Number: 3}}
	res, err := co.Purchase(context.Background(), sh.ID, 30, seats, pricing.Default())
	require.NoError(t, err)

	assert.Equal(t, StatusConfirmed, res.Status)
	assert.NotEmpty(t, res.PaymentRef)
	require.Len(t, res.Lines, 2)
	// Premium seat 30+15, standard seat 30, no midweek discount.
	assert.Equal(t, 45.0, res.Lines[0].Price)
	assert.Equal(t, 30.0, res.Lines[1].Price)
	assert.Equal(t, 75.0, res.Total())

	assert.False(t, sh.IsFree(showing.Seat{Row: 1, Number: 1}))
	assert.False(t, sh.IsFree(showing.Seat{Row: 1, Number: 3}))
	assert.Equal(t, uint64(2), film.Sales())
}

func TestPurchaseCanonicalizesPremiumFlag(t *testing.T) {
	co, _, sh := setup(t, payment.Fixed(true))

	// The request claims seat 1 is standard; the room says premium.
	seats := []showing.Seat{{Row: 1, Number: 1, Premium: false}}
	res, err := co.Purchase(context.Background(), sh.ID, 30, seats, pricing.Default())
	require.NoError(t, err)
	require.Len(t, res.Lines, 1)
	assert.True(t, res.Lines[0].Seat.Premium)
	assert.Equal(t, 45.0, res.Lines[0].Price)
}

func TestPurchaseDeclinedReleasesSeats(t *testing.T) {
	co, film, sh := setup(t, payment.Fixed(false))

	seats := []showing.Seat{{Row: 1, Number: 1}, {Row: 1, Number: 2}}
	res, err := co.Purchase(context.Background(), sh.ID, 30, seats, pricing.Default())
	assert.Nil(t, res)

	var perr *PaymentError
	require.ErrorAs(t, err, &perr)
	assert.NotEmpty(t, perr.Ref)
	assert.NoError(t, perr.Err)

	assert.True(t, sh.IsFree(showing.Seat{Row: 1, Number: 1}))
	assert.True(t, sh.IsFree(showing.Seat{Row: 1, Number: 2}))
	assert.Equal(t, uint64(0), film.Sales())
	assert.Equal(t, 0, sh.OccupiedCount())
}

func TestPurchaseGatewayErrorReleasesSeats(t *testing.T) {
	co, _, sh := setup(t, payment.NewSimulated(1.0, time.Minute))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := co.Purchase(ctx, sh.ID, 30, []showing.Seat{{Row: 1, Number: 1}}, pricing.Default())

	var perr *PaymentError
	require.ErrorAs(t, err, &perr)
	assert.ErrorIs(t, perr, context.Canceled)
	assert.Equal(t, 0, sh.OccupiedCount())
}

func TestPurchaseUnknownShowing(t *testing.T) {
	co, _, _ := setup(t, payment.Fixed(true))
	_, err := co.Purchase(context.Background(), "no-such-id", 30, []showing.Seat{{Row: 1, Number: 1}}, pricing.Default())

	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "showing", nf.Resource)
}

func TestPurchaseValidationFailureLeavesSeatsFree(t *testing.T) {
	co, _, sh := setup(t, payment.Fixed(true))

	// Buyer is under the film's 12+ rating.
	_, err := co.Purchase(context.Background(), sh.ID, 10, []showing.Seat{{Row: 1, Number: 1}}, pricing.Default())
	require.Error(t, err)
	assert.Equal(t, 0, sh.OccupiedCount())
}

func TestPurchaseOccupiedSeatRejected(t *testing.T) {
	co, _, sh := setup(t, payment.Fixed(true))

	_, err := co.Purchase(context.Background(), sh.ID, 30, []showing.Seat{{Row: 1, Number: 3}}, pricing.Default())
	require.NoError(t, err)

	_, err = co.Purchase(context.Background(), sh.ID, 30, []showing.Seat{{Row: 1, Number: 3}}, pricing.Default())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "R1S3")
}

func TestPurchaseEmptySeatList(t *testing.T) {
	co, _, sh := setup(t, payment.Fixed(true))
	_, err := co.Purchase(context.Background(), sh.ID, 30, nil, pricing.Default())
	require.Error(t, err)
}

func TestPurchaseDedupesRepeatedSeats(t *testing.T) {
	co, film, sh := setup(t, payment.Fixed(true))

	seats := []showing.Seat{
		{Row: 1, Number: 3},
		{Row: 1, Number: 3},
		{Row: 1, Number: 3},
	}
	res, err := co.Purchase(context.Background(), sh.ID, 30, seats, pricing.Default())
	require.NoError(t, err)
	assert.Len(t, res.Lines, 1)
	assert.Equal(t, 30.0, res.Total())
	assert.Equal(t, uint64(1), film.Sales())
}

func TestConcurrentPurchasesOneWinner(t *testing.T) {
	co, film, sh := setup(t, payment.Fixed(true))
	target := []showing.Seat{{Row: 1, Number: 1}}

	const attempts = 16
	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = co.Purchase(context.Background(), sh.ID, 30, target, pricing.Default())
		}(i)
	}
	wg.Wait()

	won := 0
	for _, err := range errs {
		if err == nil {
			won++
			continue
		}
		assert.Contains(t, err.Error(), "R1S1")
	}
	assert.Equal(t, 1, won)
	assert.Equal(t, uint64(1), film.Sales())
	assert.False(t, sh.IsFree(showing.Seat{Row: 1, Number: 1}))
}

func TestConcurrentDisjointSeatsAllSucceed(t *testing.T) {
	co, film, sh := setup(t, payment.Fixed(true))

	var wg sync.WaitGroup
	errs := make([]error, 4)
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			seat := showing.Seat{Row: 1, Number: i + 1}
			_, errs[i] = co.Purchase(context.Background(), sh.ID, 30, []showing.Seat{seat}, pricing.Default())
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		assert.NoError(t, err)
	}
	assert.Equal(t, 4, sh.OccupiedCount())
	assert.Equal(t, uint64(4), film.Sales())
}

func TestSeatStatesReflectOccupancy(t *testing.T) {
	co, _, sh := setup(t, payment.Fixed(true))

	_, err := co.Purchase(context.Background(), sh.ID, 30, []showing.Seat{{Row: 1, Number: 2}}, pricing.Default())
	require.NoError(t, err)

	states, err := co.SeatStates(sh.ID)
	require.NoError(t, err)
	require.Len(t, states, 4)
	for _, st := range states {
		if st.Seat.Row == 1 && st.Seat.Number == 2 {
			assert.False(t, st.Free)
		} else {
			assert.True(t, st.Free)
		}
	}
}

func TestAddShowingRejectsDuplicate(t *testing.T) {
	co, _, sh := setup(t, payment.Fixed(true))
	assert.True(t, errors.Is(co.AddShowing(sh), ErrDuplicateShowing))
}

func TestRecommendUsesConfiguredStrategy(t *testing.T) {
	co, film, _ := setup(t, payment.Fixed(true))
	comedy, err := catalog.NewFilm("Laugh Track", catalog.GenreComedy, 28.0, 0)
	require.NoError(t, err)
	require.NoError(t, co.Catalog().Add(comedy))

	film.AddSales(10)
	top := co.Recommend(1)
	require.Len(t, top, 1)
	assert.Equal(t, film.ID, top[0].ID)

	co.SetStrategy(recommend.ByGenre{Genre: catalog.GenreComedy})
	top = co.Recommend(3)
	require.Len(t, top, 1)
	assert.Equal(t, comedy.ID, top[0].ID)
}
