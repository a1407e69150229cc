package booking

import (
	"context"
	"sync"

	"github.com/iliyamo/cinema-box-office/internal/catalog"
	"github.com/iliyamo/cinema-box-office/internal/payment"
	"github.com/iliyamo/cinema-box-office/internal/pricing"
	"github.com/iliyamo/cinema-box-office/internal/recommend"
	"github.com/iliyamo/cinema-box-office/internal/showing"
	"github.com/iliyamo/cinema-box-office/internal/validation"
)

// Coordinator orchestrates purchases over its catalog and showing
// registry. It serializes the validate-and-hold step per showing so
// concurrent attempts on the same screening cannot double-book a seat,
// while purchases on unrelated showings proceed in parallel. The
// payment await runs outside the lock; during that window the held
// seats themselves are the marker that keeps other attempts out.
type Coordinator struct {
	catalog *catalog.Catalog
	gateway payment.Gateway
	checks  *validation.Chain

	mu       sync.RWMutex // guards showings and locks
	showings map[string]*showing.Showing
	locks    map[string]*sync.Mutex

	stratMu  sync.RWMutex
	strategy recommend.Strategy
}

// NewCoordinator builds a coordinator around the given collaborators.
// The validation chain is fixed at construction: age limit, seat
// membership, then seat availability.
func NewCoordinator(cat *catalog.Catalog, gw payment.Gateway, strategy recommend.Strategy) *Coordinator {
	return &Coordinator{
		catalog:  cat,
		gateway:  gw,
		checks:   validation.NewChain(validation.AgeLimit{}, validation.SeatExists{}, validation.SeatAvailability{}),
		showings: make(map[string]*showing.Showing),
		locks:    make(map[string]*sync.Mutex),
		strategy: strategy,
	}
}

// Catalog exposes the film registry for the HTTP layer.
func (k *Coordinator) Catalog() *catalog.Catalog { return k.catalog }

// AddShowing registers a showing. The only validation is id uniqueness.
func (k *Coordinator) AddShowing(s *showing.Showing) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	if _, ok := k.showings[s.ID]; ok {
		return ErrDuplicateShowing
	}
	k.showings[s.ID] = s
	k.locks[s.ID] = &sync.Mutex{}
	return nil
}

// Showing looks a showing up by id.
func (k *Coordinator) Showing(id string) (*showing.Showing, error) {
	k.mu.RLock()
	defer k.mu.RUnlock()
	s, ok := k.showings[id]
	if !ok {
		return nil, &NotFoundError{Resource: "showing", ID: id}
	}
	return s, nil
}

// Showings returns every registered showing.
func (k *Coordinator) Showings() []*showing.Showing {
	k.mu.RLock()
	defer k.mu.RUnlock()
	out := make([]*showing.Showing, 0, len(k.showings))
	for _, s := range k.showings {
		out = append(out, s)
	}
	return out
}

func (k *Coordinator) lockFor(showingID string) *sync.Mutex {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return k.locks[showingID]
}

// SeatState is one seat with its current availability, for the public
// availability view.
type SeatState struct {
	Seat showing.Seat `json:"seat"`
	Free bool         `json:"free"`
}

// SeatStates returns the seat map of a showing with per-seat
// availability, read under the showing's purchase lock so the view is
// consistent with in-flight holds.
func (k *Coordinator) SeatStates(showingID string) ([]SeatState, error) {
	s, err := k.Showing(showingID)
	if err != nil {
		return nil, err
	}
	lock := k.lockFor(showingID)
	lock.Lock()
	defer lock.Unlock()
	seats := s.Seats()
	out := make([]SeatState, 0, len(seats))
	for _, seat := range seats {
		out = append(out, SeatState{Seat: seat, Free: s.IsFree(seat)})
	}
	return out, nil
}

// Purchase runs one complete purchase attempt:
//
//	validate -> hold seats -> price -> charge -> commit | rollback
//
// Validation and the seat holds happen as one atomic unit under the
// showing's lock. From the moment the holds are placed, any exit path
// that does not commit releases them again, so a failed attempt leaves
// the seats indistinguishable from never-held. Nothing is retried
// here; a caller that retries re-validates from scratch.
func (k *Coordinator) Purchase(ctx context.Context, showingID string, buyerAge int, seats []showing.Seat, calc pricing.Calculator) (*Reservation, error) {
	sh, err := k.Showing(showingID)
	if err != nil {
		return nil, err
	}
	seats = dedupeSeats(seats)
	if len(seats) == 0 {
		return nil, &validation.Error{Check: "request", Reason: "no seats requested"}
	}
	film := sh.Film
	lock := k.lockFor(showingID)

	// Critical section: availability must still hold at the instant the
	// seats are taken.
	lock.Lock()
	vctx := validation.Context{Film: film, BuyerAge: buyerAge, Showing: sh, Seats: seats}
	if err := k.checks.Run(vctx); err != nil {
		lock.Unlock()
		return nil, err
	}
	// Canonicalize so the premium flag comes from the seat map, not the
	// request. SeatExists just passed, so every lookup succeeds.
	for i, seat := range seats {
		if canon, ok := sh.Canonical(seat); ok {
			seats[i] = canon
		}
	}
	for _, seat := range seats {
		sh.Hold(seat)
	}
	lock.Unlock()

	committed := false
	defer func() {
		if !committed {
			lock.Lock()
			for _, seat := range seats {
				sh.Release(seat)
			}
			lock.Unlock()
		}
	}()

	res := newReservation(sh.ID, buyerAge)
	if err := res.transition(StatusSeatsHeld); err != nil {
		return nil, err
	}

	lines := make([]TicketLine, 0, len(seats))
	for _, seat := range seats {
		lines = append(lines, TicketLine{
			FilmID:    film.ID,
			ShowingID: sh.ID,
			Seat:      seat,
			Price:     calc.Price(film, seat, sh.Start),
		})
	}
	res.Lines = lines

	if err := res.transition(StatusPaymentPending); err != nil {
		return nil, err
	}

	// Sole suspension point. The lock is not held here; the occupied
	// seats keep competing attempts out until commit or rollback.
	result, err := k.gateway.Charge(ctx, res.Total())
	if err != nil {
		_ = res.transition(StatusPaymentFailed)
		_ = res.transition(StatusCancelled)
		return nil, &PaymentError{Err: err}
	}
	res.PaymentRef = result.Ref
	if !result.Approved {
		_ = res.transition(StatusPaymentFailed)
		_ = res.transition(StatusCancelled)
		return nil, &PaymentError{Ref: result.Ref}
	}

	if err := res.transition(StatusPaid); err != nil {
		return nil, err
	}
	if err := res.transition(StatusConfirmed); err != nil {
		return nil, err
	}
	committed = true
	film.AddSales(len(seats))
	return res, nil
}

// SetStrategy swaps the recommendation strategy at runtime. In-flight
// purchases are unaffected.
func (k *Coordinator) SetStrategy(s recommend.Strategy) {
	k.stratMu.Lock()
	k.strategy = s
	k.stratMu.Unlock()
}

// Recommend ranks the catalog with the current strategy.
func (k *Coordinator) Recommend(limit int) []*catalog.Film {
	k.stratMu.RLock()
	s := k.strategy
	k.stratMu.RUnlock()
	return k.RecommendWith(s, limit)
}

// RecommendWith ranks the catalog with an explicit strategy, leaving
// the coordinator's default untouched.
func (k *Coordinator) RecommendWith(s recommend.Strategy, limit int) []*catalog.Film {
	return s.Recommend(k.catalog.List(), limit)
}

// dedupeSeats drops repeated (row, number) pairs, keeping first
// occurrences, so a request naming a seat twice is priced once.
func dedupeSeats(seats []showing.Seat) []showing.Seat {
	type key struct{ row, number int }
	seen := make(map[key]struct{}, len(seats))
	out := make([]showing.Seat, 0, len(seats))
	for _, s := range seats {
		k := key{row: s.Row, number: s.Number}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, s)
	}
	return out
}
