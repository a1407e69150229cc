// Package booking owns the purchase flow: the reservation entity, its
// status state machine, and the coordinator that drives validation,
// seat holds, pricing, payment and commit or rollback.
package booking

import (
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/cinema-box-office/internal/showing"
)

// Status is the lifecycle state of a reservation.
type Status string

const (
	StatusCreated        Status = "CREATED"
	StatusSeatsHeld      Status = "SEATS_HELD"
	StatusPaymentPending Status = "PAYMENT_PENDING"
	StatusPaid           Status = "PAID"
	StatusConfirmed      Status = "CONFIRMED"
	StatusPaymentFailed  Status = "PAYMENT_FAILED"
	StatusCancelled      Status = "CANCELLED"
)

// validTransitions maps each status to the statuses it may move to.
// CONFIRMED and CANCELLED are terminal.
var validTransitions = map[Status][]Status{
	StatusCreated:        {StatusSeatsHeld},
	StatusSeatsHeld:      {StatusPaymentPending},
	StatusPaymentPending: {StatusPaid, StatusPaymentFailed},
	StatusPaid:           {StatusConfirmed},
	StatusPaymentFailed:  {StatusCancelled},
	StatusConfirmed:      {},
	StatusCancelled:      {},
}

// CanTransitionTo reports whether moving to target is allowed.
func (s Status) CanTransitionTo(target Status) bool {
	for _, next := range validTransitions[s] {
		if next == target {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the status admits no further transitions.
func (s Status) IsTerminal() bool {
	return len(validTransitions[s]) == 0
}

// TicketLine is one priced seat within a reservation. Immutable after
// creation and owned exclusively by its reservation.
type TicketLine struct {
	FilmID    string       `json:"film_id"`
	ShowingID string       `json:"showing_id"`
	Seat      showing.Seat `json:"seat"`
	Price     float64      `json:"price"`
}

// Reservation is one purchase attempt over a set of seats on a single
// showing. Status transitions are the only mutation after creation;
// a reservation is never deleted, only terminally resolved.
type Reservation struct {
	ID         string       `json:"id"`
	ShowingID  string       `json:"showing_id"`
	BuyerAge   int          `json:"buyer_age"`
	Lines      []TicketLine `json:"lines"`
	Status     Status       `json:"status"`
	PaymentRef string       `json:"payment_ref,omitempty"`
	CreatedAt  time.Time    `json:"created_at"`
}

func newReservation(showingID string, buyerAge int) *Reservation {
	return &Reservation{
		ID:        uuid.NewString(),
		ShowingID: showingID,
		BuyerAge:  buyerAge,
		Status:    StatusCreated,
		CreatedAt: time.Now(),
	}
}

// Total is the sum of the line prices, rounded to currency precision.
// Each line price was already rounded by the pricing stage that
// produced it.
func (r *Reservation) Total() float64 {
	var sum float64
	for _, line := range r.Lines {
		sum += line.Price
	}
	return math.Round(sum*100) / 100
}

// transition moves the reservation to the next status, enforcing the
// transition table.
func (r *Reservation) transition(to Status) error {
	if !r.Status.CanTransitionTo(to) {
		return ErrInvalidTransition
	}
	r.Status = to
	return nil
}
