// Package showing models one scheduled screening: a film, a room, a
// fixed seat map and the set of currently occupied seats. A Showing
// performs no locking of its own; serializing check-and-hold against
// concurrent purchase attempts is the booking coordinator's job.
package showing

import (
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/cinema-box-office/internal/catalog"
)

// Seat is one physical seat in a room. Identity is the (Row, Number)
// pair; Premium marks seats that carry a surcharge. Row and Number are
// expected to be positive; the HTTP layer rejects anything else.
type Seat struct {
	Row     int  `json:"row"`
	Number  int  `json:"number"`
	Premium bool `json:"premium"`
}

type seatKey struct {
	row    int
	number int
}

func keyOf(s Seat) seatKey { return seatKey{row: s.Row, number: s.Number} }

// Showing is one screening of a film in a specific room.
//
// Fields:
//  ID    - opaque identifier assigned at construction.
//  Film  - the screened film, shared with the catalog and read-mostly.
//  Start - when the screening begins; pricing stages key off this.
//  Room  - room label, informational only.
//
// The occupied set tracks both provisional holds and final sales; the
// surrounding reservation status is what distinguishes the two. The
// set is always a subset of the seat map: holding a seat the room does
// not have is a no-op.
type Showing struct {
	ID    string
	Film  *catalog.Film
	Start time.Time
	Room  string

	seats    []Seat
	byKey    map[seatKey]Seat
	occupied map[seatKey]struct{}
}

// New builds a showing over a fixed seat map. Duplicate (row, number)
// pairs in the input collapse to the first occurrence.
func New(film *catalog.Film, start time.Time, room string, seats []Seat) *Showing {
	s := &Showing{
		ID:       uuid.NewString(),
		Film:     film,
		Start:    start,
		Room:     room,
		byKey:    make(map[seatKey]Seat, len(seats)),
		occupied: make(map[seatKey]struct{}),
	}
	for _, seat := range seats {
		k := keyOf(seat)
		if _, ok := s.byKey[k]; ok {
			continue
		}
		s.byKey[k] = seat
		s.seats = append(s.seats, seat)
	}
	return s
}

// Seats returns a copy of the full seat map in construction order.
func (s *Showing) Seats() []Seat {
	out := make([]Seat, len(s.seats))
	copy(out, s.seats)
	return out
}

// HasSeat reports whether (Row, Number) belongs to this room.
func (s *Showing) HasSeat(seat Seat) bool {
	_, ok := s.byKey[keyOf(seat)]
	return ok
}

// Canonical returns the seat map entry matching (Row, Number). The
// premium flag on the result comes from the room, never from the
// caller's copy of the seat.
func (s *Showing) Canonical(seat Seat) (Seat, bool) {
	out, ok := s.byKey[keyOf(seat)]
	return out, ok
}

// IsFree reports whether the seat is currently unoccupied.
func (s *Showing) IsFree(seat Seat) bool {
	_, taken := s.occupied[keyOf(seat)]
	return !taken
}

// Hold marks the seat occupied. Idempotent: holding an already held
// seat changes nothing. Seats outside the seat map are ignored so the
// occupied set stays a subset of the room.
func (s *Showing) Hold(seat Seat) {
	k := keyOf(seat)
	if _, ok := s.byKey[k]; !ok {
		return
	}
	s.occupied[k] = struct{}{}
}

// Release marks the seat free again. Idempotent: releasing a free seat
// changes nothing.
func (s *Showing) Release(seat Seat) {
	delete(s.occupied, keyOf(seat))
}

// OccupiedCount returns the number of currently occupied seats.
func (s *Showing) OccupiedCount() int {
	return len(s.occupied)
}
