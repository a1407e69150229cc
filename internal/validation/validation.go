// Package validation runs the business-rule checks that gate a
// purchase before any seat is touched. Checks are independent objects
// held in an ordered chain; the chain is fail-fast and never mutates
// state, so a failed run leaves nothing to undo.
package validation

import (
	"fmt"
	"strings"

	"github.com/iliyamo/cinema-box-office/internal/catalog"
	"github.com/iliyamo/cinema-box-office/internal/showing"
)

// Context carries the full purchase request for the checks to inspect.
type Context struct {
	Film     *catalog.Film
	BuyerAge int
	Showing  *showing.Showing
	Seats    []showing.Seat
}

// Error is a failed business-rule check. Handlers translate it into an
// HTTP 422 response; callers may retry with adjusted input.
type Error struct {
	Check  string // name of the failing check
	Reason string // human-readable explanation
}

func (e *Error) Error() string {
	return fmt.Sprintf("validation failed (%s): %s", e.Check, e.Reason)
}

// Check is one independent business rule. Check returns nil to pass or
// an *Error describing why the request must be rejected.
type Check interface {
	Name() string
	Check(ctx Context) error
}

// Chain runs checks in registration order and stops at the first
// failure. New rules slot in anywhere in the order without touching
// existing checks.
type Chain struct {
	checks []Check
}

// NewChain builds a chain over the given checks, run in argument order.
func NewChain(checks ...Check) *Chain {
	return &Chain{checks: checks}
}

// Insert places a check at position i, shifting later checks back.
// Out-of-range positions clamp to the ends.
func (c *Chain) Insert(i int, chk Check) {
	if i < 0 {
		i = 0
	}
	if i > len(c.checks) {
		i = len(c.checks)
	}
	c.checks = append(c.checks[:i], append([]Check{chk}, c.checks[i:]...)...)
}

// Run executes the chain, returning the first failure or nil.
func (c *Chain) Run(ctx Context) error {
	for _, chk := range c.checks {
		if err := chk.Check(ctx); err != nil {
			return err
		}
	}
	return nil
}

// AgeLimit rejects buyers younger than the film's minimum age.
type AgeLimit struct{}

func (AgeLimit) Name() string { return "age_limit" }

func (AgeLimit) Check(ctx Context) error {
	if ctx.BuyerAge < ctx.Film.MinAge {
		return &Error{
			Check:  "age_limit",
			Reason: fmt.Sprintf("film %q is rated %d+", ctx.Film.Title, ctx.Film.MinAge),
		}
	}
	return nil
}

// SeatExists rejects requests naming seats the room does not have. The
// error lists every unknown seat.
type SeatExists struct{}

func (SeatExists) Name() string { return "seat_exists" }

func (SeatExists) Check(ctx Context) error {
	var unknown []string
	for _, seat := range ctx.Seats {
		if !ctx.Showing.HasSeat(seat) {
			unknown = append(unknown, seatLabel(seat))
		}
	}
	if len(unknown) > 0 {
		return &Error{
			Check:  "seat_exists",
			Reason: "no such seats: " + strings.Join(unknown, ", "),
		}
	}
	return nil
}

// SeatAvailability rejects requests for seats that are already
// occupied. The error enumerates every conflicting seat, not just the
// first one found.
type SeatAvailability struct{}

func (SeatAvailability) Name() string { return "seat_availability" }

func (SeatAvailability) Check(ctx Context) error {
	var taken []string
	for _, seat := range ctx.Seats {
		if !ctx.Showing.IsFree(seat) {
			taken = append(taken, seatLabel(seat))
		}
	}
	if len(taken) > 0 {
		return &Error{
			Check:  "seat_availability",
			Reason: "seats occupied: " + strings.Join(taken, ", "),
		}
	}
	return nil
}

func seatLabel(s showing.Seat) string {
	return fmt.Sprintf("R%dS%d", s.Row, s.Number)
}
