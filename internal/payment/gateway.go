// Package payment defines the gateway boundary of the booking flow.
// Charging is the only operation in the whole purchase path that
// blocks; everything around it is synchronous.
package payment

import (
	"context"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Result is the outcome of a charge attempt that reached the gateway.
// A declined charge is not an error at this layer; the booking
// coordinator turns it into one after rolling back held seats.
type Result struct {
	Approved bool
	Ref      string // transaction reference, assigned whether or not approved
}

// Gateway finalizes a monetary charge. Implementations must honor
// context cancellation while waiting on the (possibly remote) provider.
type Gateway interface {
	Charge(ctx context.Context, amount float64) (Result, error)
}

// Simulated is a stochastic stand-in for a real payment provider. It
// sleeps for Latency to mimic a network round trip, then approves with
// probability SuccessRate. Tests pin the outcome via the Outcome hook
// instead of relying on timing or randomness.
type Simulated struct {
	Latency     time.Duration
	SuccessRate float64
	Outcome     func() bool // when non-nil, replaces the coin flip
}

// NewSimulated builds a gateway with the given approval probability
// (clamped to [0,1]) and simulated latency.
func NewSimulated(successRate float64, latency time.Duration) *Simulated {
	if successRate < 0 {
		successRate = 0
	}
	if successRate > 1 {
		successRate = 1
	}
	return &Simulated{Latency: latency, SuccessRate: successRate}
}

// Charge waits out the simulated latency, then resolves the attempt.
// A cancelled context aborts the wait and returns the context error.
func (g *Simulated) Charge(ctx context.Context, _ float64) (Result, error) {
	if g.Latency > 0 {
		timer := time.NewTimer(g.Latency)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return Result{}, ctx.Err()
		case <-timer.C:
		}
	}
	approved := false
	if g.Outcome != nil {
		approved = g.Outcome()
	} else {
		approved = rand.Float64() < g.SuccessRate
	}
	return Result{Approved: approved, Ref: NewRef()}, nil
}

// Fixed returns a gateway that always resolves immediately with the
// given outcome. Used by tests and the demo seed.
func Fixed(approved bool) Gateway {
	return &Simulated{Outcome: func() bool { return approved }}
}

// NewRef generates a short transaction reference.
func NewRef() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}
