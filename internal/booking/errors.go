package booking

import (
	"errors"
	"fmt"
)

// ErrInvalidTransition is returned when a reservation status change is
// not allowed by the transition table. Reaching it indicates a bug in
// the purchase flow rather than bad caller input.
var ErrInvalidTransition = errors.New("invalid reservation status transition")

// ErrDuplicateShowing is returned when a showing with the same id is
// registered twice. Handlers translate this into an HTTP 409 response.
var ErrDuplicateShowing = errors.New("showing already registered")

// NotFoundError reports an unknown showing or film id. Recoverable;
// no state is touched. Handlers translate it into an HTTP 404.
type NotFoundError struct {
	Resource string // "showing" or "film"
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

// PaymentError reports a charge that was declined or failed outright.
// By the time the caller sees it, every held seat has been released;
// retrying re-validates from scratch. Handlers translate it into an
// HTTP 402.
type PaymentError struct {
	Ref string // transaction reference when the gateway resolved the attempt
	Err error  // underlying gateway error, nil for a plain decline
}

func (e *PaymentError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("payment failed: %v", e.Err)
	}
	if e.Ref != "" {
		return fmt.Sprintf("payment declined (ref %s)", e.Ref)
	}
	return "payment declined"
}

func (e *PaymentError) Unwrap() error { return e.Err }
