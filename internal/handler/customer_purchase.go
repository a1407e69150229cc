package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-box-office/internal/booking"
	"github.com/iliyamo/cinema-box-office/internal/pricing"
	"github.com/iliyamo/cinema-box-office/internal/queue"
	"github.com/iliyamo/cinema-box-office/internal/showing"
	"github.com/iliyamo/cinema-box-office/internal/validation"
)

// PurchaseHandler drives the single entry point of the booking core:
// one purchase attempt per request, validated and committed or rolled
// back by the coordinator. The handler only translates between the
// wire format and the core's types and errors.
type PurchaseHandler struct {
	Coordinator *booking.Coordinator
}

// NewPurchaseHandler constructs a PurchaseHandler around the coordinator.
func NewPurchaseHandler(coord *booking.Coordinator) *PurchaseHandler {
	if coord == nil {
		panic("nil coordinator passed to NewPurchaseHandler")
	}
	return &PurchaseHandler{Coordinator: coord}
}

// Purchase handles POST /v1/showings/:id/purchase. The body carries
// the buyer age, the requested seats and an optional ordered list of
// pricing stage names ("premium", "midweek"); when the list is absent
// the default pipeline is used. Core errors map onto HTTP statuses:
// unknown showing 404, failed validation 422, declined or failed
// payment 402 (seats already rolled back by then). On success a 201
// is returned with the confirmed reservation and a confirmation event
// is published in the background.
func (h *PurchaseHandler) Purchase(c echo.Context) error {
	showingID := c.Param("id")
	var body struct {
		Age     int           `json:"age"`
		Seats   []seatRequest `json:"seats"`
		Pricing []string      `json:"pricing"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.Age < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "age must not be negative"})
	}
	if len(body.Seats) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "seats is required"})
	}
	seats := make([]showing.Seat, 0, len(body.Seats))
	for _, s := range body.Seats {
		if s.Row < 1 || s.Number < 1 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "seat row and number must be positive"})
		}
		seats = append(seats, showing.Seat{Row: s.Row, Number: s.Number})
	}

	calc := pricing.Default()
	if body.Pricing != nil {
		var err error
		if calc, err = pricing.FromStages(body.Pricing); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
	}

	res, err := h.Coordinator.Purchase(c.Request().Context(), showingID, body.Age, seats, calc)
	if err != nil {
		var nf *booking.NotFoundError
		if errors.As(err, &nf) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": nf.Error()})
		}
		var ve *validation.Error
		if errors.As(err, &ve) {
			return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": ve.Error(), "check": ve.Check})
		}
		var pe *booking.PaymentError
		if errors.As(err, &pe) {
			return c.JSON(http.StatusPaymentRequired, echo.Map{"error": pe.Error(), "payment_ref": pe.Ref})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "purchase failed"})
	}

	h.publishConfirmed(res)

	return c.JSON(http.StatusCreated, echo.Map{
		"reservation": res,
		"total":       res.Total(),
	})
}

// publishConfirmed emits the confirmation event without blocking the
// response; publish failures are logged inside the queue package and
// otherwise ignored.
func (h *PurchaseHandler) publishConfirmed(res *booking.Reservation) {
	sh, err := h.Coordinator.Showing(res.ShowingID)
	if err != nil {
		return
	}
	labels := make([]string, 0, len(res.Lines))
	for _, line := range res.Lines {
		labels = append(labels, fmt.Sprintf("R%dS%d", line.Seat.Row, line.Seat.Number))
	}
	ev := queue.ReservationConfirmedEvent{
		ReservationID: res.ID,
		ShowingID:     sh.ID,
		FilmID:        sh.Film.ID,
		FilmTitle:     sh.Film.Title,
		Room:          sh.Room,
		StartsAt:      sh.Start.UTC().Format(time.RFC3339),
		SeatLabels:    labels,
		Total:         res.Total(),
		PaymentRef:    res.PaymentRef,
		ConfirmedAt:   time.Now().UTC().Format(time.RFC3339),
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = queue.PublishReservationConfirmed(ctx, ev)
	}()
}
