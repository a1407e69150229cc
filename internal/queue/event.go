// Package queue publishes and consumes reservation events over the
// message broker.
package queue

// ReservationConfirmedEvent is published when a purchase commits. It
// carries enough information for downstream consumers to log, notify
// or feed analytics without reaching back into the coordinator.
type ReservationConfirmedEvent struct {
	ReservationID string   `json:"reservation_id"`
	ShowingID     string   `json:"showing_id"`
	FilmID        string   `json:"film_id"`
	FilmTitle     string   `json:"film_title"`
	Room          string   `json:"room"`
	StartsAt      string   `json:"starts_at"`
	SeatLabels    []string `json:"seats"`
	Total         float64  `json:"total"`
	PaymentRef    string   `json:"payment_ref"`
	ConfirmedAt   string   `json:"confirmed_at"`
}
