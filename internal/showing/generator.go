package showing

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/iliyamo/cinema-box-office/internal/catalog"
)

const (
	generatedSeats   = 8 // seats per generated room, numbers 1..8
	generatedPremium = 2 // seat numbers 1..2 are premium
)

// Generate builds n showings for the dev seed: one every two hours
// starting at now, each with a single row of eight seats of which the
// first two are premium. Film and room are picked at random from the
// given slice. Returns nil when no films are available.
func Generate(films []*catalog.Film, n int, now time.Time) []*Showing {
	if len(films) == 0 || n <= 0 {
		return nil
	}
	out := make([]*Showing, 0, n)
	for i := 0; i < n; i++ {
		seats := make([]Seat, 0, generatedSeats)
		for num := 1; num <= generatedSeats; num++ {
			seats = append(seats, Seat{Row: 1, Number: num, Premium: num <= generatedPremium})
		}
		film := films[rand.Intn(len(films))]
		start := now.Add(time.Duration(i) * 2 * time.Hour)
		room := fmt.Sprintf("Room-%d", rand.Intn(3)+1)
		out = append(out, New(film, start, room, seats))
	}
	return out
}
