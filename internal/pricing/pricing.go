// Package pricing computes the final price of one seat for one
// showing. Calculators compose by wrapping: each stage adjusts the
// amount produced by the stage it wraps, so composition order is fixed
// at construction time. Stages are pure and never touch film, seat or
// showing state.
package pricing

import (
	"fmt"
	"math"
	"time"

	"github.com/iliyamo/cinema-box-office/internal/catalog"
	"github.com/iliyamo/cinema-box-office/internal/showing"
)

// Calculator prices a single seat. Every implementation rounds the
// amount it emits to two decimal places.
type Calculator interface {
	Price(film *catalog.Film, seat showing.Seat, start time.Time) float64
}

// PremiumSurchargeAmount is added for seats marked premium.
const PremiumSurchargeAmount = 15.0

// MidweekDiscountFactor is applied to Wednesday showings.
const MidweekDiscountFactor = 0.8

// Base returns the film's base price unmodified.
type Base struct{}

func (Base) Price(film *catalog.Film, _ showing.Seat, _ time.Time) float64 {
	return round2(film.BasePrice)
}

// PremiumSurcharge adds a fixed surcharge on premium seats to the
// amount produced by the inner calculator.
type PremiumSurcharge struct {
	Inner Calculator
}

func (p PremiumSurcharge) Price(film *catalog.Film, seat showing.Seat, start time.Time) float64 {
	amount := p.Inner.Price(film, seat, start)
	if seat.Premium {
		amount += PremiumSurchargeAmount
	}
	return round2(amount)
}

// MidweekDiscount cuts the inner amount by 20% when the showing starts
// on a Wednesday. Composed outside the surcharge, the discount applies
// to the surcharged amount.
type MidweekDiscount struct {
	Inner Calculator
}

func (m MidweekDiscount) Price(film *catalog.Film, seat showing.Seat, start time.Time) float64 {
	amount := m.Inner.Price(film, seat, start)
	if start.Weekday() == time.Wednesday {
		amount *= MidweekDiscountFactor
	}
	return round2(amount)
}

// Stage names accepted by FromStages.
const (
	StagePremium = "premium"
	StageMidweek = "midweek"
)

// FromStages builds a pipeline from stage names wrapped around Base in
// the listed order: the last name becomes the outermost stage and so
// runs on the amounts all earlier stages produced. An empty list
// yields the bare base price.
func FromStages(names []string) (Calculator, error) {
	var calc Calculator = Base{}
	for _, name := range names {
		switch name {
		case StagePremium:
			calc = PremiumSurcharge{Inner: calc}
		case StageMidweek:
			calc = MidweekDiscount{Inner: calc}
		default:
			return nil, fmt.Errorf("unknown pricing stage %q", name)
		}
	}
	return calc, nil
}

// Default is the standard pipeline: premium surcharge first, midweek
// discount applied to the surcharged amount.
func Default() Calculator {
	return MidweekDiscount{Inner: PremiumSurcharge{Inner: Base{}}}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
