package planner

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/integrate/quad"
	"gonum.org/v1/gonum/interp"
)

// DaysPerYear converts between the yearly profile grid and the day-offset
// timeline plans are simulated on.
const DaysPerYear = 365.25

// quadNodes is the number of Gauss-Legendre nodes used for profile totals.
const quadNodes = 64

// ErrShortProfile is returned when a profile has fewer than two usable points,
// which is not enough to fit a production curve.
var ErrShortProfile = errors.New("profile needs at least two non-zero points")

// Point is one year of expected production. Rate is a revenue proxy.
type Point struct {
	Year int     `json:"year"`
	Rate float64 `json:"rate"`
}

// Profile is a project's production curve: a cubic spline fitted through the
// yearly profile points. Zero-rate years are dropped before fitting, so the
// curve spans only the effective production window.
type Profile struct {
	years []float64
	rates []float64
	curve interp.NaturalCubic
}

// NewProfile fits a production curve through the given points. Points must be
// in ascending year order; zero-rate years are ignored.
func NewProfile(points []Point) (*Profile, error) {
	p := &Profile{}
	lastYear := 0
	for _, pt := range points {
		if pt.Rate == 0 {
			continue
		}
		if len(p.years) > 0 && pt.Year <= lastYear {
			return nil, fmt.Errorf("profile years must be strictly ascending, got %d after %d", pt.Year, lastYear)
		}
		p.years = append(p.years, float64(pt.Year))
		p.rates = append(p.rates, pt.Rate)
		lastYear = pt.Year
	}

	if len(p.years) < 2 {
		return nil, ErrShortProfile
	}

	if err := p.curve.Fit(p.years, p.rates); err != nil {
		return nil, fmt.Errorf("fitting profile curve: %w", err)
	}

	return p, nil
}

// Peak returns the production rate on the first effective day.
func (p *Profile) Peak() float64 {
	return p.rates[0]
}

// Total integrates the fitted curve over the effective production window.
func (p *Profile) Total() float64 {
	return quad.Fixed(p.curve.Predict, p.years[0], p.years[len(p.years)-1], quadNodes, quad.Legendre{}, 0)
}

// LifespanDays is the length of the effective production window in days.
func (p *Profile) LifespanDays() int {
	return int((p.years[len(p.years)-1] - p.years[0]) * DaysPerYear)
}

// Rate evaluates the curve at the given day offset from production start.
// Offsets outside the effective window yield zero.
func (p *Profile) Rate(elapsedDays float64) float64 {
	if elapsedDays < 0 {
		return 0
	}
	x := p.years[0] + elapsedDays/DaysPerYear
	if x > p.years[len(p.years)-1] {
		return 0
	}
	return p.curve.Predict(x)
}
