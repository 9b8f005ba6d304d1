package planner

import (
	"math"
	"sort"

	"github.com/google/uuid"
)

// Project is a portfolio member as the engine sees it: identity, the spud
// constraint, drilling duration, and the fitted production curve.
type Project struct {
	ID        uuid.UUID
	Name      string
	SpudYear  int // earliest calendar year drilling may begin
	DrillDays int
	Profile   *Profile
}

// Portfolio holds the projects competing for execution plus the aggregate
// metrics every selection strategy needs.
type Portfolio struct {
	Projects []Project

	peaks  []float64
	totals []float64

	// Total is the summed integral of all production curves.
	Total float64
	// GlobalMean is Total averaged over the plan horizon, the reference level
	// the balanced strategy steers daily output towards.
	GlobalMean float64
}

// NewPortfolio computes the aggregate metrics for the given projects over a
// horizon of the given length.
func NewPortfolio(projects []Project, horizonDays int) *Portfolio {
	pf := &Portfolio{
		Projects: projects,
		peaks:    make([]float64, len(projects)),
		totals:   make([]float64, len(projects)),
	}

	for i, pr := range projects {
		pf.peaks[i] = pr.Profile.Peak()
		pf.totals[i] = pr.Profile.Total()
		pf.Total += pf.totals[i]
	}

	horizonYears := float64(horizonDays) / DaysPerYear
	if horizonYears > 0 {
		pf.GlobalMean = pf.Total / horizonYears
	}

	return pf
}

// Peak returns the peak production of the i-th project.
func (pf *Portfolio) Peak(i int) float64 { return pf.peaks[i] }

// ProjectTotal returns the integrated production of the i-th project.
func (pf *Portfolio) ProjectTotal(i int) float64 { return pf.totals[i] }

// OrderByPeak returns project indices sorted by ascending peak production.
func (pf *Portfolio) OrderByPeak() []int {
	return pf.argsort(func(i int) float64 { return pf.peaks[i] })
}

// OrderByMeanGap returns project indices sorted by ascending distance between
// their peak production and the global mean.
func (pf *Portfolio) OrderByMeanGap() []int {
	return pf.argsort(func(i int) float64 { return math.Abs(pf.peaks[i] - pf.GlobalMean) })
}

func (pf *Portfolio) argsort(key func(int) float64) []int {
	idx := make([]int, len(pf.Projects))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return key(idx[a]) < key(idx[b]) })
	return idx
}
