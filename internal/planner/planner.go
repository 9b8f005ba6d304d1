// Package planner sequences a portfolio of drilling projects over a plan
// horizon and simulates the resulting daily portfolio production. Projects
// are constrained by their spud year: drilling may not begin earlier than it.
package planner

import (
	"errors"
	"fmt"
	"math/rand"
	"time"
)

// Default number of random combinations sampled by the balanced first-project
// search.
const defaultInitialIters = 1000

// ErrNoEligibleProject is returned when no project satisfies the spud-year
// constraint for the first execution slot.
var ErrNoEligibleProject = errors.New("no project eligible for the first execution slot")

// SequenceEntry is one scheduled project: when drilling starts (possibly
// before the period, as a negative day offset) and when production begins.
type SequenceEntry struct {
	ProjectID     string `json:"projectId"`
	Name          string `json:"name"`
	StartDay      int    `json:"startDay"`
	DrillStartDay int    `json:"drillStartDay"`
}

// Result holds a finished sequencing run.
type Result struct {
	Sequence    []SequenceEntry
	Production  []float64 // daily portfolio output over the horizon
	Total       float64   // sum of the daily series
	Evaluations int       // candidate evaluations performed by the strategy
	Duration    time.Duration
}

// Planner runs sequencing strategies over a portfolio.
type Planner struct {
	portfolio    *Portfolio
	startDate    time.Time
	horizonDays  int
	initialIters int
	rng          *rand.Rand
}

// Option configures a Planner.
type Option func(*Planner)

// WithRand sets the random source used by the balanced and random strategies.
func WithRand(src rand.Source) Option {
	return func(p *Planner) { p.rng = rand.New(src) }
}

// WithInitialIters sets how many combinations the balanced first-project
// search samples.
func WithInitialIters(n int) Option {
	return func(p *Planner) { p.initialIters = n }
}

// New creates a Planner over the given projects.
func New(projects []Project, startDate time.Time, horizonDays int, opts ...Option) (*Planner, error) {
	if horizonDays <= 0 {
		return nil, fmt.Errorf("horizon must be positive, got %d", horizonDays)
	}

	p := &Planner{
		portfolio:    NewPortfolio(projects, horizonDays),
		startDate:    startDate,
		horizonDays:  horizonDays,
		initialIters: defaultInitialIters,
		rng:          rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Run executes the named strategy and returns the sequencing result.
// An empty portfolio yields a zero production series and an empty sequence.
func (p *Planner) Run(strategy string) (*Result, error) {
	started := time.Now()

	if len(p.portfolio.Projects) == 0 {
		return &Result{
			Sequence:   []SequenceEntry{},
			Production: make([]float64, p.horizonDays),
			Duration:   time.Since(started),
		}, nil
	}

	var res *Result
	var err error
	switch strategy {
	case "ordered", "":
		res = p.simulate(p.buildOrdered())
	case "balanced", "peak", "random":
		res, err = p.runIncremental(strategy)
	default:
		return nil, fmt.Errorf("unknown strategy %q", strategy)
	}
	if err != nil {
		return nil, err
	}

	res.Duration = time.Since(started)
	return res, nil
}

// yearAtDay is the calendar year of the given day offset from the period start.
func (p *Planner) yearAtDay(day int) int {
	return p.startDate.AddDate(0, 0, day).Year()
}

// eligibleAtDay reports whether project i may start producing on the given
// day: its drilling, which takes DrillDays and ends that day, must not begin
// before the project's spud year.
func (p *Planner) eligibleAtDay(i, day int) bool {
	drillStartYear := p.yearAtDay(day - p.portfolio.Projects[i].DrillDays)
	return drillStartYear >= p.portfolio.Projects[i].SpudYear
}

func (p *Planner) entry(i, startDay int) SequenceEntry {
	pr := p.portfolio.Projects[i]
	return SequenceEntry{
		ProjectID:     pr.ID.String(),
		Name:          pr.Name,
		StartDay:      startDay,
		DrillStartDay: startDay - pr.DrillDays,
	}
}
