package plan

import (
	"time"

	"github.com/google/uuid"

	"github.com/fieldplan/fieldplan/internal/planner"
)

// Plan statuses.
const (
	StatusPending  = "pending"
	StatusRunning  = "running"
	StatusComplete = "complete"
	StatusError    = "error"
)

// Strategies accepted on plan creation. "ordered" is the deterministic
// sequencing scheme; the others pick projects incrementally during the run.
const (
	StrategyOrdered  = "ordered"
	StrategyBalanced = "balanced"
	StrategyPeak     = "peak"
	StrategyRandom   = "random"
)

// Plan represents a row in the plans table: one sequencing run over a
// portfolio. Results are populated by the runner once the plan completes.
type Plan struct {
	ID              uuid.UUID
	PortfolioID     uuid.UUID
	Name            string
	Strategy        string
	StartDate       time.Time
	HorizonDays     int
	Status          string
	Failure         *string
	Sequence        []planner.SequenceEntry
	Production      []float64
	TotalProduction *float64
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// ListFilter holds optional filters and pagination for listing plans.
type ListFilter struct {
	PortfolioID *uuid.UUID
	Status      *string
	Page        int // default 1
	Limit       int // default 20
}

// ListResult holds the result of a paginated list query.
type ListResult struct {
	Plans []Plan
	Total int
	Page  int
	Limit int
}

// StatusUpdate holds fields updated by the runner as a plan progresses.
type StatusUpdate struct {
	Status          string
	Failure         *string
	Sequence        []planner.SequenceEntry
	Production      []float64
	TotalProduction *float64
}
