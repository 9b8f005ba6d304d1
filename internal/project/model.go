package project

import (
	"time"

	"github.com/google/uuid"
)

// ProfilePoint is a single year of a project's expected production profile.
// Rate is a revenue proxy in the portfolio's common unit.
type ProfilePoint struct {
	Year int     `json:"year"`
	Rate float64 `json:"rate"`
}

// Project represents a row in the projects table. SpudYear is the earliest
// calendar year drilling may begin; DrillDays is how long drilling takes
// before production starts.
type Project struct {
	ID          uuid.UUID
	PortfolioID uuid.UUID
	Name        string
	SpudYear    int
	DrillDays   int
	Profile     []ProfilePoint
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// UpdateFields holds user-updatable fields on a project record.
// Nil fields are not updated.
type UpdateFields struct {
	SpudYear  *int
	DrillDays *int
	Profile   []ProfilePoint
}
