package portfolio

import (
	"time"

	"github.com/google/uuid"
)

// Portfolio represents a row in the portfolios table. It groups the drilling
// projects that compete for execution slots in a plan.
type Portfolio struct {
	ID          uuid.UUID
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// UpdateFields holds user-updatable fields on a portfolio record.
// Nil fields are not updated.
type UpdateFields struct {
	Description *string
}
