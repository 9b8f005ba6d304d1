package team

import (
	"time"

	"github.com/google/uuid"
)

// Team represents a row in the teams table. A team is an indivisible unit of
// staff: it travels together and works at a single offshore location.
type Team struct {
	ID         uuid.UUID
	Name       string
	Size       int
	Specialty  string     // e.g. "drilling", "maintenance", "catering"
	LocationID *uuid.UUID // nil while the team is unassigned
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// UpdateFields holds user-updatable fields on a team record.
// Nil fields are not updated.
type UpdateFields struct {
	Size       *int
	Specialty  *string
	LocationID *uuid.UUID
}
