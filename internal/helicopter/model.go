package helicopter

import (
	"time"

	"github.com/google/uuid"
)

// Helicopter represents a row in the helicopters table.
type Helicopter struct {
	ID             uuid.UUID
	TailNumber     string
	Model          string
	Seats          int // passenger seats per rotation, crew excluded
	BaseLocationID *uuid.UUID
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// UpdateFields holds user-updatable fields on a helicopter record.
// Nil fields are not updated.
type UpdateFields struct {
	Model          *string
	Seats          *int
	BaseLocationID *uuid.UUID
}
