package location

import (
	"time"

	"github.com/google/uuid"
)

// Location represents a row in the locations table.
type Location struct {
	ID        uuid.UUID
	Name      string
	Kind      string // "platform", "fpso", "rig" or "onshore"
	Berths    int    // bed capacity; 0 means no overnight stays
	CreatedAt time.Time
	UpdatedAt time.Time
}

// UpdateFields holds user-updatable fields on a location record.
// Nil fields are not updated.
type UpdateFields struct {
	Kind   *string
	Berths *int
}
