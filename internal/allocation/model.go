package allocation

import (
	"time"

	"github.com/google/uuid"

	"github.com/fieldplan/fieldplan/internal/logistics"
)

// Allocation represents a row in the allocations table: one solved crew
// transport run, kept with its inputs so results stay auditable.
type Allocation struct {
	ID                uuid.UUID
	Name              string
	Seed              int64
	Scenarios         int
	Sigma             float64
	Teams             []logistics.TeamRequest
	Fleet             []logistics.HelicopterSpec
	Flights           []logistics.Flight
	Unassigned        []string
	EmptySeats        int
	ExpectedShortfall float64
	WorstShortfall    int
	CreatedAt         time.Time
}
