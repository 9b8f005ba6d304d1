package allocation

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrAllocationNotFound is returned when an allocation record is not found.
var ErrAllocationNotFound = errors.New("allocation not found")

// Repository provides operations on the allocations table.
type Repository interface {
	Create(ctx context.Context, a *Allocation) error
	GetByID(ctx context.Context, id uuid.UUID) (*Allocation, error)
	List(ctx context.Context) ([]Allocation, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
