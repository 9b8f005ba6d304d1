package helicopter

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrHelicopterNotFound is returned when a helicopter record is not found.
var ErrHelicopterNotFound = errors.New("helicopter not found")

// ErrDuplicateTailNumber is returned when a helicopter with the same tail number already exists.
var ErrDuplicateTailNumber = errors.New("tail number already exists")

// ErrLocationNotFound is returned when the referenced base location does not exist.
var ErrLocationNotFound = errors.New("location not found")

// Repository provides CRUD operations on the helicopters table.
type Repository interface {
	Create(ctx context.Context, h *Helicopter) error
	GetByID(ctx context.Context, id uuid.UUID) (*Helicopter, error)
	List(ctx context.Context) ([]Helicopter, error)
	Update(ctx context.Context, id uuid.UUID, fields UpdateFields) (*Helicopter, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
