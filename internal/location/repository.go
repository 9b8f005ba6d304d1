package location

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrLocationNotFound is returned when a location record is not found.
var ErrLocationNotFound = errors.New("location not found")

// ErrDuplicateLocationName is returned when a location with the same name already exists.
var ErrDuplicateLocationName = errors.New("location name already exists")

// ErrLocationInUse is returned when attempting to delete a location that
// still has teams or helicopters referencing it.
var ErrLocationInUse = errors.New("location is referenced by teams or helicopters")

// Repository provides CRUD operations on the locations table.
type Repository interface {
	Create(ctx context.Context, loc *Location) error
	GetByID(ctx context.Context, id uuid.UUID) (*Location, error)
	GetByName(ctx context.Context, name string) (*Location, error)
	List(ctx context.Context) ([]Location, error)
	Update(ctx context.Context, id uuid.UUID, fields UpdateFields) (*Location, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
