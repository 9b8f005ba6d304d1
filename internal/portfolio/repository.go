package portfolio

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrPortfolioNotFound is returned when a portfolio record is not found.
var ErrPortfolioNotFound = errors.New("portfolio not found")

// ErrDuplicatePortfolioName is returned when a portfolio with the same name already exists.
var ErrDuplicatePortfolioName = errors.New("portfolio name already exists")

// ErrPortfolioHasPlans is returned when attempting to delete a portfolio that
// still has plans referencing it.
var ErrPortfolioHasPlans = errors.New("portfolio has plans")

// Repository provides CRUD operations on the portfolios table.
type Repository interface {
	Create(ctx context.Context, p *Portfolio) error
	GetByID(ctx context.Context, id uuid.UUID) (*Portfolio, error)
	GetByName(ctx context.Context, name string) (*Portfolio, error)
	List(ctx context.Context) ([]Portfolio, error)
	Update(ctx context.Context, id uuid.UUID, fields UpdateFields) (*Portfolio, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
