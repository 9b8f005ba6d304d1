package plan

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrPlanNotFound is returned when a plan record is not found.
var ErrPlanNotFound = errors.New("plan not found")

// ErrPortfolioNotFound is returned when the referenced portfolio does not exist.
var ErrPortfolioNotFound = errors.New("portfolio not found")

// Repository provides operations on the plans table.
type Repository interface {
	Create(ctx context.Context, p *Plan) error
	GetByID(ctx context.Context, id uuid.UUID) (*Plan, error)
	List(ctx context.Context, filter ListFilter) (*ListResult, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, su StatusUpdate) (*Plan, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
