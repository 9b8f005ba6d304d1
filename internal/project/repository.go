package project

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrProjectNotFound is returned when a project record is not found.
var ErrProjectNotFound = errors.New("project not found")

// ErrDuplicateProjectName is returned when the portfolio already contains a
// project with the same name.
var ErrDuplicateProjectName = errors.New("project name already exists in portfolio")

// ErrPortfolioNotFound is returned when the referenced portfolio does not exist.
var ErrPortfolioNotFound = errors.New("portfolio not found")

// Repository provides CRUD operations on the projects table.
type Repository interface {
	Create(ctx context.Context, p *Project) error
	GetByID(ctx context.Context, id uuid.UUID) (*Project, error)
	ListByPortfolio(ctx context.Context, portfolioID uuid.UUID) ([]Project, error)
	Update(ctx context.Context, id uuid.UUID, fields UpdateFields) (*Project, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
