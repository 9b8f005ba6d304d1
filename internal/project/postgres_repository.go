package project

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository implements Repository using pgxpool. The production
// profile is stored as a jsonb column and (un)marshalled by pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new Repository backed by the given connection pool.
func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &PostgresRepository{pool: pool}
}

// Create inserts a new project record.
func (r *PostgresRepository) Create(ctx context.Context, p *Project) error {
	query := `
		INSERT INTO projects (portfolio_id, name, spud_year, drill_days, profile)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`

	err := r.pool.QueryRow(ctx, query, p.PortfolioID, p.Name, p.SpudYear, p.DrillDays, p.Profile).
		Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505":
				return ErrDuplicateProjectName
			case "23503":
				return ErrPortfolioNotFound
			}
		}
		return fmt.Errorf("inserting project: %w", err)
	}

	return nil
}

// GetByID retrieves a single project by its UUID.
func (r *PostgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*Project, error) {
	query := `
		SELECT id, portfolio_id, name, spud_year, drill_days, profile, created_at, updated_at
		FROM projects
		WHERE id = $1`

	var p Project
	err := r.pool.QueryRow(ctx, query, id).
		Scan(&p.ID, &p.PortfolioID, &p.Name, &p.SpudYear, &p.DrillDays, &p.Profile, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("querying project: %w", err)
	}

	return &p, nil
}

// ListByPortfolio retrieves the projects of a portfolio ordered by creation time.
func (r *PostgresRepository) ListByPortfolio(ctx context.Context, portfolioID uuid.UUID) ([]Project, error) {
	query := `
		SELECT id, portfolio_id, name, spud_year, drill_days, profile, created_at, updated_at
		FROM projects
		WHERE portfolio_id = $1
		ORDER BY created_at ASC`

	rows, err := r.pool.Query(ctx, query, portfolioID)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	defer rows.Close()

	var projects []Project
	for rows.Next() {
		var p Project
		err := rows.Scan(&p.ID, &p.PortfolioID, &p.Name, &p.SpudYear, &p.DrillDays, &p.Profile, &p.CreatedAt, &p.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("scanning project row: %w", err)
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating project rows: %w", err)
	}

	if projects == nil {
		projects = []Project{}
	}

	return projects, nil
}

// Update applies the non-nil fields and returns the updated project.
// A nil Profile leaves the stored profile untouched.
func (r *PostgresRepository) Update(ctx context.Context, id uuid.UUID, fields UpdateFields) (*Project, error) {
	query := `
		UPDATE projects
		SET spud_year = COALESCE($2, spud_year),
		    drill_days = COALESCE($3, drill_days),
		    profile = COALESCE($4, profile),
		    updated_at = now()
		WHERE id = $1
		RETURNING id, portfolio_id, name, spud_year, drill_days, profile, created_at, updated_at`

	var profileArg any
	if fields.Profile != nil {
		profileArg = fields.Profile
	}

	var p Project
	err := r.pool.QueryRow(ctx, query, id, fields.SpudYear, fields.DrillDays, profileArg).
		Scan(&p.ID, &p.PortfolioID, &p.Name, &p.SpudYear, &p.DrillDays, &p.Profile, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("updating project: %w", err)
	}

	return &p, nil
}

// Delete removes a project by its UUID.
func (r *PostgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM projects WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting project: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrProjectNotFound
	}

	return nil
}
