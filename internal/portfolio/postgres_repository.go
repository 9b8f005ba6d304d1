package portfolio

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository implements Repository using pgxpool.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new Repository backed by the given connection pool.
func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &PostgresRepository{pool: pool}
}

// Create inserts a new portfolio record.
func (r *PostgresRepository) Create(ctx context.Context, p *Portfolio) error {
	query := `
		INSERT INTO portfolios (name, description)
		VALUES ($1, $2)
		RETURNING id, created_at, updated_at`

	err := r.pool.QueryRow(ctx, query, p.Name, p.Description).
		Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicatePortfolioName
		}
		return fmt.Errorf("inserting portfolio: %w", err)
	}

	return nil
}

// GetByID retrieves a single portfolio by its UUID.
func (r *PostgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*Portfolio, error) {
	query := `
		SELECT id, name, description, created_at, updated_at
		FROM portfolios
		WHERE id = $1`

	var p Portfolio
	err := r.pool.QueryRow(ctx, query, id).
		Scan(&p.ID, &p.Name, &p.Description, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPortfolioNotFound
		}
		return nil, fmt.Errorf("querying portfolio: %w", err)
	}

	return &p, nil
}

// GetByName retrieves a single portfolio by its unique name.
func (r *PostgresRepository) GetByName(ctx context.Context, name string) (*Portfolio, error) {
	query := `
		SELECT id, name, description, created_at, updated_at
		FROM portfolios
		WHERE name = $1`

	var p Portfolio
	err := r.pool.QueryRow(ctx, query, name).
		Scan(&p.ID, &p.Name, &p.Description, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPortfolioNotFound
		}
		return nil, fmt.Errorf("querying portfolio by name: %w", err)
	}

	return &p, nil
}

// List retrieves all portfolios ordered by creation time.
func (r *PostgresRepository) List(ctx context.Context) ([]Portfolio, error) {
	query := `
		SELECT id, name, description, created_at, updated_at
		FROM portfolios
		ORDER BY created_at ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing portfolios: %w", err)
	}
	defer rows.Close()

	var portfolios []Portfolio
	for rows.Next() {
		var p Portfolio
		err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.CreatedAt, &p.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("scanning portfolio row: %w", err)
		}
		portfolios = append(portfolios, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating portfolio rows: %w", err)
	}

	if portfolios == nil {
		portfolios = []Portfolio{}
	}

	return portfolios, nil
}

// Update applies the non-nil fields and returns the updated portfolio.
func (r *PostgresRepository) Update(ctx context.Context, id uuid.UUID, fields UpdateFields) (*Portfolio, error) {
	query := `
		UPDATE portfolios
		SET description = COALESCE($2, description),
		    updated_at = now()
		WHERE id = $1
		RETURNING id, name, description, created_at, updated_at`

	var p Portfolio
	err := r.pool.QueryRow(ctx, query, id, fields.Description).
		Scan(&p.ID, &p.Name, &p.Description, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPortfolioNotFound
		}
		return nil, fmt.Errorf("updating portfolio: %w", err)
	}

	return &p, nil
}

// Delete removes a portfolio by its UUID. Projects cascade; plans restrict.
func (r *PostgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM portfolios WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return ErrPortfolioHasPlans
		}
		return fmt.Errorf("deleting portfolio: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrPortfolioNotFound
	}

	return nil
}
