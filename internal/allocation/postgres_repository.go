package allocation

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository implements Repository using pgxpool. Inputs and
// manifests are stored as jsonb columns.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new Repository backed by the given connection pool.
func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &PostgresRepository{pool: pool}
}

const allocationColumns = `id, name, seed, scenarios, sigma, teams, fleet, flights,
	unassigned, empty_seats, expected_shortfall, worst_shortfall, created_at`

func scanAllocation(row pgx.Row, a *Allocation) error {
	return row.Scan(
		&a.ID, &a.Name, &a.Seed, &a.Scenarios, &a.Sigma, &a.Teams, &a.Fleet,
		&a.Flights, &a.Unassigned, &a.EmptySeats, &a.ExpectedShortfall,
		&a.WorstShortfall, &a.CreatedAt,
	)
}

// Create inserts a solved allocation run.
func (r *PostgresRepository) Create(ctx context.Context, a *Allocation) error {
	query := `
		INSERT INTO allocations (name, seed, scenarios, sigma, teams, fleet, flights,
			unassigned, empty_seats, expected_shortfall, worst_shortfall)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at`

	err := r.pool.QueryRow(ctx, query,
		a.Name, a.Seed, a.Scenarios, a.Sigma, a.Teams, a.Fleet, a.Flights,
		a.Unassigned, a.EmptySeats, a.ExpectedShortfall, a.WorstShortfall,
	).Scan(&a.ID, &a.CreatedAt)
	if err != nil {
		return fmt.Errorf("inserting allocation: %w", err)
	}

	return nil
}

// GetByID retrieves a single allocation by its UUID.
func (r *PostgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*Allocation, error) {
	query := `SELECT ` + allocationColumns + ` FROM allocations WHERE id = $1`

	var a Allocation
	if err := scanAllocation(r.pool.QueryRow(ctx, query, id), &a); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAllocationNotFound
		}
		return nil, fmt.Errorf("querying allocation: %w", err)
	}

	return &a, nil
}

// List retrieves all allocations, newest first.
func (r *PostgresRepository) List(ctx context.Context) ([]Allocation, error) {
	query := `SELECT ` + allocationColumns + ` FROM allocations ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing allocations: %w", err)
	}
	defer rows.Close()

	allocations := []Allocation{}
	for rows.Next() {
		var a Allocation
		if err := scanAllocation(rows, &a); err != nil {
			return nil, fmt.Errorf("scanning allocation row: %w", err)
		}
		allocations = append(allocations, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating allocation rows: %w", err)
	}

	return allocations, nil
}

// Delete removes an allocation by its UUID.
func (r *PostgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM allocations WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting allocation: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrAllocationNotFound
	}

	return nil
}
