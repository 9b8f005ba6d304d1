package helicopter

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

// Create inserts a new helicopter record.
func (r *PostgresRepository) Create(ctx context.Context, h *Helicopter) error {
	query := `
		INSERT INTO helicopters (tail_number, model, seats, base_location_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at`

	err := r.pool.QueryRow(ctx, query, h.TailNumber, h.Model, h.Seats, h.BaseLocationID).
		Scan(&h.ID, &h.CreatedAt, &h.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505":
				return ErrDuplicateTailNumber
			case "23503":
				return ErrLocationNotFound
			}
		}
		return fmt.Errorf("inserting helicopter: %w", err)
	}

	return nil
}

// GetByID retrieves a single helicopter by its UUID.
func (r *PostgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*Helicopter, error) {
	query := `
		SELECT id, tail_number, model, seats, base_location_id, created_at, updated_at
		FROM helicopters
		WHERE id = $1`

	var h Helicopter
	err := r.pool.QueryRow(ctx, query, id).
		Scan(&h.ID, &h.TailNumber, &h.Model, &h.Seats, &h.BaseLocationID, &h.CreatedAt, &h.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrHelicopterNotFound
		}
		return nil, fmt.Errorf("querying helicopter: %w", err)
	}

	return &h, nil
}

// List retrieves all helicopters ordered by creation time.
func (r *PostgresRepository) List(ctx context.Context) ([]Helicopter, error) {
	query := `
		SELECT id, tail_number, model, seats, base_location_id, created_at, updated_at
		FROM helicopters
		ORDER BY created_at ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing helicopters: %w", err)
	}
	defer rows.Close()

	var fleet []Helicopter
	for rows.Next() {
		var h Helicopter
		err := rows.Scan(&h.ID, &h.TailNumber, &h.Model, &h.Seats, &h.BaseLocationID, &h.CreatedAt, &h.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("scanning helicopter row: %w", err)
		}
		fleet = append(fleet, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating helicopter rows: %w", err)
	}

	if fleet == nil {
		fleet = []Helicopter{}
	}

	return fleet, nil
}

// Update applies the non-nil fields and returns the updated helicopter.
func (r *PostgresRepository) Update(ctx context.Context, id uuid.UUID, fields UpdateFields) (*Helicopter, error) {
	query := `
		UPDATE helicopters
		SET model = COALESCE($2, model),
		    seats = COALESCE($3, seats),
		    base_location_id = COALESCE($4, base_location_id),
		    updated_at = now()
		WHERE id = $1
		RETURNING id, tail_number, model, seats, base_location_id, created_at, updated_at`

	var h Helicopter
	err := r.pool.QueryRow(ctx, query, id, fields.Model, fields.Seats, fields.BaseLocationID).
		Scan(&h.ID, &h.TailNumber, &h.Model, &h.Seats, &h.BaseLocationID, &h.CreatedAt, &h.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrHelicopterNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return nil, ErrLocationNotFound
		}
		return nil, fmt.Errorf("updating helicopter: %w", err)
	}

	return &h, nil
}

// Delete removes a helicopter by its UUID.
func (r *PostgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM helicopters WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting helicopter: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrHelicopterNotFound
	}

	return nil
}
