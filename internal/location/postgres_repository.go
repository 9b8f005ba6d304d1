package location

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

// Create inserts a new location record.
func (r *PostgresRepository) Create(ctx context.Context, loc *Location) error {
	query := `
		INSERT INTO locations (name, kind, berths)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at`

	err := r.pool.QueryRow(ctx, query, loc.Name, loc.Kind, loc.Berths).
		Scan(&loc.ID, &loc.CreatedAt, &loc.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateLocationName
		}
		return fmt.Errorf("inserting location: %w", err)
	}

	return nil
}

// GetByID retrieves a single location by its UUID.
func (r *PostgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*Location, error) {
	query := `
		SELECT id, name, kind, berths, created_at, updated_at
		FROM locations
		WHERE id = $1`

	var loc Location
	err := r.pool.QueryRow(ctx, query, id).
		Scan(&loc.ID, &loc.Name, &loc.Kind, &loc.Berths, &loc.CreatedAt, &loc.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrLocationNotFound
		}
		return nil, fmt.Errorf("querying location: %w", err)
	}

	return &loc, nil
}

// GetByName retrieves a single location by its unique name.
func (r *PostgresRepository) GetByName(ctx context.Context, name string) (*Location, error) {
	query := `
		SELECT id, name, kind, berths, created_at, updated_at
		FROM locations
		WHERE name = $1`

	var loc Location
	err := r.pool.QueryRow(ctx, query, name).
		Scan(&loc.ID, &loc.Name, &loc.Kind, &loc.Berths, &loc.CreatedAt, &loc.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrLocationNotFound
		}
		return nil, fmt.Errorf("querying location by name: %w", err)
	}

	return &loc, nil
}

// List retrieves all locations ordered by creation time.
func (r *PostgresRepository) List(ctx context.Context) ([]Location, error) {
	query := `
		SELECT id, name, kind, berths, created_at, updated_at
		FROM locations
		ORDER BY created_at ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing locations: %w", err)
	}
	defer rows.Close()

	var locs []Location
	for rows.Next() {
		var loc Location
		err := rows.Scan(&loc.ID, &loc.Name, &loc.Kind, &loc.Berths, &loc.CreatedAt, &loc.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("scanning location row: %w", err)
		}
		locs = append(locs, loc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating location rows: %w", err)
	}

	if locs == nil {
		locs = []Location{}
	}

	return locs, nil
}

// Update applies the non-nil fields and returns the updated location.
func (r *PostgresRepository) Update(ctx context.Context, id uuid.UUID, fields UpdateFields) (*Location, error) {
	query := `
		UPDATE locations
		SET kind = COALESCE($2, kind),
		    berths = COALESCE($3, berths),
		    updated_at = now()
		WHERE id = $1
		RETURNING id, name, kind, berths, created_at, updated_at`

	var loc Location
	err := r.pool.QueryRow(ctx, query, id, fields.Kind, fields.Berths).
		Scan(&loc.ID, &loc.Name, &loc.Kind, &loc.Berths, &loc.CreatedAt, &loc.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrLocationNotFound
		}
		return nil, fmt.Errorf("updating location: %w", err)
	}

	return &loc, nil
}

// Delete removes a location by its UUID. Returns ErrLocationInUse if teams
// or helicopters still reference it (FK RESTRICT).
func (r *PostgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM locations WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return ErrLocationInUse
		}
		return fmt.Errorf("deleting location: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrLocationNotFound
	}

	return nil
}
