package plan

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository implements Repository using pgxpool. Sequence and
// production results are stored as jsonb columns.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new Repository backed by the given connection pool.
func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &PostgresRepository{pool: pool}
}

const planColumns = `id, portfolio_id, name, strategy, start_date, horizon_days,
	status, failure, sequence, production, total_production, created_at, updated_at`

func scanPlan(row pgx.Row, p *Plan) error {
	return row.Scan(
		&p.ID, &p.PortfolioID, &p.Name, &p.Strategy, &p.StartDate, &p.HorizonDays,
		&p.Status, &p.Failure, &p.Sequence, &p.Production, &p.TotalProduction,
		&p.CreatedAt, &p.UpdatedAt,
	)
}

// Create inserts a new plan record in status pending.
func (r *PostgresRepository) Create(ctx context.Context, p *Plan) error {
	query := `
		INSERT INTO plans (portfolio_id, name, strategy, start_date, horizon_days, status)
		VALUES ($1, $2, $3, $4, $5, 'pending')
		RETURNING id, status, created_at, updated_at`

	err := r.pool.QueryRow(ctx, query, p.PortfolioID, p.Name, p.Strategy, p.StartDate, p.HorizonDays).
		Scan(&p.ID, &p.Status, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return ErrPortfolioNotFound
		}
		return fmt.Errorf("inserting plan: %w", err)
	}

	return nil
}

// GetByID retrieves a single plan by its UUID.
func (r *PostgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*Plan, error) {
	query := `SELECT ` + planColumns + ` FROM plans WHERE id = $1`

	var p Plan
	if err := scanPlan(r.pool.QueryRow(ctx, query, id), &p); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPlanNotFound
		}
		return nil, fmt.Errorf("querying plan: %w", err)
	}

	return &p, nil
}

// List retrieves plans matching the filter, newest first, with pagination.
func (r *PostgresRepository) List(ctx context.Context, filter ListFilter) (*ListResult, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 20
	}

	where := " WHERE 1=1"
	args := []any{}
	n := 1
	if filter.PortfolioID != nil {
		where += fmt.Sprintf(" AND portfolio_id = $%d", n)
		args = append(args, *filter.PortfolioID)
		n++
	}
	if filter.Status != nil {
		where += fmt.Sprintf(" AND status = $%d", n)
		args = append(args, *filter.Status)
		n++
	}

	var total int
	countQuery := "SELECT COUNT(*) FROM plans" + where
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("counting plans: %w", err)
	}

	listQuery := "SELECT " + planColumns + " FROM plans" + where +
		fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", n, n+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := r.pool.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("listing plans: %w", err)
	}
	defer rows.Close()

	plans := []Plan{}
	for rows.Next() {
		var p Plan
		if err := scanPlan(rows, &p); err != nil {
			return nil, fmt.Errorf("scanning plan row: %w", err)
		}
		plans = append(plans, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating plan rows: %w", err)
	}

	return &ListResult{
		Plans: plans,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

// UpdateStatus applies a runner status transition and stores any results.
// Completed plans are immutable: transitions away from complete are rejected
// by only matching rows that are not yet complete.
func (r *PostgresRepository) UpdateStatus(ctx context.Context, id uuid.UUID, su StatusUpdate) (*Plan, error) {
	query := `
		UPDATE plans
		SET status = $2,
		    failure = $3,
		    sequence = COALESCE($4, sequence),
		    production = COALESCE($5, production),
		    total_production = COALESCE($6, total_production),
		    updated_at = now()
		WHERE id = $1 AND status <> 'complete'
		RETURNING ` + planColumns

	var seqArg, prodArg any
	if su.Sequence != nil {
		seqArg = su.Sequence
	}
	if su.Production != nil {
		prodArg = su.Production
	}

	var p Plan
	row := r.pool.QueryRow(ctx, query, id, su.Status, su.Failure, seqArg, prodArg, su.TotalProduction)
	if err := scanPlan(row, &p); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPlanNotFound
		}
		return nil, fmt.Errorf("updating plan status: %w", err)
	}

	return &p, nil
}

// Delete removes a plan by its UUID.
func (r *PostgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM plans WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting plan: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrPlanNotFound
	}

	return nil
}
