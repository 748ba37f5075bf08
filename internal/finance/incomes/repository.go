package incomes

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/zerodivida/zerodivida/internal/shared"
)

// Repository defines persistence operations for incomes.
type Repository interface {
	Create(ctx context.Context, income Income) (int64, error)
	ListByMonth(ctx context.Context, userID int64, month string) ([]Income, error)
	Delete(ctx context.Context, id int64) error
}

// PGRepository implements Repository using PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

// Create inserts an income row and returns its id.
func (r *PGRepository) Create(ctx context.Context, income Income) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx,
		`INSERT INTO incomes (user_id, amount, month) VALUES ($1, $2, $3) RETURNING id`,
		income.UserID, income.Amount, income.Month,
	).Scan(&id)
	return id, err
}

// ListByMonth returns the incomes for a user and month.
func (r *PGRepository) ListByMonth(ctx context.Context, userID int64, month string) ([]Income, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, user_id, amount, month, created_at FROM incomes WHERE user_id = $1 AND month = $2 ORDER BY id`,
		userID, month,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	incomes := []Income{}
	for rows.Next() {
		var income Income
		if err := rows.Scan(&income.ID, &income.UserID, &income.Amount, &income.Month, &income.CreatedAt); err != nil {
			return nil, err
		}
		incomes = append(incomes, income)
	}
	return incomes, rows.Err()
}

// Delete removes an income by id.
func (r *PGRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM incomes WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// SumByMonth totals the income amounts for a user and month.
func (r *PGRepository) SumByMonth(ctx context.Context, userID int64, month string) (float64, error) {
	var total float64
	err := r.pool.QueryRow(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM incomes WHERE user_id = $1 AND month = $2`,
		userID, month,
	).Scan(&total)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return 0, err
	}
	return total, nil
}

var _ Repository = (*PGRepository)(nil)
