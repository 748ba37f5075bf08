package expenses

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/zerodivida/zerodivida/internal/shared"
)

// Repository defines persistence operations for expenses.
type Repository interface {
	Create(ctx context.Context, expense Expense) (int64, error)
	ListByMonth(ctx context.Context, userID int64, month string) ([]Expense, error)
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

// Create inserts an expense row and returns its id.
func (r *PGRepository) Create(ctx context.Context, expense Expense) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx,
		`INSERT INTO expenses (user_id, title, amount, category, essential, month)
		 VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
		expense.UserID, expense.Title, expense.Amount, expense.Category, expense.Essential, expense.Month,
	).Scan(&id)
	return id, err
}

// ListByMonth returns the expenses for a user and month.
func (r *PGRepository) ListByMonth(ctx context.Context, userID int64, month string) ([]Expense, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, user_id, title, amount, category, essential, month, created_at
		 FROM expenses WHERE user_id = $1 AND month = $2 ORDER BY id`,
		userID, month,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	expenses := []Expense{}
	for rows.Next() {
		var e Expense
		if err := rows.Scan(&e.ID, &e.UserID, &e.Title, &e.Amount, &e.Category, &e.Essential, &e.Month, &e.CreatedAt); err != nil {
			return nil, err
		}
		expenses = append(expenses, e)
	}
	return expenses, rows.Err()
}

// Delete removes an expense by id.
func (r *PGRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM expenses WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// TotalsByMonth aggregates spending for a user and month, split by essential.
func (r *PGRepository) TotalsByMonth(ctx context.Context, userID int64, month string) (Totals, error) {
	var t Totals
	err := r.pool.QueryRow(ctx,
		`SELECT COALESCE(SUM(amount), 0),
		        COALESCE(SUM(amount) FILTER (WHERE essential), 0),
		        COALESCE(SUM(amount) FILTER (WHERE NOT essential), 0)
		 FROM expenses WHERE user_id = $1 AND month = $2`,
		userID, month,
	).Scan(&t.Total, &t.Essential, &t.NonEssential)
	return t, err
}

// CategoryTotalsByMonth aggregates spending per category, largest first.
func (r *PGRepository) CategoryTotalsByMonth(ctx context.Context, userID int64, month string) ([]CategoryTotal, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT category, COALESCE(SUM(amount), 0) AS total
		 FROM expenses WHERE user_id = $1 AND month = $2
		 GROUP BY category ORDER BY total DESC`,
		userID, month,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	totals := []CategoryTotal{}
	for rows.Next() {
		var ct CategoryTotal
		if err := rows.Scan(&ct.Category, &ct.Total); err != nil {
			return nil, err
		}
		totals = append(totals, ct)
	}
	return totals, rows.Err()
}

var _ Repository = (*PGRepository)(nil)
