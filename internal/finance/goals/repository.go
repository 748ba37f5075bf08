package goals

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/zerodivida/zerodivida/internal/shared"
)

// Repository defines persistence operations for savings goals.
type Repository interface {
	Create(ctx context.Context, goal Goal) (int64, error)
	ListByUser(ctx context.Context, userID int64) ([]Goal, error)
	Delete(ctx context.Context, id, userID int64) error
	AddProgress(ctx context.Context, id, userID int64, amount float64) error
}

// PGRepository implements Repository using PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

// Create inserts a goal row and returns its id.
func (r *PGRepository) Create(ctx context.Context, goal Goal) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx,
		`INSERT INTO goals (user_id, title, target_amount, current_amount, deadline)
		 VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		goal.UserID, goal.Title, goal.TargetAmount, goal.CurrentAmount, goal.Deadline,
	).Scan(&id)
	return id, err
}

// ListByUser returns the goals for a user, nearest deadline first.
func (r *PGRepository) ListByUser(ctx context.Context, userID int64) ([]Goal, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, user_id, title, target_amount, current_amount, deadline, created_at
		 FROM goals WHERE user_id = $1 ORDER BY deadline ASC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	goals := []Goal{}
	for rows.Next() {
		var g Goal
		if err := rows.Scan(&g.ID, &g.UserID, &g.Title, &g.TargetAmount, &g.CurrentAmount, &g.Deadline, &g.CreatedAt); err != nil {
			return nil, err
		}
		goals = append(goals, g)
	}
	return goals, rows.Err()
}

// Delete removes a goal, scoped to its owner.
func (r *PGRepository) Delete(ctx context.Context, id, userID int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM goals WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// AddProgress adds an amount to the saved total, scoped to the owner.
func (r *PGRepository) AddProgress(ctx context.Context, id, userID int64, amount float64) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE goals SET current_amount = current_amount + $1 WHERE id = $2 AND user_id = $3`,
		amount, id, userID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ Repository = (*PGRepository)(nil)
