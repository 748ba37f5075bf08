package goals

import (
	"context"

	"github.com/zerodivida/zerodivida/internal/shared"
)

// Service handles savings-goal business logic.
type Service struct {
	repo Repository
}

// NewService builds a Service instance.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create validates and stores a new goal.
func (s *Service) Create(ctx context.Context, goal Goal) (int64, error) {
	if goal.UserID <= 0 || goal.Title == "" || goal.TargetAmount <= 0 || goal.Deadline.IsZero() {
		return 0, shared.ErrMissingField
	}
	if goal.CurrentAmount < 0 {
		return 0, shared.ErrMissingField
	}
	return s.repo.Create(ctx, goal)
}

// ListByUser returns the goals for a user, nearest deadline first.
func (s *Service) ListByUser(ctx context.Context, userID int64) ([]Goal, error) {
	if userID <= 0 {
		return nil, shared.ErrMissingField
	}
	return s.repo.ListByUser(ctx, userID)
}

// Delete removes a goal owned by the user.
func (s *Service) Delete(ctx context.Context, id, userID int64) error {
	if userID <= 0 {
		return shared.ErrMissingField
	}
	return s.repo.Delete(ctx, id, userID)
}

// AddProgress adds a deposit to a goal owned by the user.
func (s *Service) AddProgress(ctx context.Context, id, userID int64, amount float64) error {
	if userID <= 0 || amount <= 0 {
		return shared.ErrMissingField
	}
	return s.repo.AddProgress(ctx, id, userID, amount)
}
