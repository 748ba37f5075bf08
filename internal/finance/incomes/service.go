package incomes

import (
	"context"

	"github.com/zerodivida/zerodivida/internal/shared"
)

// Invalidator drops derived caches after a write.
type Invalidator interface {
	Invalidate(ctx context.Context) error
}

// Service handles income business logic.
type Service struct {
	repo        Repository
	invalidator Invalidator
}

// NewService builds a Service instance. The invalidator may be nil.
func NewService(repo Repository, invalidator Invalidator) *Service {
	return &Service{repo: repo, invalidator: invalidator}
}

// Create validates and stores a new income entry.
func (s *Service) Create(ctx context.Context, income Income) (int64, error) {
	if income.UserID <= 0 || income.Amount <= 0 || income.Month == "" {
		return 0, shared.ErrMissingField
	}
	id, err := s.repo.Create(ctx, income)
	if err != nil {
		return 0, err
	}
	s.invalidate(ctx)
	return id, nil
}

func (s *Service) invalidate(ctx context.Context) {
	if s.invalidator == nil {
		return
	}
	// Stale summaries expire by TTL anyway; a failed bump is not fatal.
	_ = s.invalidator.Invalidate(ctx)
}

// ListByMonth returns the incomes for a user and month.
func (s *Service) ListByMonth(ctx context.Context, userID int64, month string) ([]Income, error) {
	if userID <= 0 || month == "" {
		return nil, shared.ErrMissingField
	}
	return s.repo.ListByMonth(ctx, userID, month)
}

// Delete removes an income by id.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}
