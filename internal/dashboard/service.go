package dashboard

import (
	"context"
	"strings"

	"golang.org/x/sync/singleflight"

	"github.com/zerodivida/zerodivida/internal/finance/expenses"
	"github.com/zerodivida/zerodivida/internal/shared"
)

// IncomeSource provides the income aggregate the summary needs.
type IncomeSource interface {
	SumByMonth(ctx context.Context, userID int64, month string) (float64, error)
}

// ExpenseSource provides the expense aggregates the summary needs.
type ExpenseSource interface {
	TotalsByMonth(ctx context.Context, userID int64, month string) (expenses.Totals, error)
	CategoryTotalsByMonth(ctx context.Context, userID int64, month string) ([]expenses.CategoryTotal, error)
}

// Summary is the month overview rendered by the dashboard page.
type Summary struct {
	Month               string                   `json:"month"`
	TotalIncome         float64                  `json:"totalIncome"`
	TotalExpense        float64                  `json:"totalExpense"`
	EssentialExpense    float64                  `json:"essentialExpense"`
	NonEssentialExpense float64                  `json:"nonEssentialExpense"`
	Balance             float64                  `json:"balance"`
	Categories          []expenses.CategoryTotal `json:"categories"`
	Tips                []string                 `json:"tips"`
}

// Service aggregates income and expense data into the dashboard summary,
// with cache-aware lookups collapsed under singleflight.
type Service struct {
	incomes  IncomeSource
	expenses ExpenseSource
	cache    *Cache
	group    singleflight.Group
}

// NewService wires the aggregate sources with the cache helper.
func NewService(incomes IncomeSource, expenseSrc ExpenseSource, cache *Cache) *Service {
	return &Service{incomes: incomes, expenses: expenseSrc, cache: cache}
}

// GetSummary resolves the month overview for a user.
func (s *Service) GetSummary(ctx context.Context, userID int64, month string) (Summary, error) {
	if userID <= 0 || month == "" {
		return Summary{}, shared.ErrMissingField
	}

	loader := func(ctx context.Context) (interface{}, error) {
		return s.buildSummary(ctx, userID, month)
	}

	if s.cache == nil {
		value, err := loader(ctx)
		if err != nil {
			return Summary{}, err
		}
		return value.(Summary), nil
	}

	key, err := s.cache.BuildKey(ctx, keySummary(userID, month)...)
	if err != nil {
		return Summary{}, err
	}

	// Concurrent misses for the same key build the summary once.
	result := s.group.DoChan(key, func() (interface{}, error) {
		var summary Summary
		if err := s.cache.FetchJSON(ctx, key, &summary, loader); err != nil {
			return Summary{}, err
		}
		return summary, nil
	})
	select {
	case <-ctx.Done():
		return Summary{}, ctx.Err()
	case res := <-result:
		if res.Err != nil {
			return Summary{}, res.Err
		}
		return res.Val.(Summary), nil
	}
}

func (s *Service) buildSummary(ctx context.Context, userID int64, month string) (Summary, error) {
	income, err := s.incomes.SumByMonth(ctx, userID, month)
	if err != nil {
		return Summary{}, err
	}
	totals, err := s.expenses.TotalsByMonth(ctx, userID, month)
	if err != nil {
		return Summary{}, err
	}
	categories, err := s.expenses.CategoryTotalsByMonth(ctx, userID, month)
	if err != nil {
		return Summary{}, err
	}

	summary := Summary{
		Month:               month,
		TotalIncome:         income,
		TotalExpense:        totals.Total,
		EssentialExpense:    totals.Essential,
		NonEssentialExpense: totals.NonEssential,
		Balance:             income - totals.Total,
		Categories:          categories,
	}
	summary.Tips = buildTips(summary)
	return summary, nil
}

// Invalidate drops every cached summary after a finance write.
func (s *Service) Invalidate(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}
	return s.cache.Bump(ctx)
}

// ValidMonth reports whether a month string looks like YYYY-MM.
func ValidMonth(month string) bool {
	if len(month) != 7 || month[4] != '-' {
		return false
	}
	for i, r := range month {
		if i == 4 {
			continue
		}
		if !strings.ContainsRune("0123456789", r) {
			return false
		}
	}
	return true
}
