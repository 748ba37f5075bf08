package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/zerodivida/zerodivida/internal/dashboard"
)

// DashboardWarmupJob pre-populates summary caches for users active in a month.
type DashboardWarmupJob struct {
	Dashboard *dashboard.Service
	Pool      *pgxpool.Pool
	Logger    *slog.Logger
	clock     func() time.Time
}

// NewDashboardWarmupJob wires dependencies for the warmup handler.
func NewDashboardWarmupJob(dashboardSvc *dashboard.Service, pool *pgxpool.Pool, logger *slog.Logger) *DashboardWarmupJob {
	return &DashboardWarmupJob{
		Dashboard: dashboardSvc,
		Pool:      pool,
		Logger:    logger,
		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// Handle processes dashboard warmup tasks.
func (j *DashboardWarmupJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil || j.Dashboard == nil {
		return errors.New("dashboard warmup: handler not configured")
	}
	var payload DashboardWarmupPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	month := payload.Month
	if month == "" {
		month = j.clock().Format("2006-01")
	}

	logger := j.logger().With(slog.String("month", month))
	logger.Info("starting dashboard warmup")

	userIDs, err := j.activeUsers(ctx, month)
	if err != nil {
		logger.Error("load warmup users", slog.Any("error", err))
		return err
	}
	if len(userIDs) == 0 {
		logger.Info("no active users for warmup")
		return nil
	}

	start := j.clock()
	for _, userID := range userIDs {
		if err := j.warmUser(ctx, userID, month); err != nil {
			logger.Error("warm user", slog.Int64("user_id", userID), slog.Any("error", err))
			return err
		}
	}
	logger.Info("completed dashboard warmup", slog.Int("users", len(userIDs)), slog.Duration("duration", time.Since(start)))
	return nil
}

func (j *DashboardWarmupJob) warmUser(ctx context.Context, userID int64, month string) error {
	warmCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	_, err := j.Dashboard.GetSummary(warmCtx, userID, month)
	return err
}

func (j *DashboardWarmupJob) activeUsers(ctx context.Context, month string) ([]int64, error) {
	if j.Pool == nil {
		return nil, nil
	}
	rows, err := j.Pool.Query(ctx,
		`SELECT user_id FROM incomes WHERE month = $1
		 UNION
		 SELECT user_id FROM expenses WHERE month = $1`,
		month,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (j *DashboardWarmupJob) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger
	}
	return slog.Default()
}
