package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskDashboardWarmup pre-populates dashboard summary caches.
	TaskDashboardWarmup = "dashboard:warmup"
)

// DashboardWarmupPayload scopes a warmup run to one month.
type DashboardWarmupPayload struct {
	Month string `json:"month"`
}

// NewDashboardWarmupTask constructs the warmup task. An empty month means
// the current month at execution time.
func NewDashboardWarmupTask(month string) (*asynq.Task, error) {
	data, err := json.Marshal(DashboardWarmupPayload{Month: month})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskDashboardWarmup, data), nil
}
