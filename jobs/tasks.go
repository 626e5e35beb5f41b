// Package jobs holds the background task definitions and the Asynq
// worker wiring.
package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the queue all Soma jobs run on.
	QueueDefault = "default"
	// TaskFinanceDashboardWarmup refreshes the cached finance dashboard.
	TaskFinanceDashboardWarmup = "finance:dashboard_warmup"
)

// DashboardWarmupPayload parameterises a warmup run.
type DashboardWarmupPayload struct {
	// Reason is recorded in logs: "cron", "manual", "post-deploy".
	Reason string `json:"reason"`
}

// NewDashboardWarmupTask constructs the warmup task.
func NewDashboardWarmupTask(reason string) (*asynq.Task, error) {
	data, err := json.Marshal(DashboardWarmupPayload{Reason: reason})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskFinanceDashboardWarmup, data), nil
}
