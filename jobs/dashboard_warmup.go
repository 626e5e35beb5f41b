package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/soma-erp/soma-erp/internal/finance"
	jobmetrics "github.com/soma-erp/soma-erp/internal/jobs"
)

var defaultJobMetrics = jobmetrics.NewMetrics(nil)

// DashboardWarmupJob recomputes the finance dashboard off the request
// path so the first morning visitor gets a cache hit.
type DashboardWarmupJob struct {
	Finance *finance.Service
	Logger  *slog.Logger
	Metrics *jobmetrics.Metrics
}

// NewDashboardWarmupJob wires the warmup handler.
func NewDashboardWarmupJob(financeSvc *finance.Service, logger *slog.Logger, metrics *jobmetrics.Metrics) *DashboardWarmupJob {
	return &DashboardWarmupJob{Finance: financeSvc, Logger: logger, Metrics: metrics}
}

// Handle processes TaskFinanceDashboardWarmup tasks.
func (j *DashboardWarmupJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil || j.Finance == nil {
		return errors.New("dashboard warmup: handler not configured")
	}
	var payload DashboardWarmupPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	if payload.Reason == "" {
		payload.Reason = "cron"
	}

	tracker := j.metrics().Track(TaskFinanceDashboardWarmup)
	var resultErr error
	defer func() {
		resultErr = tracker.End(resultErr)
	}()

	logger := j.logger().With(slog.String("reason", payload.Reason))
	logger.Info("starting dashboard warmup")

	jobCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	start := time.Now()
	dash, err := j.Finance.Refresh(jobCtx)
	if err != nil {
		resultErr = err
		logger.Error("dashboard warmup failed", slog.Any("error", err))
		return resultErr
	}

	logger.Info("completed dashboard warmup",
		slog.Int("health_score", dash.Health.Score),
		slog.Int("partial_collections", len(dash.Partial)),
		slog.Duration("duration", time.Since(start)))
	return resultErr
}

func (j *DashboardWarmupJob) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger.With(slog.String("job", TaskFinanceDashboardWarmup))
	}
	return slog.Default().With(slog.String("job", TaskFinanceDashboardWarmup))
}

func (j *DashboardWarmupJob) metrics() *jobmetrics.Metrics {
	if j.Metrics != nil {
		return j.Metrics
	}
	return defaultJobMetrics
}
