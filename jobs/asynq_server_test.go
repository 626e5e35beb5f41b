package jobs

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/require"
)

type stubEnqueuer struct {
	reason string
	err    error
}

func (s *stubEnqueuer) EnqueueDashboardWarmup(_ context.Context, reason string) (*asynq.TaskInfo, error) {
	s.reason = reason
	if s.err != nil {
		return nil, s.err
	}
	return &asynq.TaskInfo{ID: "task-1", Queue: QueueDefault}, nil
}

func newJobsRouter(enq WarmupEnqueuer) chi.Router {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := NewHandler(nil, enq, logger)
	r := chi.NewRouter()
	r.Route("/jobs", h.MountRoutes)
	return r
}

func TestWarmupEndpointEnqueuesManualRun(t *testing.T) {
	enq := &stubEnqueuer{}
	r := newJobsRouter(enq)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/jobs/warmup", nil))

	require.Equal(t, http.StatusAccepted, rec.Code)
	require.Equal(t, "manual", enq.reason)
	require.Contains(t, rec.Body.String(), "task-1")
}

func TestWarmupEndpointEnqueueFailure(t *testing.T) {
	enq := &stubEnqueuer{err: errors.New("redis down")}
	r := newJobsRouter(enq)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/jobs/warmup", nil))

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestWarmupEndpointWithoutEnqueuer(t *testing.T) {
	r := newJobsRouter(nil)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/jobs/warmup", nil))

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
