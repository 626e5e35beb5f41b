package finance

import (
	"context"
	"log/slog"
	"time"
)

// Dashboard is the full payload served to the frontend and fed to the
// CSV exporter. GeneratedAt records when the snapshot behind it was
// taken, which matters when the payload comes out of cache.
type Dashboard struct {
	Stats       Stats          `json:"stats"`
	Dividends   []DividendLine `json:"dividends"`
	Health      HealthReport   `json:"health"`
	Partial     []string       `json:"partial,omitempty"`
	GeneratedAt time.Time      `json:"generated_at"`
}

// Service orchestrates snapshot loading, aggregation, dividend math and
// health scoring behind the versioned cache.
type Service struct {
	loader *Loader
	cache  *Cache
	logger *slog.Logger
	now    func() time.Time
}

// NewService wires the dashboard service.
func NewService(loader *Loader, cache *Cache, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		loader: loader,
		cache:  cache,
		logger: logger,
		now:    time.Now,
	}
}

// Dashboard returns the aggregated dashboard, served from cache when the
// current version has one.
func (s *Service) Dashboard(ctx context.Context) (Dashboard, error) {
	key, err := s.cache.BuildKey(ctx, "finance", "dashboard")
	if err != nil {
		s.logger.Warn("dashboard cache unavailable, computing directly", slog.Any("error", err))
		return s.build(ctx)
	}

	var dash Dashboard
	err = s.cache.FetchJSON(ctx, key, &dash, func(ctx context.Context) (interface{}, error) {
		built, err := s.build(ctx)
		if err != nil {
			return nil, err
		}
		return built, nil
	})
	if err != nil {
		return Dashboard{}, err
	}
	return dash, nil
}

// Refresh recomputes the dashboard bypassing the cache and stores the
// result under the current version key. Used by the warmup job.
func (s *Service) Refresh(ctx context.Context) (Dashboard, error) {
	if err := s.cache.Bump(ctx); err != nil {
		s.logger.Warn("cache bump failed during refresh", slog.Any("error", err))
	}
	return s.Dashboard(ctx)
}

func (s *Service) build(ctx context.Context) (Dashboard, error) {
	snap, err := s.loader.Load(ctx)
	if err != nil {
		return Dashboard{}, err
	}

	now := s.now()
	stats := Aggregate(snap, now)
	dividends := ComputeDividends(snap.Investments, stats.TotalProfit, stats.TotalInvestment, now, s.logger)
	health := Evaluate(stats)

	if len(snap.Partial) > 0 {
		s.logger.Warn("dashboard built from partial snapshot", slog.Any("missing", snap.Partial))
	}

	return Dashboard{
		Stats:       stats,
		Dividends:   dividends,
		Health:      health,
		Partial:     snap.Partial,
		GeneratedAt: now,
	}, nil
}
