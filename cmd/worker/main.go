package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"

	"github.com/soma-erp/soma-erp/internal/app"
	"github.com/soma-erp/soma-erp/internal/debts"
	"github.com/soma-erp/soma-erp/internal/expenses"
	"github.com/soma-erp/soma-erp/internal/finance"
	"github.com/soma-erp/soma-erp/internal/investments"
	"github.com/soma-erp/soma-erp/internal/platform/cache"
	"github.com/soma-erp/soma-erp/internal/platform/db"
	"github.com/soma-erp/soma-erp/internal/sales"
	"github.com/soma-erp/soma-erp/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping worker startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	salesService := sales.NewService(sales.NewRepository(pool), logger)
	expensesService := expenses.NewService(expenses.NewRepository(pool))
	debtsService := debts.NewService(debts.NewRepository(pool), logger)
	investmentService := investments.NewService(investments.NewRepository(pool))

	financeCache := finance.NewCache(redisClient, cfg.FinanceCacheTTL)
	financeLoader := finance.NewLoader(salesService, expensesService, debtsService, investmentService, logger)
	financeService := finance.NewService(financeLoader, financeCache, logger)

	warmupJob := jobs.NewDashboardWarmupJob(financeService, logger, nil)

	warmupTask, err := jobs.NewDashboardWarmupTask("cron")
	if err != nil {
		logger.Error("build warmup task", slog.Any("error", err))
		os.Exit(1)
	}

	worker, err := jobs.NewWorker(jobs.WorkerConfig{
		RedisOpts: asynq.RedisClientOpt{Addr: cfg.RedisAddr},
		Logger:    logger,
		Handlers: []jobs.TaskHandler{
			{Type: jobs.TaskFinanceDashboardWarmup, Handler: warmupJob.Handle},
		},
		Cron: []jobs.CronRegistration{
			{Spec: "15 5 * * *", Task: warmupTask, Options: []asynq.Option{asynq.MaxRetry(3)}},
		},
	})
	if err != nil {
		logger.Error("init worker", slog.Any("error", err))
		os.Exit(1)
	}

	if err := worker.Run(ctx); err != nil && err != context.Canceled {
		logger.Error("worker run", slog.Any("error", err))
		os.Exit(1)
	}
}
