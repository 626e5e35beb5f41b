package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"

	"github.com/soma-erp/soma-erp/internal/app"
	"github.com/soma-erp/soma-erp/internal/credits"
	"github.com/soma-erp/soma-erp/internal/debts"
	"github.com/soma-erp/soma-erp/internal/expenses"
	"github.com/soma-erp/soma-erp/internal/finance"
	financehttp "github.com/soma-erp/soma-erp/internal/finance/http"
	"github.com/soma-erp/soma-erp/internal/investments"
	"github.com/soma-erp/soma-erp/internal/observability"
	"github.com/soma-erp/soma-erp/internal/platform/cache"
	"github.com/soma-erp/soma-erp/internal/platform/db"
	"github.com/soma-erp/soma-erp/internal/sales"
	"github.com/soma-erp/soma-erp/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
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

	metrics := observability.NewMetrics()

	salesRepo := sales.NewRepository(pool)
	salesService := sales.NewService(salesRepo, logger)

	expensesRepo := expenses.NewRepository(pool)
	expensesService := expenses.NewService(expensesRepo)

	debtsRepo := debts.NewRepository(pool)
	debtsService := debts.NewService(debtsRepo, logger)

	creditsRepo := credits.NewRepository(pool)
	creditsService := credits.NewService(creditsRepo, logger)

	investmentRepo := investments.NewRepository(pool)
	investmentService := investments.NewService(investmentRepo)

	financeCache := finance.NewCache(redisClient, cfg.FinanceCacheTTL)
	financeLoader := finance.NewLoader(salesService, expensesService, debtsService, investmentService, logger)
	financeService := finance.NewService(financeLoader, financeCache, logger)

	jobInspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer func() {
		if err := jobInspector.Close(); err != nil {
			logger.Warn("inspector close", slog.Any("error", err))
		}
	}()

	jobClient, err := jobs.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	if err != nil {
		logger.Error("job client", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := jobClient.Close(); err != nil {
			logger.Warn("job client close", slog.Any("error", err))
		}
	}()

	router := app.NewRouter(app.RouterParams{
		Logger:            logger,
		Config:            cfg,
		SalesHandler:      sales.NewHandler(logger, salesService, financeCache),
		ExpensesHandler:   expenses.NewHandler(logger, expensesService, financeCache),
		DebtsHandler:      debts.NewHandler(logger, debtsService, financeCache),
		CreditsHandler:    credits.NewHandler(logger, creditsService, financeCache),
		InvestmentHandler: investments.NewHandler(logger, investmentService, financeCache),
		FinanceHandler:    financehttp.NewHandler(logger, financeService),
		JobHandler:        jobs.NewHandler(jobInspector, jobClient, logger),
		Metrics:           metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
