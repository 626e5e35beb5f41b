package finance

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/soma-erp/soma-erp/internal/debts"
	"github.com/soma-erp/soma-erp/internal/expenses"
	"github.com/soma-erp/soma-erp/internal/investments"
	"github.com/soma-erp/soma-erp/internal/sales"
)

// Snapshot is the full set of records aggregation runs over, captured at
// one point in time and treated as immutable. Partial names collections
// that failed to load and were degraded to empty; a loaded-but-empty
// collection is not listed there.
type Snapshot struct {
	Sales       []sales.Sale
	Services    []sales.CyberService
	Expenses    []expenses.Expense
	Debts       []debts.Debt
	Investments []investments.Investment

	Partial []string
}

// SalesSource lists sale and cyber service rows.
type SalesSource interface {
	ListSales(ctx context.Context, rng sales.DateRange) ([]sales.Sale, error)
	ListServices(ctx context.Context, rng sales.DateRange) ([]sales.CyberService, error)
}

// ExpenseSource lists expense rows within a half-open range; zero bounds
// mean unbounded.
type ExpenseSource interface {
	ListExpenses(ctx context.Context, from, to time.Time) ([]expenses.Expense, error)
}

// DebtSource lists debts with their normalized views.
type DebtSource interface {
	ListDebts(ctx context.Context) ([]debts.View, error)
}

// InvestmentSource lists investments.
type InvestmentSource interface {
	ListInvestments(ctx context.Context) ([]investments.Investment, error)
}

// Loader assembles snapshots by fanning out over the five collections.
// A failed fetch never fails the snapshot: the collection degrades to
// empty and is recorded in Partial, so one broken table cannot blank the
// whole dashboard. Only a total failure of all five returns an error.
type Loader struct {
	sales       SalesSource
	expenses    ExpenseSource
	debts       DebtSource
	investments InvestmentSource
	logger      *slog.Logger
}

// NewLoader wires the collection sources.
func NewLoader(salesSrc SalesSource, expenseSrc ExpenseSource, debtSrc DebtSource, investmentSrc InvestmentSource, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{
		sales:       salesSrc,
		expenses:    expenseSrc,
		debts:       debtSrc,
		investments: investmentSrc,
		logger:      logger,
	}
}

// Load fetches all five collections concurrently.
func (l *Loader) Load(ctx context.Context) (Snapshot, error) {
	var snap Snapshot
	fetchErrs := make([]error, 5)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rows, err := l.sales.ListSales(gctx, sales.DateRange{})
		if err != nil {
			fetchErrs[0] = err
			return nil
		}
		snap.Sales = rows
		return nil
	})
	g.Go(func() error {
		rows, err := l.sales.ListServices(gctx, sales.DateRange{})
		if err != nil {
			fetchErrs[1] = err
			return nil
		}
		snap.Services = rows
		return nil
	})
	g.Go(func() error {
		rows, err := l.expenses.ListExpenses(gctx, time.Time{}, time.Time{})
		if err != nil {
			fetchErrs[2] = err
			return nil
		}
		snap.Expenses = rows
		return nil
	})
	g.Go(func() error {
		views, err := l.debts.ListDebts(gctx)
		if err != nil {
			fetchErrs[3] = err
			return nil
		}
		rows := make([]debts.Debt, 0, len(views))
		for _, v := range views {
			rows = append(rows, v.Debt)
		}
		snap.Debts = rows
		return nil
	})
	g.Go(func() error {
		rows, err := l.investments.ListInvestments(gctx)
		if err != nil {
			fetchErrs[4] = err
			return nil
		}
		snap.Investments = rows
		return nil
	})
	_ = g.Wait()

	names := [5]string{"sales", "services", "expenses", "debts", "investments"}
	failed := 0
	for i, err := range fetchErrs {
		if err == nil {
			continue
		}
		failed++
		snap.Partial = append(snap.Partial, names[i])
		l.logger.Warn("snapshot collection degraded to empty",
			slog.String("collection", names[i]), slog.Any("error", err))
	}
	if failed == len(fetchErrs) {
		return Snapshot{}, errors.New("finance: all snapshot collections failed to load")
	}
	return snap, nil
}
