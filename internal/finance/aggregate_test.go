package finance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/soma-erp/soma-erp/internal/debts"
	"github.com/soma-erp/soma-erp/internal/expenses"
	"github.com/soma-erp/soma-erp/internal/investments"
	"github.com/soma-erp/soma-erp/internal/sales"
)

func f64(v float64) *float64 { return &v }

func TestAggregateCombinesSalesAndServices(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	snap := Snapshot{
		Sales: []sales.Sale{
			{TotalSale: 1000, Profit: 300, SoldAt: now},
			{TotalSale: 500, Profit: 150, SoldAt: now.AddDate(0, -2, 0)},
		},
		Services: []sales.CyberService{
			{Amount: 200, ServicedAt: now},
		},
	}

	stats := Aggregate(snap, now)

	require.InDelta(t, 1500.0, stats.TotalSales, 1e-9)
	require.InDelta(t, 650.0, stats.TotalProfit, 1e-9)
	require.InDelta(t, 1200.0, stats.TodayRevenue, 1e-9)
	require.InDelta(t, 500.0, stats.TodayProfit, 1e-9)
	require.InDelta(t, 1200.0, stats.MonthRevenue, 1e-9)
	require.InDelta(t, 500.0, stats.MonthProfit, 1e-9)
}

func TestAggregateYesterdayWindow(t *testing.T) {
	now := time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC)
	snap := Snapshot{
		Sales: []sales.Sale{
			{TotalSale: 400, Profit: 100, SoldAt: now.AddDate(0, 0, -1)},
		},
		Services: []sales.CyberService{
			{Amount: 50, ServicedAt: now.AddDate(0, 0, -1)},
		},
	}

	stats := Aggregate(snap, now)

	require.InDelta(t, 150.0, stats.YesterdayProfit, 1e-9)
	require.Zero(t, stats.TodayRevenue)
}

func TestAggregateZeroDatesStayOutOfWindows(t *testing.T) {
	now := time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC)
	snap := Snapshot{
		Sales: []sales.Sale{
			{TotalSale: 700, Profit: 250},
		},
	}

	stats := Aggregate(snap, now)

	require.InDelta(t, 700.0, stats.TotalSales, 1e-9)
	require.Zero(t, stats.TodayRevenue)
	require.Zero(t, stats.MonthRevenue)
}

func TestAggregateExpenseBreakdown(t *testing.T) {
	now := time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC)
	snap := Snapshot{
		Expenses: []expenses.Expense{
			{Category: "rent", Amount: 6000, IncurredOn: now},
			{Category: "electricity", Amount: 3000, IncurredOn: now.AddDate(0, -1, 0)},
			{Category: "internet", Amount: 1000, IncurredOn: now},
		},
	}

	stats := Aggregate(snap, now)

	require.InDelta(t, 10000.0, stats.TotalExpenses, 1e-9)
	require.InDelta(t, 7000.0, stats.MonthlyExpenses, 1e-9)

	require.Len(t, stats.ExpenseBreakdown, 3)
	require.Equal(t, "rent", stats.ExpenseBreakdown[0].Category)
	require.InDelta(t, 60.0, stats.ExpenseBreakdown[0].Percentage, 1e-9)
	require.Equal(t, "electricity", stats.ExpenseBreakdown[1].Category)
	require.Equal(t, "internet", stats.ExpenseBreakdown[2].Category)

	var sum float64
	for _, share := range stats.ExpenseBreakdown {
		sum += share.Percentage
	}
	require.InDelta(t, 100.0, sum, 1e-9)
}

func TestAggregateNoExpensesYieldsZeroPercentages(t *testing.T) {
	stats := Aggregate(Snapshot{}, time.Now())

	require.Zero(t, stats.TotalExpenses)
	require.Empty(t, stats.ExpenseBreakdown)
}

func TestAggregateDebtsUseNormalizedBalances(t *testing.T) {
	snap := Snapshot{
		Debts: []debts.Debt{
			{Status: "active", CurrentBalance: f64(6000)},
			{Status: "paid", CurrentBalance: f64(0)},
			{Principal: 5000, PaidAmount: f64(2000)},
		},
	}

	stats := Aggregate(snap, time.Now())

	require.InDelta(t, 9000.0, stats.TotalDebt, 1e-9)
	require.Equal(t, 2, stats.ActiveDebtCount)
}

func TestAggregateNetWorth(t *testing.T) {
	now := time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC)
	snap := Snapshot{
		Sales:       []sales.Sale{{TotalSale: 20000, Profit: 5000, SoldAt: now}},
		Expenses:    []expenses.Expense{{Category: "rent", Amount: 6000, IncurredOn: now}},
		Debts:       []debts.Debt{{Status: "active", CurrentBalance: f64(4000)}},
		Investments: []investments.Investment{{Investor: "Amina", Amount: 10000}},
	}

	stats := Aggregate(snap, now)

	require.InDelta(t, 20000.0, stats.TotalSales, 1e-9)
	require.InDelta(t, 10000.0, stats.TotalInvestment, 1e-9)
	require.InDelta(t, 20000.0+10000.0-6000.0-4000.0, stats.NetWorth, 1e-9)
}

func TestAggregateIsIdempotent(t *testing.T) {
	now := time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC)
	snap := Snapshot{
		Sales:    []sales.Sale{{TotalSale: 100, Profit: 40, SoldAt: now}},
		Expenses: []expenses.Expense{{Category: "rent", Amount: 30, IncurredOn: now}},
	}

	first := Aggregate(snap, now)
	second := Aggregate(snap, now)

	require.Equal(t, first, second)
}
