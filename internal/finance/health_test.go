package finance

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEvaluateNeutralStats(t *testing.T) {
	report := Evaluate(Stats{})

	// Zero debt is the only bonus a blank ledger earns.
	require.Equal(t, healthBase+zeroDebtBonus, report.Score)
}

func TestEvaluateScoreClampedAtHundred(t *testing.T) {
	report := Evaluate(Stats{
		NetWorth:        100000,
		MonthProfit:     5000,
		TodayProfit:     800,
		YesterdayProfit: 200,
		TotalDebt:       0,
		TotalInvestment: 50000,
	})

	require.Equal(t, 100, report.Score)
}

func TestEvaluateScoreClampedAtZero(t *testing.T) {
	report := Evaluate(Stats{
		NetWorth:        -50000,
		MonthProfit:     -8000,
		TotalDebt:       90000,
		TotalInvestment: 1000,
	})

	require.Equal(t, 0, report.Score)
}

func TestEvaluateLowDebtBonus(t *testing.T) {
	report := Evaluate(Stats{
		TotalDebt:       2000,
		TotalInvestment: 10000,
	})

	require.Equal(t, healthBase+lowDebtBonus, report.Score)
}

func TestEvaluateInsightOrdering(t *testing.T) {
	report := Evaluate(Stats{
		TodayProfit:     500,
		YesterdayProfit: 200,
		MonthProfit:     4000,
		MonthlyExpenses: 1000,
		TotalProfit:     3000,
		TotalInvestment: 10000,
		ExpenseBreakdown: []CategoryShare{
			{Category: "rent", Amount: 6000, Percentage: 60},
		},
	})

	require.Len(t, report.Insights, 4)
	require.Contains(t, report.Insights[0], "Profit is up KES 300")
	require.Contains(t, report.Insights[1], "cash-flow positive")
	require.Contains(t, report.Insights[2], "rent")
	require.Contains(t, report.Insights[3], "excellent")
}

func TestEvaluateDebtWarning(t *testing.T) {
	report := Evaluate(Stats{
		NetWorth:  10000,
		TotalDebt: 6000,
	})

	require.Contains(t, report.Insights, "Debt exceeds half of net worth; prioritise repayments.")
}

func TestEvaluateNegativeMomentumInsight(t *testing.T) {
	report := Evaluate(Stats{
		TodayProfit:     100,
		YesterdayProfit: 400,
	})

	require.Contains(t, report.Insights[0], "Profit is down KES 300")
}
