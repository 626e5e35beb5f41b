// Package export serializes aggregated financial data into downloadable
// report artifacts.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/soma-erp/soma-erp/internal/finance"
	"github.com/soma-erp/soma-erp/internal/shared"
)

// Filename returns the report artifact name for the given report date.
func Filename(asOf time.Time) string {
	return "Financial_Report_" + asOf.Format("2006-01-02") + ".csv"
}

// WriteFinancialCSV renders the dashboard as a flat CSV report. It is a
// pure function of its input; the only side effect is writing to w.
func WriteFinancialCSV(w io.Writer, dash finance.Dashboard) error {
	cw := csv.NewWriter(w)

	stats := dash.Stats

	rows := [][]string{
		{"EXECUTIVE SUMMARY"},
		{"Report Date", dash.GeneratedAt.Format("2006-01-02")},
		{"Financial Health Score", fmt.Sprintf("%d/100", dash.Health.Score)},
		{"Net Worth", shared.FormatKES(stats.NetWorth)},
		{"Total Revenue", shared.FormatKES(stats.TotalSales)},
		{"Total Profit", shared.FormatKES(stats.TotalProfit)},
		{},
		{"REVENUE ANALYSIS"},
		{"Today's Revenue", shared.FormatKES(stats.TodayRevenue)},
		{"Today's Profit", shared.FormatKES(stats.TodayProfit)},
		{"This Month's Revenue", shared.FormatKES(stats.MonthRevenue)},
		{"This Month's Profit", shared.FormatKES(stats.MonthProfit)},
		{},
		{"EXPENSE BREAKDOWN"},
		{"Total Expenses", shared.FormatKES(stats.TotalExpenses)},
		{"This Month's Expenses", shared.FormatKES(stats.MonthlyExpenses)},
	}
	for _, share := range stats.ExpenseBreakdown {
		rows = append(rows, []string{
			share.Category,
			shared.FormatKES(share.Amount),
			fmt.Sprintf("%.1f%%", share.Percentage),
		})
	}

	rows = append(rows,
		[]string{},
		[]string{"INVESTMENT OVERVIEW"},
		[]string{"Total Investment", shared.FormatKES(stats.TotalInvestment)},
	)
	for _, line := range dash.Dividends {
		rows = append(rows, []string{
			line.Investor,
			shared.FormatKES(line.Amount),
			fmt.Sprintf("%.1f%%", line.OwnershipPct),
			fmt.Sprintf("%d cycles", line.PayoutCycles),
			shared.FormatKES(line.TotalDividends),
		})
	}

	rows = append(rows,
		[]string{},
		[]string{"DEBT ANALYSIS"},
		[]string{"Total Outstanding Debt", shared.FormatKES(stats.TotalDebt)},
		[]string{"Active Debts", fmt.Sprintf("%d", stats.ActiveDebtCount)},
		[]string{},
		[]string{"KEY INSIGHTS"},
	)
	for _, insight := range dash.Health.Insights {
		rows = append(rows, []string{insight})
	}

	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("export: write csv: %w", err)
	}
	return nil
}
