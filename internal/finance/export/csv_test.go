package export

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/soma-erp/soma-erp/internal/finance"
)

func TestFilename(t *testing.T) {
	asOf := time.Date(2026, 3, 15, 18, 30, 0, 0, time.UTC)
	require.Equal(t, "Financial_Report_2026-03-15.csv", Filename(asOf))
}

func TestWriteFinancialCSV(t *testing.T) {
	dash := finance.Dashboard{
		Stats: finance.Stats{
			TotalSales:      15000,
			TotalProfit:     4000,
			TotalExpenses:   10000,
			MonthlyExpenses: 7000,
			TotalDebt:       6000,
			ActiveDebtCount: 2,
			TotalInvestment: 20000,
			NetWorth:        19000,
			TodayRevenue:    1200,
			TodayProfit:     500,
			MonthRevenue:    9000,
			MonthProfit:     2500,
			ExpenseBreakdown: []finance.CategoryShare{
				{Category: "rent", Amount: 6000, Percentage: 60},
				{Category: "internet", Amount: 4000, Percentage: 40},
			},
		},
		Dividends: []finance.DividendLine{
			{Investor: "Amina", Amount: 5000, OwnershipPct: 25, PayoutCycles: 2, TotalDividends: 1000},
		},
		Health: finance.HealthReport{
			Score:    75,
			Insights: []string{"Profit is up KES 300 compared to yesterday."},
		},
		GeneratedAt: time.Date(2026, 3, 15, 18, 30, 0, 0, time.UTC),
	}

	var buf bytes.Buffer
	require.NoError(t, WriteFinancialCSV(&buf, dash))
	out := buf.String()

	for _, header := range []string{
		"EXECUTIVE SUMMARY",
		"REVENUE ANALYSIS",
		"EXPENSE BREAKDOWN",
		"INVESTMENT OVERVIEW",
		"DEBT ANALYSIS",
		"KEY INSIGHTS",
	} {
		require.Contains(t, out, header)
	}

	require.Contains(t, out, "Report Date,2026-03-15")
	require.Contains(t, out, "Financial Health Score,75/100")
	require.Contains(t, out, `Net Worth,"KES 19,000"`)
	require.Contains(t, out, "rent,\"KES 6,000\",60.0%")
	require.Contains(t, out, "Amina,\"KES 5,000\",25.0%,2 cycles,\"KES 1,000\"")
	require.Contains(t, out, "Active Debts,2")
	require.Contains(t, out, "Profit is up KES 300 compared to yesterday.")

	// Section order matters to readers opening the file in a spreadsheet.
	require.Less(t, strings.Index(out, "EXECUTIVE SUMMARY"), strings.Index(out, "REVENUE ANALYSIS"))
	require.Less(t, strings.Index(out, "DEBT ANALYSIS"), strings.Index(out, "KEY INSIGHTS"))
}
