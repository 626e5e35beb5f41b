package finance

import (
	"sort"
	"time"

	"github.com/soma-erp/soma-erp/internal/debts"
)

// CategoryShare is one slice of the expense breakdown.
type CategoryShare struct {
	Category   string  `json:"category"`
	Amount     float64 `json:"amount"`
	Percentage float64 `json:"percentage"`
}

// Stats are the scalar totals and time-windowed subsets derived from one
// snapshot. All percentages are guarded against zero denominators.
type Stats struct {
	TotalSales      float64 `json:"total_sales"`
	TotalProfit     float64 `json:"total_profit"`
	TotalExpenses   float64 `json:"total_expenses"`
	MonthlyExpenses float64 `json:"monthly_expenses"`
	TotalDebt       float64 `json:"total_debt"`
	ActiveDebtCount int     `json:"active_debt_count"`
	TotalInvestment float64 `json:"total_investment"`
	NetWorth        float64 `json:"net_worth"`

	TodayRevenue    float64 `json:"today_revenue"`
	TodayProfit     float64 `json:"today_profit"`
	YesterdayProfit float64 `json:"yesterday_profit"`
	MonthRevenue    float64 `json:"month_revenue"`
	MonthProfit     float64 `json:"month_profit"`

	ExpenseBreakdown []CategoryShare `json:"expense_breakdown"`
}

// Aggregate reduces a snapshot to Stats. It is a pure function of its
// inputs: the snapshot is never mutated and repeated calls yield identical
// results.
func Aggregate(snap Snapshot, now time.Time) Stats {
	var stats Stats

	for _, sale := range snap.Sales {
		stats.TotalSales += sale.TotalSale
		stats.TotalProfit += sale.Profit
		if sameDay(sale.SoldAt, now) {
			stats.TodayRevenue += sale.TotalSale
			stats.TodayProfit += sale.Profit
		}
		if sameDay(sale.SoldAt, now.AddDate(0, 0, -1)) {
			stats.YesterdayProfit += sale.Profit
		}
		if sameMonth(sale.SoldAt, now) {
			stats.MonthRevenue += sale.TotalSale
			stats.MonthProfit += sale.Profit
		}
	}

	// Cyber income counts in full as profit, and joins revenue windows by
	// its own date field.
	for _, svc := range snap.Services {
		stats.TotalProfit += svc.Amount
		if sameDay(svc.ServicedAt, now) {
			stats.TodayRevenue += svc.Amount
			stats.TodayProfit += svc.Amount
		}
		if sameDay(svc.ServicedAt, now.AddDate(0, 0, -1)) {
			stats.YesterdayProfit += svc.Amount
		}
		if sameMonth(svc.ServicedAt, now) {
			stats.MonthRevenue += svc.Amount
			stats.MonthProfit += svc.Amount
		}
	}

	byCategory := make(map[string]float64)
	for _, expense := range snap.Expenses {
		stats.TotalExpenses += expense.Amount
		byCategory[expense.Category] += expense.Amount
		if sameMonth(expense.IncurredOn, now) {
			stats.MonthlyExpenses += expense.Amount
		}
	}
	stats.ExpenseBreakdown = buildBreakdown(byCategory, stats.TotalExpenses)

	for _, debt := range snap.Debts {
		state := debts.Normalize(debt)
		stats.TotalDebt += state.Balance
		if state.Active {
			stats.ActiveDebtCount++
		}
	}

	for _, inv := range snap.Investments {
		stats.TotalInvestment += inv.Amount
	}

	stats.NetWorth = stats.TotalSales + stats.TotalInvestment - stats.TotalExpenses - stats.TotalDebt
	return stats
}

func buildBreakdown(byCategory map[string]float64, total float64) []CategoryShare {
	if len(byCategory) == 0 {
		return nil
	}
	shares := make([]CategoryShare, 0, len(byCategory))
	for category, amount := range byCategory {
		shares = append(shares, CategoryShare{
			Category:   category,
			Amount:     amount,
			Percentage: safePercent(amount, total),
		})
	}
	sort.Slice(shares, func(i, j int) bool {
		if shares[i].Amount != shares[j].Amount {
			return shares[i].Amount > shares[j].Amount
		}
		return shares[i].Category < shares[j].Category
	})
	return shares
}

// sameDay ignores records with missing dates: they stay in all-time sums
// but never enter a window.
func sameDay(t, ref time.Time) bool {
	if t.IsZero() {
		return false
	}
	ty, tm, td := t.Date()
	ry, rm, rd := ref.Date()
	return ty == ry && tm == rm && td == rd
}

func sameMonth(t, ref time.Time) bool {
	if t.IsZero() {
		return false
	}
	return t.Year() == ref.Year() && t.Month() == ref.Month()
}

func safePercent(value, total float64) float64 {
	if total == 0 {
		return 0
	}
	return value / total * 100
}
