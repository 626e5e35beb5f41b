package finance

import (
	"fmt"
	"math"

	"github.com/soma-erp/soma-erp/internal/shared"
)

// Health score weights and thresholds. These encode the product's voice,
// not financial truth; keep them in one place so tuning stays cheap.
const (
	healthBase = 50

	netWorthPositiveBonus   = 20
	netWorthNegativePenalty = 30
	monthProfitBonus        = 15
	monthProfitPenalty      = 20
	profitMomentumBonus     = 10
	zeroDebtBonus           = 15
	lowDebtBonus            = 10
	debtOverInvestPenalty   = 15

	lowDebtRatio    = 0.30
	debtWorryRatio  = 0.50
	roiExcellentPct = 20.0
	roiGoodPct      = 10.0
)

// HealthReport is the scored summary shown at the top of the dashboard.
type HealthReport struct {
	Score    int      `json:"score"`
	Insights []string `json:"insights"`
}

// Evaluate derives the 0-100 health score and the insight strings from
// aggregated stats. The score is clamped at both ends no matter how
// extreme the inputs are.
func Evaluate(stats Stats) HealthReport {
	score := healthBase

	switch {
	case stats.NetWorth > 0:
		score += netWorthPositiveBonus
	case stats.NetWorth < 0:
		score -= netWorthNegativePenalty
	}

	switch {
	case stats.MonthProfit > 0:
		score += monthProfitBonus
	case stats.MonthProfit < 0:
		score -= monthProfitPenalty
	}

	if stats.TodayProfit > stats.YesterdayProfit {
		score += profitMomentumBonus
	}

	switch {
	case stats.TotalDebt == 0:
		score += zeroDebtBonus
	case stats.TotalInvestment > 0 && stats.TotalDebt < lowDebtRatio*stats.TotalInvestment:
		score += lowDebtBonus
	}
	if stats.TotalDebt > stats.TotalInvestment {
		score -= debtOverInvestPenalty
	}

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	return HealthReport{Score: score, Insights: buildInsights(stats)}
}

func buildInsights(stats Stats) []string {
	var insights []string

	delta := stats.TodayProfit - stats.YesterdayProfit
	switch {
	case delta > 0:
		insights = append(insights, fmt.Sprintf("Profit is up %s compared to yesterday.", shared.FormatKES(delta)))
	case delta < 0:
		insights = append(insights, fmt.Sprintf("Profit is down %s compared to yesterday.", shared.FormatKES(math.Abs(delta))))
	default:
		insights = append(insights, "Profit is level with yesterday.")
	}

	monthlyNet := stats.MonthProfit - stats.MonthlyExpenses
	if monthlyNet >= 0 {
		insights = append(insights, fmt.Sprintf("This month the shop is cash-flow positive at %s.", shared.FormatKES(monthlyNet)))
	} else {
		insights = append(insights, fmt.Sprintf("This month expenses exceed profit by %s.", shared.FormatKES(math.Abs(monthlyNet))))
	}

	if len(stats.ExpenseBreakdown) > 0 {
		top := stats.ExpenseBreakdown[0]
		insights = append(insights, fmt.Sprintf("Biggest expense is %s at %.1f%% of all spending.", top.Category, top.Percentage))
	}

	if stats.NetWorth > 0 && stats.TotalDebt > debtWorryRatio*stats.NetWorth {
		insights = append(insights, "Debt exceeds half of net worth; prioritise repayments.")
	}

	roi := safePercent(stats.TotalProfit, stats.TotalInvestment)
	switch {
	case roi > roiExcellentPct:
		insights = append(insights, fmt.Sprintf("Return on investment is excellent at %.1f%%.", roi))
	case roi > roiGoodPct:
		insights = append(insights, fmt.Sprintf("Return on investment is good at %.1f%%.", roi))
	case roi > 0:
		insights = append(insights, fmt.Sprintf("Return on investment is moderate at %.1f%%.", roi))
	}

	return insights
}
