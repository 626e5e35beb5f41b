package finance

import (
	"log/slog"
	"time"

	"github.com/soma-erp/soma-erp/internal/investments"
)

// Dividend cycle constants. A cycle is complete only once its boundary has
// fully elapsed; partial cycles never pay.
const (
	cycleMonths = 6
	// monthApprox is the flat 30-day month used for elapsed-month math.
	// Deliberately not calendar-accurate; it matches the books the business
	// has always kept.
	monthApprox = 30 * 24 * time.Hour
)

// DividendLine is one investor row in the dividend table.
type DividendLine struct {
	InvestmentID     int64     `json:"investment_id"`
	Investor         string    `json:"investor"`
	Amount           float64   `json:"amount"`
	OwnershipPct     float64   `json:"ownership_pct"`
	MonthsSince      int       `json:"months_since"`
	PayoutCycles     int       `json:"payout_cycles"`
	DividendPerCycle float64   `json:"dividend_per_cycle"`
	TotalDividends   float64   `json:"total_dividends"`
	NextPayout       time.Time `json:"next_payout"`
}

// ComputeDividends builds the dividend table. Investments without a valid
// date are logged and skipped; one bad row never blocks the rest. Zero
// total investment yields zero ownership for every line, never NaN.
func ComputeDividends(rows []investments.Investment, totalProfit, totalInvestment float64, now time.Time, logger *slog.Logger) []DividendLine {
	if logger == nil {
		logger = slog.Default()
	}
	lines := make([]DividendLine, 0, len(rows))
	for _, inv := range rows {
		if !inv.HasValidDate() {
			logger.Warn("investment excluded from dividend table",
				slog.Int64("investment_id", inv.ID), slog.String("investor", inv.Investor))
			continue
		}
		investedOn := *inv.InvestedOn

		ownership := safePercent(inv.Amount, totalInvestment)
		months := int(now.Sub(investedOn) / monthApprox)
		if months < 0 {
			months = 0
		}
		cycles := months / cycleMonths
		// Half the full profit share per cycle: the allocation is
		// semiannual, not annual.
		perCycle := totalProfit * ownership / 100 / 2

		lines = append(lines, DividendLine{
			InvestmentID:     inv.ID,
			Investor:         inv.Investor,
			Amount:           inv.Amount,
			OwnershipPct:     ownership,
			MonthsSince:      months,
			PayoutCycles:     cycles,
			DividendPerCycle: perCycle,
			TotalDividends:   perCycle * float64(cycles),
			NextPayout:       nextPayout(investedOn, cycles, now),
		})
	}
	return lines
}

func nextPayout(investedOn time.Time, cycles int, now time.Time) time.Time {
	if investedOn.IsZero() {
		return now
	}
	return investedOn.AddDate(0, (cycles+1)*cycleMonths, 0)
}
