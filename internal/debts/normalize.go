package debts

import "strings"

// BalanceState is the canonical view of a debt resolved from whichever
// schema revision the row was written under.
type BalanceState struct {
	Balance float64 `json:"balance"`
	Active  bool    `json:"active"`
}

var (
	activeTokens  = map[string]bool{"active": true, "open": true, "ongoing": true, "unpaid": true, "pending": true}
	settledTokens = map[string]bool{"paid": true, "closed": true, "settled": true, "completed": true}
)

// Normalize resolves the outstanding balance and active state of a debt.
//
// Balance resolution, first match wins:
//  1. the first populated legacy balance column, in declaration order;
//  2. principal minus paid, clamped at zero, where principal falls back
//     through principal, loan_amount, amount and paid through paid_amount,
//     amount_paid;
//  3. zero.
//
// Active resolution, first match wins: recognised status token, then
// balance > 0, then explicit settlement flags present and false, then
// inactive. Status wins over balance even when they disagree.
func Normalize(d Debt) BalanceState {
	state := BalanceState{Balance: resolveBalance(d)}

	switch token := normalizeToken(d.Status); {
	case activeTokens[token]:
		state.Active = true
	case settledTokens[token]:
		state.Active = false
	case state.Balance > 0:
		state.Active = true
	default:
		state.Active = flagsIndicateActive(d)
	}
	return state
}

func resolveBalance(d Debt) float64 {
	for _, candidate := range []*float64{
		d.CurrentBalance,
		d.Balance,
		d.OutstandingBalance,
		d.Outstanding,
		d.AmountDue,
		d.Amount,
		d.RemainingBalance,
	} {
		if candidate != nil {
			return *candidate
		}
	}

	principal := d.Principal
	if principal == 0 {
		if d.LoanAmount != nil {
			principal = *d.LoanAmount
		} else if d.Amount != nil {
			principal = *d.Amount
		}
	}
	var paid float64
	if d.PaidAmount != nil {
		paid = *d.PaidAmount
	} else if d.AmountPaid != nil {
		paid = *d.AmountPaid
	}

	if balance := principal - paid; balance > 0 {
		return balance
	}
	return 0
}

func flagsIndicateActive(d Debt) bool {
	for _, flag := range []*bool{d.Paid, d.IsPaid, d.IsSettled} {
		if flag != nil && !*flag {
			return true
		}
	}
	return false
}

func normalizeToken(status string) string {
	return strings.ToLower(strings.TrimSpace(status))
}
