package debts

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func fptr(v float64) *float64 { return &v }
func bptr(v bool) *bool       { return &v }

func TestNormalizeUsesFirstExplicitBalanceColumn(t *testing.T) {
	tests := []struct {
		name string
		debt Debt
		want float64
	}{
		{"current_balance", Debt{CurrentBalance: fptr(700)}, 700},
		{"balance", Debt{Balance: fptr(650)}, 650},
		{"outstanding_balance", Debt{OutstandingBalance: fptr(600)}, 600},
		{"outstanding", Debt{Outstanding: fptr(550)}, 550},
		{"amount_due", Debt{AmountDue: fptr(500)}, 500},
		{"amount", Debt{Amount: fptr(450)}, 450},
		{"remaining_balance", Debt{RemainingBalance: fptr(400)}, 400},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Normalize(tt.debt).Balance)
		})
	}
}

func TestNormalizeBalanceColumnOrderWins(t *testing.T) {
	debt := Debt{
		CurrentBalance:   fptr(100),
		Balance:          fptr(200),
		RemainingBalance: fptr(300),
	}
	require.Equal(t, 100.0, Normalize(debt).Balance)
}

func TestNormalizeExplicitZeroBalanceIsRespected(t *testing.T) {
	// A populated zero column stops the probe; principal is not consulted.
	debt := Debt{CurrentBalance: fptr(0), Principal: 10000}
	state := Normalize(debt)
	require.Equal(t, 0.0, state.Balance)
	require.False(t, state.Active)
}

func TestNormalizeFallsBackToPrincipalMinusPaid(t *testing.T) {
	// Scenario: principal 10000, one 4000 repayment reflected in paid_amount.
	debt := Debt{Principal: 10000, PaidAmount: fptr(4000), Status: "active"}
	state := Normalize(debt)
	require.Equal(t, 6000.0, state.Balance)
	require.True(t, state.Active)
}

func TestNormalizeFullyRepaidWithoutStatus(t *testing.T) {
	// Scenario: principal 5000 fully repaid, status column absent.
	debt := Debt{Principal: 5000, PaidAmount: fptr(5000)}
	state := Normalize(debt)
	require.Equal(t, 0.0, state.Balance)
	require.False(t, state.Active)
}

func TestNormalizeBalanceClampedAtZero(t *testing.T) {
	debt := Debt{Principal: 1000, AmountPaid: fptr(1500)}
	require.Equal(t, 0.0, Normalize(debt).Balance)
}

func TestNormalizePrincipalFallbackChain(t *testing.T) {
	t.Run("loan_amount", func(t *testing.T) {
		debt := Debt{LoanAmount: fptr(8000), PaidAmount: fptr(3000)}
		require.Equal(t, 5000.0, Normalize(debt).Balance)
	})
	t.Run("paid_amount preferred over amount_paid", func(t *testing.T) {
		debt := Debt{Principal: 9000, PaidAmount: fptr(1000), AmountPaid: fptr(2000)}
		require.Equal(t, 8000.0, Normalize(debt).Balance)
	})
	t.Run("no numeric fields at all", func(t *testing.T) {
		require.Equal(t, 0.0, Normalize(Debt{}).Balance)
	})
}

func TestNormalizeStatusTokens(t *testing.T) {
	activeStatuses := []string{"active", "open", "ongoing", "unpaid", "pending", " Active ", "OPEN"}
	for _, status := range activeStatuses {
		t.Run(status, func(t *testing.T) {
			require.True(t, Normalize(Debt{Status: status}).Active)
		})
	}
	settledStatuses := []string{"paid", "closed", "settled", "completed", "PAID "}
	for _, status := range settledStatuses {
		t.Run(status, func(t *testing.T) {
			debt := Debt{Status: status, CurrentBalance: fptr(500)}
			require.False(t, Normalize(debt).Active)
		})
	}
}

func TestNormalizeStatusWinsOverBalance(t *testing.T) {
	// Observed legacy ordering: a recognised status token overrides the
	// computed balance even when they disagree.
	debt := Debt{Status: "closed", CurrentBalance: fptr(2500)}
	state := Normalize(debt)
	require.False(t, state.Active)
	require.Equal(t, 2500.0, state.Balance)
}

func TestNormalizeUnknownStatusFallsThroughToBalance(t *testing.T) {
	debt := Debt{Status: "wekesa-loan", Principal: 3000}
	require.True(t, Normalize(debt).Active)
}

func TestNormalizeSettlementFlags(t *testing.T) {
	t.Run("false flag means active", func(t *testing.T) {
		debt := Debt{Paid: bptr(false)}
		require.True(t, Normalize(debt).Active)
	})
	t.Run("is_paid false means active", func(t *testing.T) {
		debt := Debt{IsPaid: bptr(false)}
		require.True(t, Normalize(debt).Active)
	})
	t.Run("is_settled false means active", func(t *testing.T) {
		debt := Debt{IsSettled: bptr(false)}
		require.True(t, Normalize(debt).Active)
	})
	t.Run("true flag leaves debt inactive", func(t *testing.T) {
		debt := Debt{Paid: bptr(true)}
		require.False(t, Normalize(debt).Active)
	})
	t.Run("absent flags default inactive", func(t *testing.T) {
		require.False(t, Normalize(Debt{}).Active)
	})
}

func TestNormalizeBalanceNeverNegative(t *testing.T) {
	debts := []Debt{
		{Principal: 100, PaidAmount: fptr(10000)},
		{LoanAmount: fptr(50), AmountPaid: fptr(60)},
		{},
	}
	for _, debt := range debts {
		require.GreaterOrEqual(t, Normalize(debt).Balance, 0.0)
	}
}
