package debts

import "time"

// Debt statuses persisted by this service. Historical rows may carry other
// free-text statuses; Normalize tolerates them all.
const (
	StatusActive  = "active"
	StatusPartial = "partial"
	StatusPaid    = "paid"
)

// Debt is a business loan. The schema has been through several revisions,
// so every legacy balance column is optional; use Normalize to resolve the
// canonical outstanding balance and active state.
type Debt struct {
	ID           int64      `json:"id" db:"id"`
	Lender       string     `json:"lender" db:"lender"`
	Principal    float64    `json:"principal" db:"principal"`
	InterestRate *float64   `json:"interest_rate,omitempty" db:"interest_rate"`
	StartedOn    time.Time  `json:"started_on" db:"started_on"`
	DueOn        *time.Time `json:"due_on,omitempty" db:"due_on"`
	Status       string     `json:"status" db:"status"`

	// Legacy balance columns, in probe order.
	CurrentBalance     *float64 `json:"current_balance,omitempty" db:"current_balance"`
	Balance            *float64 `json:"balance,omitempty" db:"balance"`
	OutstandingBalance *float64 `json:"outstanding_balance,omitempty" db:"outstanding_balance"`
	Outstanding        *float64 `json:"outstanding,omitempty" db:"outstanding"`
	AmountDue          *float64 `json:"amount_due,omitempty" db:"amount_due"`
	Amount             *float64 `json:"amount,omitempty" db:"amount"`
	RemainingBalance   *float64 `json:"remaining_balance,omitempty" db:"remaining_balance"`

	// Legacy paid columns.
	LoanAmount *float64 `json:"loan_amount,omitempty" db:"loan_amount"`
	PaidAmount *float64 `json:"paid_amount,omitempty" db:"paid_amount"`
	AmountPaid *float64 `json:"amount_paid,omitempty" db:"amount_paid"`

	// Legacy settlement flags.
	Paid      *bool `json:"paid,omitempty" db:"paid"`
	IsPaid    *bool `json:"is_paid,omitempty" db:"is_paid"`
	IsSettled *bool `json:"is_settled,omitempty" db:"is_settled"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Overdue reports whether the debt is past due at the given instant.
// Overdue is a view-time computation and is never persisted as a status.
func (d Debt) Overdue(now time.Time) bool {
	if d.DueOn == nil || d.DueOn.IsZero() {
		return false
	}
	switch normalizeToken(d.Status) {
	case "paid", "closed", "settled", "completed":
		return false
	}
	return d.DueOn.Before(now)
}

// DebtPayment is a repayment recorded against a debt.
type DebtPayment struct {
	ID     int64     `json:"id" db:"id"`
	DebtID int64     `json:"debt_id" db:"debt_id"`
	Amount float64   `json:"amount" db:"amount"`
	PaidOn time.Time `json:"paid_on" db:"paid_on"`
}

// CreateDebtRequest carries the fields accepted when registering a debt.
type CreateDebtRequest struct {
	Lender       string     `json:"lender" validate:"required,max=200"`
	Principal    float64    `json:"principal" validate:"required,gt=0"`
	InterestRate *float64   `json:"interest_rate,omitempty" validate:"omitempty,gte=0,lte=100"`
	StartedOn    time.Time  `json:"started_on" validate:"required"`
	DueOn        *time.Time `json:"due_on,omitempty"`
}

// UpdateDebtRequest carries partial updates applied to a debt.
type UpdateDebtRequest struct {
	Lender       *string    `json:"lender,omitempty" validate:"omitempty,max=200"`
	InterestRate *float64   `json:"interest_rate,omitempty" validate:"omitempty,gte=0,lte=100"`
	DueOn        *time.Time `json:"due_on,omitempty"`
}

// RecordPaymentRequest registers a repayment against a debt.
type RecordPaymentRequest struct {
	Amount float64   `json:"amount" validate:"required,gt=0"`
	PaidOn time.Time `json:"paid_on"`
}
