package expenses

import "time"

// Expense is a single cost incurred by the shop.
type Expense struct {
	ID         int64     `json:"id" db:"id"`
	Category   string    `json:"category" db:"category"`
	Amount     float64   `json:"amount" db:"amount"`
	IncurredOn time.Time `json:"incurred_on" db:"incurred_on"`
	Note       string    `json:"note,omitempty" db:"note"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

// CreateExpenseRequest carries the fields accepted when recording an expense.
type CreateExpenseRequest struct {
	Category   string    `json:"category" validate:"required,max=100"`
	Amount     float64   `json:"amount" validate:"required,gt=0"`
	IncurredOn time.Time `json:"incurred_on"`
	Note       string    `json:"note,omitempty" validate:"max=500"`
}
