package investments

import "time"

// Investment is capital put into the business by an investor. InvestedOn
// is nullable: legacy rows imported from spreadsheets sometimes carry no
// parseable date, and those rows are excluded from dividend computation.
type Investment struct {
	ID         int64      `json:"id" db:"id"`
	Investor   string     `json:"investor" db:"investor"`
	Amount     float64    `json:"amount" db:"amount"`
	InvestedOn *time.Time `json:"invested_on,omitempty" db:"invested_on"`
	Category   string     `json:"category" db:"category"`
	CreatedAt  time.Time  `json:"created_at" db:"created_at"`
}

// HasValidDate reports whether the investment can enter dividend math.
func (i Investment) HasValidDate() bool {
	return i.InvestedOn != nil && !i.InvestedOn.IsZero()
}

// CreateInvestmentRequest carries the fields accepted when registering an
// investment.
type CreateInvestmentRequest struct {
	Investor   string     `json:"investor" validate:"required,max=200"`
	Amount     float64    `json:"amount" validate:"required,gt=0"`
	InvestedOn *time.Time `json:"invested_on,omitempty"`
	Category   string     `json:"category" validate:"max=100"`
}
