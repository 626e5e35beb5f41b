package credits

import "time"

// Credit statuses persisted by this service. Overdue is intentionally not
// among them: it is computed at read time only.
const (
	StatusActive  = "active"
	StatusPartial = "partial"
	StatusPaid    = "paid"
)

// CustomerCredit is goods taken on credit by a walk-in customer. Balance
// and amount paid are not stored; they are derived from payments.
type CustomerCredit struct {
	ID            int64      `json:"id" db:"id"`
	CustomerName  string     `json:"customer_name" db:"customer_name"`
	CustomerPhone string     `json:"customer_phone" db:"customer_phone"`
	TotalAmount   float64    `json:"total_amount" db:"total_amount"`
	CreditDate    time.Time  `json:"credit_date" db:"credit_date"`
	DueDate       *time.Time `json:"due_date,omitempty" db:"due_date"`
	Status        string     `json:"status" db:"status"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
}

// CreditPayment is an instalment against a customer credit.
type CreditPayment struct {
	ID            int64     `json:"id" db:"id"`
	CreditID      int64     `json:"credit_id" db:"credit_id"`
	PaymentAmount float64   `json:"payment_amount" db:"payment_amount"`
	PaymentDate   time.Time `json:"payment_date" db:"payment_date"`
	PaymentMethod string    `json:"payment_method" db:"payment_method"`
}

// CreateCreditRequest opens a customer credit line.
type CreateCreditRequest struct {
	CustomerName  string     `json:"customer_name" validate:"required,max=200"`
	CustomerPhone string     `json:"customer_phone" validate:"required,max=20"`
	TotalAmount   float64    `json:"total_amount" validate:"required,gt=0"`
	DueDate       *time.Time `json:"due_date,omitempty"`
}

// RecordPaymentRequest registers an instalment.
type RecordPaymentRequest struct {
	PaymentAmount float64   `json:"payment_amount" validate:"required,gt=0"`
	PaymentDate   time.Time `json:"payment_date"`
	PaymentMethod string    `json:"payment_method" validate:"required,oneof=cash mpesa card"`
}
