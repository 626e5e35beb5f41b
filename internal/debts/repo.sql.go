package debts

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository provides PostgreSQL backed persistence for debts.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const debtColumns = `id, lender, principal, interest_rate, started_on, due_on, status,
current_balance, balance, outstanding_balance, outstanding, amount_due, amount, remaining_balance,
loan_amount, paid_amount, amount_paid, paid, is_paid, is_settled, created_at, updated_at`

func scanDebt(row pgx.Row) (*Debt, error) {
	var d Debt
	err := row.Scan(
		&d.ID, &d.Lender, &d.Principal, &d.InterestRate, &d.StartedOn, &d.DueOn, &d.Status,
		&d.CurrentBalance, &d.Balance, &d.OutstandingBalance, &d.Outstanding, &d.AmountDue, &d.Amount, &d.RemainingBalance,
		&d.LoanAmount, &d.PaidAmount, &d.AmountPaid, &d.Paid, &d.IsPaid, &d.IsSettled, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// CreateDebt inserts a new debt.
func (r *Repository) CreateDebt(ctx context.Context, debt Debt) (*Debt, error) {
	err := r.pool.QueryRow(ctx, `INSERT INTO debts (lender, principal, interest_rate, started_on, due_on, status, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`,
		debt.Lender, debt.Principal, debt.InterestRate, debt.StartedOn, debt.DueOn, debt.Status, debt.CreatedAt, debt.UpdatedAt,
	).Scan(&debt.ID)
	if err != nil {
		return nil, err
	}
	return &debt, nil
}

// GetDebt fetches a debt by id.
func (r *Repository) GetDebt(ctx context.Context, id int64) (*Debt, error) {
	debt, err := scanDebt(r.pool.QueryRow(ctx, `SELECT `+debtColumns+` FROM debts WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return debt, nil
}

// ListDebts returns all debts ordered by start date.
func (r *Repository) ListDebts(ctx context.Context) ([]Debt, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+debtColumns+` FROM debts ORDER BY started_on DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var debts []Debt
	for rows.Next() {
		d, err := scanDebt(rows)
		if err != nil {
			return nil, err
		}
		debts = append(debts, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return debts, nil
}

// UpdateDebt applies partial edits.
func (r *Repository) UpdateDebt(ctx context.Context, id int64, req UpdateDebtRequest) error {
	_, err := r.pool.Exec(ctx, `UPDATE debts SET
lender = COALESCE($2, lender),
interest_rate = COALESCE($3, interest_rate),
due_on = COALESCE($4, due_on),
updated_at = now()
WHERE id = $1`, id, req.Lender, req.InterestRate, req.DueOn)
	return err
}

// SettleDebt persists the recomputed balance, paid amount and status after
// a repayment.
func (r *Repository) SettleDebt(ctx context.Context, id int64, balance, paidDelta float64, status string) error {
	_, err := r.pool.Exec(ctx, `UPDATE debts SET
current_balance = $2,
paid_amount = COALESCE(paid_amount, 0) + $3,
status = $4,
updated_at = now()
WHERE id = $1`, id, balance, paidDelta, status)
	return err
}

// DeleteDebt removes a debt row.
func (r *Repository) DeleteDebt(ctx context.Context, id int64) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM debts WHERE id = $1`, id)
	return err
}

// CreatePayment inserts a repayment.
func (r *Repository) CreatePayment(ctx context.Context, payment DebtPayment) (*DebtPayment, error) {
	err := r.pool.QueryRow(ctx, `INSERT INTO debt_payments (debt_id, amount, paid_on)
VALUES ($1, $2, $3) RETURNING id`, payment.DebtID, payment.Amount, payment.PaidOn).Scan(&payment.ID)
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

// ListPayments returns repayments for a debt ordered by payment date.
func (r *Repository) ListPayments(ctx context.Context, debtID int64) ([]DebtPayment, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, debt_id, amount, paid_on FROM debt_payments WHERE debt_id = $1 ORDER BY paid_on`, debtID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var payments []DebtPayment
	for rows.Next() {
		var p DebtPayment
		if err := rows.Scan(&p.ID, &p.DebtID, &p.Amount, &p.PaidOn); err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return payments, nil
}

// DeletePaymentsByDebt removes all repayments for a debt.
func (r *Repository) DeletePaymentsByDebt(ctx context.Context, debtID int64) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM debt_payments WHERE debt_id = $1`, debtID)
	return err
}
