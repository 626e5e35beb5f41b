package credits

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository provides PostgreSQL backed persistence for customer credits.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// CreateCredit inserts a customer credit.
func (r *Repository) CreateCredit(ctx context.Context, credit CustomerCredit) (*CustomerCredit, error) {
	err := r.pool.QueryRow(ctx, `INSERT INTO customer_credits (customer_name, customer_phone, total_amount, credit_date, due_date, status, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`,
		credit.CustomerName, credit.CustomerPhone, credit.TotalAmount, credit.CreditDate, credit.DueDate, credit.Status, credit.CreatedAt,
	).Scan(&credit.ID)
	if err != nil {
		return nil, err
	}
	return &credit, nil
}

// GetCredit fetches a credit by id.
func (r *Repository) GetCredit(ctx context.Context, id int64) (*CustomerCredit, error) {
	var c CustomerCredit
	err := r.pool.QueryRow(ctx, `SELECT id, customer_name, customer_phone, total_amount, credit_date, due_date, status, created_at
FROM customer_credits WHERE id = $1`, id).Scan(
		&c.ID, &c.CustomerName, &c.CustomerPhone, &c.TotalAmount, &c.CreditDate, &c.DueDate, &c.Status, &c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

// ListCredits returns all credits, newest first.
func (r *Repository) ListCredits(ctx context.Context) ([]CustomerCredit, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, customer_name, customer_phone, total_amount, credit_date, due_date, status, created_at
FROM customer_credits ORDER BY credit_date DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var credits []CustomerCredit
	for rows.Next() {
		var c CustomerCredit
		if err := rows.Scan(&c.ID, &c.CustomerName, &c.CustomerPhone, &c.TotalAmount, &c.CreditDate, &c.DueDate, &c.Status, &c.CreatedAt); err != nil {
			return nil, err
		}
		credits = append(credits, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return credits, nil
}

// UpdateCreditStatus persists the derived status.
func (r *Repository) UpdateCreditStatus(ctx context.Context, id int64, status string) error {
	_, err := r.pool.Exec(ctx, `UPDATE customer_credits SET status = $2 WHERE id = $1`, id, status)
	return err
}

// DeleteCredit removes a credit row.
func (r *Repository) DeleteCredit(ctx context.Context, id int64) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM customer_credits WHERE id = $1`, id)
	return err
}

// CreatePayment inserts an instalment.
func (r *Repository) CreatePayment(ctx context.Context, payment CreditPayment) (*CreditPayment, error) {
	err := r.pool.QueryRow(ctx, `INSERT INTO credit_payments (credit_id, payment_amount, payment_date, payment_method)
VALUES ($1, $2, $3, $4) RETURNING id`,
		payment.CreditID, payment.PaymentAmount, payment.PaymentDate, payment.PaymentMethod,
	).Scan(&payment.ID)
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

// ListPayments returns the instalments for one credit.
func (r *Repository) ListPayments(ctx context.Context, creditID int64) ([]CreditPayment, error) {
	return r.queryPayments(ctx, `SELECT id, credit_id, payment_amount, payment_date, payment_method
FROM credit_payments WHERE credit_id = $1 ORDER BY payment_date`, creditID)
}

// ListAllPayments returns every instalment; callers group in memory.
func (r *Repository) ListAllPayments(ctx context.Context) ([]CreditPayment, error) {
	return r.queryPayments(ctx, `SELECT id, credit_id, payment_amount, payment_date, payment_method
FROM credit_payments ORDER BY payment_date`)
}

// DeletePaymentsByCredit removes all instalments for a credit.
func (r *Repository) DeletePaymentsByCredit(ctx context.Context, creditID int64) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM credit_payments WHERE credit_id = $1`, creditID)
	return err
}

func (r *Repository) queryPayments(ctx context.Context, query string, args ...any) ([]CreditPayment, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var payments []CreditPayment
	for rows.Next() {
		var p CreditPayment
		if err := rows.Scan(&p.ID, &p.CreditID, &p.PaymentAmount, &p.PaymentDate, &p.PaymentMethod); err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return payments, nil
}
