package expenses

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository provides PostgreSQL backed persistence for expenses.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// CreateExpense inserts an expense.
func (r *Repository) CreateExpense(ctx context.Context, expense Expense) (*Expense, error) {
	err := r.pool.QueryRow(ctx, `INSERT INTO expenses (category, amount, incurred_on, note, created_at)
VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		expense.Category, expense.Amount, expense.IncurredOn, expense.Note, expense.CreatedAt,
	).Scan(&expense.ID)
	if err != nil {
		return nil, err
	}
	return &expense, nil
}

// ListExpenses returns expenses within the half-open range [from, to).
// Zero bounds are unbounded.
func (r *Repository) ListExpenses(ctx context.Context, from, to time.Time) ([]Expense, error) {
	query := `SELECT id, category, amount, incurred_on, note, created_at FROM expenses
WHERE ($1::timestamptz IS NULL OR incurred_on >= $1) AND ($2::timestamptz IS NULL OR incurred_on < $2)
ORDER BY incurred_on DESC, id DESC`
	rows, err := r.pool.Query(ctx, query, nullableTime(from), nullableTime(to))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var expenses []Expense
	for rows.Next() {
		var e Expense
		if err := rows.Scan(&e.ID, &e.Category, &e.Amount, &e.IncurredOn, &e.Note, &e.CreatedAt); err != nil {
			return nil, err
		}
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return expenses, nil
}

// DeleteExpense removes an expense, reporting whether a row matched.
func (r *Repository) DeleteExpense(ctx context.Context, id int64) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM expenses WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func nullableTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
