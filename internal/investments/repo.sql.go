package investments

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository provides PostgreSQL backed persistence for investments.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// CreateInvestment inserts an investment.
func (r *Repository) CreateInvestment(ctx context.Context, inv Investment) (*Investment, error) {
	err := r.pool.QueryRow(ctx, `INSERT INTO investments (investor, amount, invested_on, category, created_at)
VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		inv.Investor, inv.Amount, inv.InvestedOn, inv.Category, inv.CreatedAt,
	).Scan(&inv.ID)
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

// ListInvestments returns all investments, oldest first.
func (r *Repository) ListInvestments(ctx context.Context) ([]Investment, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, investor, amount, invested_on, category, created_at
FROM investments ORDER BY invested_on NULLS LAST, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var investments []Investment
	for rows.Next() {
		var inv Investment
		if err := rows.Scan(&inv.ID, &inv.Investor, &inv.Amount, &inv.InvestedOn, &inv.Category, &inv.CreatedAt); err != nil {
			return nil, err
		}
		investments = append(investments, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return investments, nil
}

// DeleteInvestment removes an investment, reporting whether a row matched.
func (r *Repository) DeleteInvestment(ctx context.Context, id int64) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM investments WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
