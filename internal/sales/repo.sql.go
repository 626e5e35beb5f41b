package sales

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrReceiptConflict signals a duplicate receipt number on insert.
var ErrReceiptConflict = errors.New("sales: receipt number already used")

// Repository provides PostgreSQL backed persistence for sales.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// CreateSale inserts a sale or reversal row.
func (r *Repository) CreateSale(ctx context.Context, sale Sale) (*Sale, error) {
	err := r.pool.QueryRow(ctx, `INSERT INTO sales (product_id, title, quantity_sold, total_sale, profit, payment_method, sold_by, sold_at, receipt)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`,
		sale.ProductID, sale.Title, sale.QuantitySold, sale.TotalSale, sale.Profit, sale.PaymentMethod, sale.SoldBy, sale.SoldAt, sale.Receipt,
	).Scan(&sale.ID)
	if err != nil {
		if receiptConflict(err) {
			return nil, ErrReceiptConflict
		}
		return nil, err
	}
	return &sale, nil
}

// receiptConflict reports whether err is a unique violation on the
// receipt column.
func receiptConflict(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.ConstraintName == "uq_sales_receipt"
}

// GetSale fetches a sale by id.
func (r *Repository) GetSale(ctx context.Context, id int64) (*Sale, error) {
	var s Sale
	err := r.pool.QueryRow(ctx, `SELECT id, product_id, title, quantity_sold, total_sale, profit, payment_method, sold_by, sold_at, receipt
FROM sales WHERE id = $1`, id).Scan(
		&s.ID, &s.ProductID, &s.Title, &s.QuantitySold, &s.TotalSale, &s.Profit, &s.PaymentMethod, &s.SoldBy, &s.SoldAt, &s.Receipt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

// ListSales returns sales, newest first, optionally bounded by date range.
func (r *Repository) ListSales(ctx context.Context, rng DateRange) ([]Sale, error) {
	query := `SELECT id, product_id, title, quantity_sold, total_sale, profit, payment_method, sold_by, sold_at, receipt
FROM sales WHERE ($1::timestamptz IS NULL OR sold_at >= $1) AND ($2::timestamptz IS NULL OR sold_at < $2) ORDER BY sold_at DESC, id DESC`
	rows, err := r.pool.Query(ctx, query, nullableTime(rng.From), nullableTime(rng.To))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var sales []Sale
	for rows.Next() {
		var s Sale
		if err := rows.Scan(&s.ID, &s.ProductID, &s.Title, &s.QuantitySold, &s.TotalSale, &s.Profit, &s.PaymentMethod, &s.SoldBy, &s.SoldAt, &s.Receipt); err != nil {
			return nil, err
		}
		sales = append(sales, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return sales, nil
}

// DeleteSale removes a sale row.
func (r *Repository) DeleteSale(ctx context.Context, id int64) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM sales WHERE id = $1`, id)
	return err
}

// CreateService inserts a cyber service income row.
func (r *Repository) CreateService(ctx context.Context, svc CyberService) (*CyberService, error) {
	err := r.pool.QueryRow(ctx, `INSERT INTO cyber_services (description, amount, serviced_at)
VALUES ($1, $2, $3) RETURNING id`, svc.Description, svc.Amount, svc.ServicedAt).Scan(&svc.ID)
	if err != nil {
		return nil, err
	}
	return &svc, nil
}

// ListServices returns cyber service income rows, newest first.
func (r *Repository) ListServices(ctx context.Context, rng DateRange) ([]CyberService, error) {
	query := `SELECT id, description, amount, serviced_at FROM cyber_services
WHERE ($1::timestamptz IS NULL OR serviced_at >= $1) AND ($2::timestamptz IS NULL OR serviced_at < $2) ORDER BY serviced_at DESC, id DESC`
	rows, err := r.pool.Query(ctx, query, nullableTime(rng.From), nullableTime(rng.To))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var services []CyberService
	for rows.Next() {
		var s CyberService
		if err := rows.Scan(&s.ID, &s.Description, &s.Amount, &s.ServicedAt); err != nil {
			return nil, err
		}
		services = append(services, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return services, nil
}

// DeleteService removes a cyber service row.
func (r *Repository) DeleteService(ctx context.Context, id int64) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM cyber_services WHERE id = $1`, id)
	return err
}

func nullableTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
