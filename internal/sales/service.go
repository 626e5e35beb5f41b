package sales

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/soma-erp/soma-erp/internal/shared"
)

// ErrNotFound indicates the requested sale does not exist.
var ErrNotFound = fmt.Errorf("sales: %w", shared.ErrNotFound)

// RepositoryPort defines data access methods for sales and cyber services.
type RepositoryPort interface {
	CreateSale(ctx context.Context, sale Sale) (*Sale, error)
	GetSale(ctx context.Context, id int64) (*Sale, error)
	ListSales(ctx context.Context, rng DateRange) ([]Sale, error)
	DeleteSale(ctx context.Context, id int64) error

	CreateService(ctx context.Context, svc CyberService) (*CyberService, error)
	ListServices(ctx context.Context, rng DateRange) ([]CyberService, error)
	DeleteService(ctx context.Context, id int64) error
}

// Service handles sales business logic.
type Service struct {
	repo   RepositoryPort
	logger *slog.Logger
	now    func() time.Time
}

// NewService builds a Service instance.
func NewService(repo RepositoryPort, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, logger: logger, now: time.Now}
}

// RecordSale persists one till transaction.
func (s *Service) RecordSale(ctx context.Context, req CreateSaleRequest) (*Sale, error) {
	if req.QuantitySold <= 0 {
		return nil, fmt.Errorf("sales: quantity must be positive: %w", shared.ErrValidation)
	}
	if req.TotalSale < 0 {
		return nil, fmt.Errorf("sales: total must not be negative: %w", shared.ErrValidation)
	}
	sale := Sale{
		ProductID:     req.ProductID,
		Title:         req.Title,
		QuantitySold:  req.QuantitySold,
		TotalSale:     req.TotalSale,
		Profit:        req.Profit,
		PaymentMethod: req.PaymentMethod,
		SoldBy:        req.SoldBy,
		SoldAt:        s.now(),
		Receipt:       newReceipt(),
	}
	return s.repo.CreateSale(ctx, sale)
}

// RecordReturn inserts a compensating reversal row against an existing
// sale. Quantity, total and profit are negated so all-time aggregates stay
// consistent without touching the original row.
func (s *Service) RecordReturn(ctx context.Context, saleID int64) (*Sale, error) {
	original, err := s.repo.GetSale(ctx, saleID)
	if err != nil {
		return nil, err
	}
	if original == nil {
		return nil, ErrNotFound
	}
	if original.QuantitySold < 0 {
		return nil, fmt.Errorf("sales: cannot return a reversal row: %w", shared.ErrInvalidStatus)
	}
	reversal := Sale{
		ProductID:     original.ProductID,
		Title:         original.Title,
		QuantitySold:  -original.QuantitySold,
		TotalSale:     -original.TotalSale,
		Profit:        -original.Profit,
		PaymentMethod: original.PaymentMethod,
		SoldBy:        original.SoldBy,
		SoldAt:        s.now(),
		Receipt:       newReceipt(),
	}
	return s.repo.CreateSale(ctx, reversal)
}

// DeleteSale removes a sale row. Deleting a reversal re-adds a compensating
// positive sale so the running totals remain truthful.
func (s *Service) DeleteSale(ctx context.Context, id int64) error {
	sale, err := s.repo.GetSale(ctx, id)
	if err != nil {
		return err
	}
	if sale == nil {
		return ErrNotFound
	}
	if err := s.repo.DeleteSale(ctx, id); err != nil {
		return err
	}
	if sale.QuantitySold < 0 {
		compensation := Sale{
			ProductID:     sale.ProductID,
			Title:         sale.Title,
			QuantitySold:  -sale.QuantitySold,
			TotalSale:     -sale.TotalSale,
			Profit:        -sale.Profit,
			PaymentMethod: sale.PaymentMethod,
			SoldBy:        sale.SoldBy,
			SoldAt:        s.now(),
			Receipt:       newReceipt(),
		}
		if _, err := s.repo.CreateSale(ctx, compensation); err != nil {
			// Best effort sequential write; the gap is logged, not rolled back.
			s.logger.Error("compensating sale after reversal delete failed",
				slog.Int64("sale_id", id), slog.Any("error", err))
			return fmt.Errorf("sales: reversal deleted but compensation failed: %w", err)
		}
	}
	return nil
}

// ListSales returns sales, optionally bounded by a date range.
func (s *Service) ListSales(ctx context.Context, rng DateRange) ([]Sale, error) {
	return s.repo.ListSales(ctx, rng)
}

// RecordService persists ancillary cyber income.
func (s *Service) RecordService(ctx context.Context, req CreateServiceRequest) (*CyberService, error) {
	if req.Amount <= 0 {
		return nil, fmt.Errorf("sales: amount must be positive: %w", shared.ErrValidation)
	}
	svc := CyberService{
		Description: req.Description,
		Amount:      req.Amount,
		ServicedAt:  s.now(),
	}
	return s.repo.CreateService(ctx, svc)
}

// ListServices returns cyber service income rows.
func (s *Service) ListServices(ctx context.Context, rng DateRange) ([]CyberService, error) {
	return s.repo.ListServices(ctx, rng)
}

// DeleteService removes a cyber service row.
func (s *Service) DeleteService(ctx context.Context, id int64) error {
	return s.repo.DeleteService(ctx, id)
}

func newReceipt() string {
	return "RCT-" + strings.ToUpper(uuid.NewString()[:8])
}
