package investments

import (
	"context"
	"fmt"
	"time"

	"github.com/soma-erp/soma-erp/internal/shared"
)

// ErrNotFound indicates the requested investment does not exist.
var ErrNotFound = fmt.Errorf("investments: %w", shared.ErrNotFound)

// RepositoryPort defines data access methods for investments.
type RepositoryPort interface {
	CreateInvestment(ctx context.Context, inv Investment) (*Investment, error)
	ListInvestments(ctx context.Context) ([]Investment, error)
	DeleteInvestment(ctx context.Context, id int64) (bool, error)
}

// Service handles investment business logic.
type Service struct {
	repo RepositoryPort
	now  func() time.Time
}

// NewService builds a Service instance.
func NewService(repo RepositoryPort) *Service {
	return &Service{repo: repo, now: time.Now}
}

// RegisterInvestment persists a new investment.
func (s *Service) RegisterInvestment(ctx context.Context, req CreateInvestmentRequest) (*Investment, error) {
	if req.Investor == "" {
		return nil, fmt.Errorf("investments: investor required: %w", shared.ErrValidation)
	}
	if req.Amount <= 0 {
		return nil, fmt.Errorf("investments: amount must be positive: %w", shared.ErrValidation)
	}
	return s.repo.CreateInvestment(ctx, Investment{
		Investor:   req.Investor,
		Amount:     req.Amount,
		InvestedOn: req.InvestedOn,
		Category:   req.Category,
		CreatedAt:  s.now(),
	})
}

// ListInvestments returns all investments.
func (s *Service) ListInvestments(ctx context.Context) ([]Investment, error) {
	return s.repo.ListInvestments(ctx)
}

// DeleteInvestment removes an investment.
func (s *Service) DeleteInvestment(ctx context.Context, id int64) error {
	ok, err := s.repo.DeleteInvestment(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}
