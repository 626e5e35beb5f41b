package expenses

import (
	"context"
	"fmt"
	"time"

	"github.com/soma-erp/soma-erp/internal/shared"
)

// ErrNotFound indicates the requested expense does not exist.
var ErrNotFound = fmt.Errorf("expenses: %w", shared.ErrNotFound)

// RepositoryPort defines data access methods for expenses.
type RepositoryPort interface {
	CreateExpense(ctx context.Context, expense Expense) (*Expense, error)
	ListExpenses(ctx context.Context, from, to time.Time) ([]Expense, error)
	DeleteExpense(ctx context.Context, id int64) (bool, error)
}

// Service handles expense business logic.
type Service struct {
	repo RepositoryPort
	now  func() time.Time
}

// NewService builds a Service instance.
func NewService(repo RepositoryPort) *Service {
	return &Service{repo: repo, now: time.Now}
}

// RecordExpense persists a new expense.
func (s *Service) RecordExpense(ctx context.Context, req CreateExpenseRequest) (*Expense, error) {
	if req.Category == "" {
		return nil, fmt.Errorf("expenses: category required: %w", shared.ErrValidation)
	}
	if req.Amount <= 0 {
		return nil, fmt.Errorf("expenses: amount must be positive: %w", shared.ErrValidation)
	}
	incurred := req.IncurredOn
	if incurred.IsZero() {
		incurred = s.now()
	}
	return s.repo.CreateExpense(ctx, Expense{
		Category:   req.Category,
		Amount:     req.Amount,
		IncurredOn: incurred,
		Note:       req.Note,
		CreatedAt:  s.now(),
	})
}

// ListExpenses returns expenses, optionally bounded by dates.
func (s *Service) ListExpenses(ctx context.Context, from, to time.Time) ([]Expense, error) {
	return s.repo.ListExpenses(ctx, from, to)
}

// ListMonth returns the expenses of the calendar month containing the
// reference time.
func (s *Service) ListMonth(ctx context.Context, ref time.Time) ([]Expense, error) {
	start := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, ref.Location())
	return s.repo.ListExpenses(ctx, start, start.AddDate(0, 1, 0))
}

// DeleteExpense removes an expense.
func (s *Service) DeleteExpense(ctx context.Context, id int64) error {
	ok, err := s.repo.DeleteExpense(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}
