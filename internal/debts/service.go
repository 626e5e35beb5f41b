package debts

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/soma-erp/soma-erp/internal/shared"
)

// ErrNotFound indicates the requested debt does not exist.
var ErrNotFound = fmt.Errorf("debts: %w", shared.ErrNotFound)

// RepositoryPort defines data access methods for debts.
type RepositoryPort interface {
	CreateDebt(ctx context.Context, debt Debt) (*Debt, error)
	GetDebt(ctx context.Context, id int64) (*Debt, error)
	ListDebts(ctx context.Context) ([]Debt, error)
	UpdateDebt(ctx context.Context, id int64, req UpdateDebtRequest) error
	SettleDebt(ctx context.Context, id int64, balance, paidDelta float64, status string) error
	DeleteDebt(ctx context.Context, id int64) error

	CreatePayment(ctx context.Context, payment DebtPayment) (*DebtPayment, error)
	ListPayments(ctx context.Context, debtID int64) ([]DebtPayment, error)
	DeletePaymentsByDebt(ctx context.Context, debtID int64) error
}

// View pairs a debt with its normalized balance state and the view-time
// overdue flag. Overdue is never written back to the store. State carries
// its own key so the resolved balance never collides with the raw legacy
// columns in the payload.
type View struct {
	Debt
	State   BalanceState `json:"state"`
	Overdue bool         `json:"overdue"`
}

// Service handles debt business logic.
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

// CreateDebt registers a new debt in the active state.
func (s *Service) CreateDebt(ctx context.Context, req CreateDebtRequest) (*Debt, error) {
	if req.Lender == "" {
		return nil, fmt.Errorf("debts: lender required: %w", shared.ErrValidation)
	}
	if req.Principal <= 0 {
		return nil, fmt.Errorf("debts: principal must be positive: %w", shared.ErrValidation)
	}
	now := s.now()
	debt := Debt{
		Lender:       req.Lender,
		Principal:    req.Principal,
		InterestRate: req.InterestRate,
		StartedOn:    req.StartedOn,
		DueOn:        req.DueOn,
		Status:       StatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	return s.repo.CreateDebt(ctx, debt)
}

// GetDebt returns a single debt with its normalized view.
func (s *Service) GetDebt(ctx context.Context, id int64) (*View, error) {
	debt, err := s.repo.GetDebt(ctx, id)
	if err != nil {
		return nil, err
	}
	if debt == nil {
		return nil, ErrNotFound
	}
	view := View{Debt: *debt, State: Normalize(*debt), Overdue: debt.Overdue(s.now())}
	return &view, nil
}

// ListDebts returns all debts with normalized balances.
func (s *Service) ListDebts(ctx context.Context) ([]View, error) {
	rows, err := s.repo.ListDebts(ctx)
	if err != nil {
		return nil, err
	}
	now := s.now()
	views := make([]View, 0, len(rows))
	for _, debt := range rows {
		views = append(views, View{Debt: debt, State: Normalize(debt), Overdue: debt.Overdue(now)})
	}
	return views, nil
}

// UpdateDebt applies partial edits to a debt.
func (s *Service) UpdateDebt(ctx context.Context, id int64, req UpdateDebtRequest) error {
	debt, err := s.repo.GetDebt(ctx, id)
	if err != nil {
		return err
	}
	if debt == nil {
		return ErrNotFound
	}
	return s.repo.UpdateDebt(ctx, id, req)
}

// RecordPayment inserts a repayment and then recomputes the parent debt
// balance and status. The two writes are sequential and best effort: a
// failed status update after a successful insert is logged and surfaced,
// not rolled back.
func (s *Service) RecordPayment(ctx context.Context, debtID int64, req RecordPaymentRequest) (*DebtPayment, error) {
	if req.Amount <= 0 {
		return nil, fmt.Errorf("debts: payment amount must be positive: %w", shared.ErrValidation)
	}
	debt, err := s.repo.GetDebt(ctx, debtID)
	if err != nil {
		return nil, err
	}
	if debt == nil {
		return nil, ErrNotFound
	}
	paidOn := req.PaidOn
	if paidOn.IsZero() {
		paidOn = s.now()
	}

	payment, err := s.repo.CreatePayment(ctx, DebtPayment{
		DebtID: debtID,
		Amount: req.Amount,
		PaidOn: paidOn,
	})
	if err != nil {
		return nil, err
	}

	state := Normalize(*debt)
	balance := state.Balance - req.Amount
	if balance < 0 {
		balance = 0
	}
	status := StatusPartial
	if balance <= 0 {
		status = StatusPaid
	}
	if err := s.repo.SettleDebt(ctx, debtID, balance, req.Amount, status); err != nil {
		s.logger.Error("debt status update after payment failed",
			slog.Int64("debt_id", debtID), slog.Any("error", err))
		return payment, fmt.Errorf("debts: payment recorded but status update failed: %w", err)
	}
	return payment, nil
}

// ListPayments returns the repayments recorded against a debt.
func (s *Service) ListPayments(ctx context.Context, debtID int64) ([]DebtPayment, error) {
	return s.repo.ListPayments(ctx, debtID)
}

// DeleteDebt removes a debt and its payments. Child rows go first; the
// deletes are sequential, not transactional.
func (s *Service) DeleteDebt(ctx context.Context, id int64) error {
	debt, err := s.repo.GetDebt(ctx, id)
	if err != nil {
		return err
	}
	if debt == nil {
		return ErrNotFound
	}
	if err := s.repo.DeletePaymentsByDebt(ctx, id); err != nil {
		return fmt.Errorf("debts: delete payments: %w", err)
	}
	if err := s.repo.DeleteDebt(ctx, id); err != nil {
		s.logger.Error("debt delete failed after payments removed",
			slog.Int64("debt_id", id), slog.Any("error", err))
		return err
	}
	return nil
}
