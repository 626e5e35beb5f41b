package credits

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/soma-erp/soma-erp/internal/shared"
)

// ErrNotFound indicates the requested credit does not exist.
var ErrNotFound = fmt.Errorf("credits: %w", shared.ErrNotFound)

// RepositoryPort defines data access methods for customer credits.
type RepositoryPort interface {
	CreateCredit(ctx context.Context, credit CustomerCredit) (*CustomerCredit, error)
	GetCredit(ctx context.Context, id int64) (*CustomerCredit, error)
	ListCredits(ctx context.Context) ([]CustomerCredit, error)
	UpdateCreditStatus(ctx context.Context, id int64, status string) error
	DeleteCredit(ctx context.Context, id int64) error

	CreatePayment(ctx context.Context, payment CreditPayment) (*CreditPayment, error)
	ListPayments(ctx context.Context, creditID int64) ([]CreditPayment, error)
	ListAllPayments(ctx context.Context) ([]CreditPayment, error)
	DeletePaymentsByCredit(ctx context.Context, creditID int64) error
}

// View pairs a credit with its derived balance, paid total, effective
// status and the view-time overdue flag.
type View struct {
	CustomerCredit
	AmountPaid float64 `json:"amount_paid"`
	Balance    float64 `json:"balance"`
	Overdue    bool    `json:"overdue"`
}

// Service handles customer credit business logic.
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

// OpenCredit registers a new customer credit in the active state.
func (s *Service) OpenCredit(ctx context.Context, req CreateCreditRequest) (*CustomerCredit, error) {
	if req.TotalAmount <= 0 {
		return nil, fmt.Errorf("credits: total amount must be positive: %w", shared.ErrValidation)
	}
	now := s.now()
	return s.repo.CreateCredit(ctx, CustomerCredit{
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		TotalAmount:   req.TotalAmount,
		CreditDate:    now,
		DueDate:       req.DueDate,
		Status:        StatusActive,
		CreatedAt:     now,
	})
}

// GetCredit returns one credit with derived fields.
func (s *Service) GetCredit(ctx context.Context, id int64) (*View, error) {
	credit, err := s.repo.GetCredit(ctx, id)
	if err != nil {
		return nil, err
	}
	if credit == nil {
		return nil, ErrNotFound
	}
	payments, err := s.repo.ListPayments(ctx, id)
	if err != nil {
		return nil, err
	}
	view := buildView(*credit, payments, s.now())
	return &view, nil
}

// ListCredits returns all credits with derived balances. Payments are
// fetched in one pass and grouped in memory.
func (s *Service) ListCredits(ctx context.Context) ([]View, error) {
	credits, err := s.repo.ListCredits(ctx)
	if err != nil {
		return nil, err
	}
	payments, err := s.repo.ListAllPayments(ctx)
	if err != nil {
		return nil, err
	}
	grouped := make(map[int64][]CreditPayment, len(credits))
	for _, p := range payments {
		grouped[p.CreditID] = append(grouped[p.CreditID], p)
	}
	now := s.now()
	views := make([]View, 0, len(credits))
	for _, credit := range credits {
		views = append(views, buildView(credit, grouped[credit.ID], now))
	}
	return views, nil
}

// RecordPayment registers an instalment and persists the derived status of
// the parent credit. Sequential best-effort writes, as with debts.
func (s *Service) RecordPayment(ctx context.Context, creditID int64, req RecordPaymentRequest) (*CreditPayment, error) {
	if req.PaymentAmount <= 0 {
		return nil, fmt.Errorf("credits: payment amount must be positive: %w", shared.ErrValidation)
	}
	credit, err := s.repo.GetCredit(ctx, creditID)
	if err != nil {
		return nil, err
	}
	if credit == nil {
		return nil, ErrNotFound
	}
	paymentDate := req.PaymentDate
	if paymentDate.IsZero() {
		paymentDate = s.now()
	}

	payment, err := s.repo.CreatePayment(ctx, CreditPayment{
		CreditID:      creditID,
		PaymentAmount: req.PaymentAmount,
		PaymentDate:   paymentDate,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		return nil, err
	}

	payments, err := s.repo.ListPayments(ctx, creditID)
	if err != nil {
		return payment, err
	}
	status := deriveStatus(*credit, payments)
	if status != credit.Status {
		if err := s.repo.UpdateCreditStatus(ctx, creditID, status); err != nil {
			s.logger.Error("credit status update after payment failed",
				slog.Int64("credit_id", creditID), slog.Any("error", err))
			return payment, fmt.Errorf("credits: payment recorded but status update failed: %w", err)
		}
	}
	return payment, nil
}

// DeleteCredit removes a credit and its payments, children first.
func (s *Service) DeleteCredit(ctx context.Context, id int64) error {
	credit, err := s.repo.GetCredit(ctx, id)
	if err != nil {
		return err
	}
	if credit == nil {
		return ErrNotFound
	}
	if err := s.repo.DeletePaymentsByCredit(ctx, id); err != nil {
		return fmt.Errorf("credits: delete payments: %w", err)
	}
	return s.repo.DeleteCredit(ctx, id)
}

func buildView(credit CustomerCredit, payments []CreditPayment, now time.Time) View {
	var paid float64
	for _, p := range payments {
		paid += p.PaymentAmount
	}
	balance := credit.TotalAmount - paid
	if balance < 0 {
		balance = 0
	}
	view := View{
		CustomerCredit: credit,
		AmountPaid:     paid,
		Balance:        balance,
	}
	view.Status = deriveStatus(credit, payments)
	if credit.DueDate != nil && !credit.DueDate.IsZero() &&
		credit.DueDate.Before(now) && view.Status != StatusPaid {
		view.Overdue = true
	}
	return view
}

func deriveStatus(credit CustomerCredit, payments []CreditPayment) string {
	var paid float64
	for _, p := range payments {
		paid += p.PaymentAmount
	}
	switch {
	case credit.TotalAmount-paid <= 0:
		return StatusPaid
	case len(payments) > 0:
		return StatusPartial
	default:
		return StatusActive
	}
}
