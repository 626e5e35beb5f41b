package credits

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/soma-erp/soma-erp/internal/shared"
)

type memoryCreditRepo struct {
	credits       map[int64]*CustomerCredit
	payments      map[int64][]CreditPayment
	nextCreditID  int64
	nextPaymentID int64
}

func newMemoryCreditRepo() *memoryCreditRepo {
	return &memoryCreditRepo{
		credits:  make(map[int64]*CustomerCredit),
		payments: make(map[int64][]CreditPayment),
	}
}

func (r *memoryCreditRepo) CreateCredit(ctx context.Context, credit CustomerCredit) (*CustomerCredit, error) {
	r.nextCreditID++
	credit.ID = r.nextCreditID
	r.credits[credit.ID] = &credit
	return &credit, nil
}

func (r *memoryCreditRepo) GetCredit(ctx context.Context, id int64) (*CustomerCredit, error) {
	credit, ok := r.credits[id]
	if !ok {
		return nil, nil
	}
	copied := *credit
	return &copied, nil
}

func (r *memoryCreditRepo) ListCredits(ctx context.Context) ([]CustomerCredit, error) {
	var out []CustomerCredit
	for _, c := range r.credits {
		out = append(out, *c)
	}
	return out, nil
}

func (r *memoryCreditRepo) UpdateCreditStatus(ctx context.Context, id int64, status string) error {
	credit, ok := r.credits[id]
	if !ok {
		return ErrNotFound
	}
	credit.Status = status
	return nil
}

func (r *memoryCreditRepo) DeleteCredit(ctx context.Context, id int64) error {
	delete(r.credits, id)
	return nil
}

func (r *memoryCreditRepo) CreatePayment(ctx context.Context, payment CreditPayment) (*CreditPayment, error) {
	r.nextPaymentID++
	payment.ID = r.nextPaymentID
	r.payments[payment.CreditID] = append(r.payments[payment.CreditID], payment)
	return &payment, nil
}

func (r *memoryCreditRepo) ListPayments(ctx context.Context, creditID int64) ([]CreditPayment, error) {
	return r.payments[creditID], nil
}

func (r *memoryCreditRepo) ListAllPayments(ctx context.Context) ([]CreditPayment, error) {
	var out []CreditPayment
	for _, payments := range r.payments {
		out = append(out, payments...)
	}
	return out, nil
}

func (r *memoryCreditRepo) DeletePaymentsByCredit(ctx context.Context, creditID int64) error {
	delete(r.payments, creditID)
	return nil
}

func TestOpenCreditStartsActive(t *testing.T) {
	svc := NewService(newMemoryCreditRepo(), nil)
	credit, err := svc.OpenCredit(context.Background(), CreateCreditRequest{
		CustomerName:  "Akinyi",
		CustomerPhone: "0712345678",
		TotalAmount:   2000,
	})
	require.NoError(t, err)
	require.Equal(t, StatusActive, credit.Status)
}

func TestOpenCreditRequiresPositiveTotal(t *testing.T) {
	svc := NewService(newMemoryCreditRepo(), nil)
	_, err := svc.OpenCredit(context.Background(), CreateCreditRequest{CustomerName: "Akinyi", TotalAmount: 0})
	require.ErrorIs(t, err, shared.ErrValidation)
}

func TestPaymentMovesCreditToPartialThenPaid(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryCreditRepo()
	svc := NewService(repo, nil)

	credit, _ := svc.OpenCredit(ctx, CreateCreditRequest{
		CustomerName: "Akinyi", CustomerPhone: "0712345678", TotalAmount: 2000,
	})

	_, err := svc.RecordPayment(ctx, credit.ID, RecordPaymentRequest{PaymentAmount: 800, PaymentMethod: "mpesa"})
	require.NoError(t, err)
	require.Equal(t, StatusPartial, repo.credits[credit.ID].Status)

	_, err = svc.RecordPayment(ctx, credit.ID, RecordPaymentRequest{PaymentAmount: 1200, PaymentMethod: "cash"})
	require.NoError(t, err)
	require.Equal(t, StatusPaid, repo.credits[credit.ID].Status)
}

func TestViewBalanceClampedAndDerived(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryCreditRepo()
	svc := NewService(repo, nil)

	credit, _ := svc.OpenCredit(ctx, CreateCreditRequest{
		CustomerName: "Baraka", CustomerPhone: "0700000001", TotalAmount: 1000,
	})
	_, _ = svc.RecordPayment(ctx, credit.ID, RecordPaymentRequest{PaymentAmount: 1500, PaymentMethod: "cash"})

	view, err := svc.GetCredit(ctx, credit.ID)
	require.NoError(t, err)
	require.Equal(t, 0.0, view.Balance)
	require.Equal(t, 1500.0, view.AmountPaid)
	require.Equal(t, StatusPaid, view.Status)
}

func TestOverdueIsViewTimeOnly(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryCreditRepo()
	svc := NewService(repo, nil)

	past := time.Now().AddDate(0, 0, -10)
	credit, _ := svc.OpenCredit(ctx, CreateCreditRequest{
		CustomerName: "Chebet", CustomerPhone: "0700000002", TotalAmount: 500, DueDate: &past,
	})

	view, err := svc.GetCredit(ctx, credit.ID)
	require.NoError(t, err)
	require.True(t, view.Overdue)
	// The stored status never becomes "overdue".
	require.Equal(t, StatusActive, repo.credits[credit.ID].Status)

	_, _ = svc.RecordPayment(ctx, credit.ID, RecordPaymentRequest{PaymentAmount: 500, PaymentMethod: "cash"})
	view, _ = svc.GetCredit(ctx, credit.ID)
	require.False(t, view.Overdue)
}

func TestListCreditsGroupsPayments(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryCreditRepo()
	svc := NewService(repo, nil)

	first, _ := svc.OpenCredit(ctx, CreateCreditRequest{CustomerName: "A", CustomerPhone: "1", TotalAmount: 100})
	second, _ := svc.OpenCredit(ctx, CreateCreditRequest{CustomerName: "B", CustomerPhone: "2", TotalAmount: 300})
	_, _ = svc.RecordPayment(ctx, first.ID, RecordPaymentRequest{PaymentAmount: 40, PaymentMethod: "cash"})

	views, err := svc.ListCredits(ctx)
	require.NoError(t, err)
	byID := make(map[int64]View)
	for _, v := range views {
		byID[v.ID] = v
	}
	require.Equal(t, 60.0, byID[first.ID].Balance)
	require.Equal(t, 300.0, byID[second.ID].Balance)
}

func TestDeleteCreditCascadesPayments(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryCreditRepo()
	svc := NewService(repo, nil)

	credit, _ := svc.OpenCredit(ctx, CreateCreditRequest{CustomerName: "A", CustomerPhone: "1", TotalAmount: 100})
	_, _ = svc.RecordPayment(ctx, credit.ID, RecordPaymentRequest{PaymentAmount: 40, PaymentMethod: "cash"})

	require.NoError(t, svc.DeleteCredit(ctx, credit.ID))
	require.Empty(t, repo.payments[credit.ID])
	require.NotContains(t, repo.credits, credit.ID)
}
