package investments

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/soma-erp/soma-erp/internal/shared"
)

type memoryInvestmentRepo struct {
	investments map[int64]*Investment
	nextID      int64
}

func newMemoryInvestmentRepo() *memoryInvestmentRepo {
	return &memoryInvestmentRepo{investments: make(map[int64]*Investment)}
}

func (r *memoryInvestmentRepo) CreateInvestment(ctx context.Context, inv Investment) (*Investment, error) {
	r.nextID++
	inv.ID = r.nextID
	r.investments[inv.ID] = &inv
	return &inv, nil
}

func (r *memoryInvestmentRepo) ListInvestments(ctx context.Context) ([]Investment, error) {
	out := make([]Investment, 0, len(r.investments))
	for _, inv := range r.investments {
		out = append(out, *inv)
	}
	return out, nil
}

func (r *memoryInvestmentRepo) DeleteInvestment(ctx context.Context, id int64) (bool, error) {
	if _, ok := r.investments[id]; !ok {
		return false, nil
	}
	delete(r.investments, id)
	return true, nil
}

func TestRegisterInvestment(t *testing.T) {
	repo := newMemoryInvestmentRepo()
	svc := NewService(repo)
	fixed := time.Date(2026, 1, 10, 8, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	investedOn := time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)
	inv, err := svc.RegisterInvestment(context.Background(), CreateInvestmentRequest{
		Investor:   "Amina",
		Amount:     25000,
		InvestedOn: &investedOn,
		Category:   "capital",
	})
	require.NoError(t, err)
	require.Equal(t, int64(1), inv.ID)
	require.Equal(t, fixed, inv.CreatedAt)
	require.True(t, inv.HasValidDate())
}

func TestRegisterInvestmentValidation(t *testing.T) {
	svc := NewService(newMemoryInvestmentRepo())

	_, err := svc.RegisterInvestment(context.Background(), CreateInvestmentRequest{Amount: 1000})
	require.ErrorIs(t, err, shared.ErrValidation)

	_, err = svc.RegisterInvestment(context.Background(), CreateInvestmentRequest{Investor: "Amina"})
	require.ErrorIs(t, err, shared.ErrValidation)
}

func TestInvestmentWithoutDateIsStillStored(t *testing.T) {
	repo := newMemoryInvestmentRepo()
	svc := NewService(repo)

	inv, err := svc.RegisterInvestment(context.Background(), CreateInvestmentRequest{
		Investor: "Brian",
		Amount:   5000,
	})
	require.NoError(t, err)
	require.False(t, inv.HasValidDate())

	rows, err := svc.ListInvestments(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 1)
}

func TestDeleteInvestment(t *testing.T) {
	repo := newMemoryInvestmentRepo()
	svc := NewService(repo)

	inv, err := svc.RegisterInvestment(context.Background(), CreateInvestmentRequest{Investor: "Amina", Amount: 1000})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteInvestment(context.Background(), inv.ID))
	require.ErrorIs(t, svc.DeleteInvestment(context.Background(), inv.ID), ErrNotFound)
}
