package expenses

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/soma-erp/soma-erp/internal/shared"
)

type memoryExpenseRepo struct {
	expenses map[int64]*Expense
	nextID   int64
}

func newMemoryExpenseRepo() *memoryExpenseRepo {
	return &memoryExpenseRepo{expenses: make(map[int64]*Expense)}
}

func (r *memoryExpenseRepo) CreateExpense(ctx context.Context, expense Expense) (*Expense, error) {
	r.nextID++
	expense.ID = r.nextID
	r.expenses[expense.ID] = &expense
	return &expense, nil
}

func (r *memoryExpenseRepo) ListExpenses(ctx context.Context, from, to time.Time) ([]Expense, error) {
	var out []Expense
	for _, e := range r.expenses {
		if !from.IsZero() && e.IncurredOn.Before(from) {
			continue
		}
		if !to.IsZero() && !e.IncurredOn.Before(to) {
			continue
		}
		out = append(out, *e)
	}
	return out, nil
}

func (r *memoryExpenseRepo) DeleteExpense(ctx context.Context, id int64) (bool, error) {
	if _, ok := r.expenses[id]; !ok {
		return false, nil
	}
	delete(r.expenses, id)
	return true, nil
}

func TestRecordExpenseDefaultsIncurredOn(t *testing.T) {
	repo := newMemoryExpenseRepo()
	svc := NewService(repo)
	fixed := time.Date(2026, 5, 2, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	expense, err := svc.RecordExpense(context.Background(), CreateExpenseRequest{Category: "rent", Amount: 15000})
	require.NoError(t, err)
	require.Equal(t, fixed, expense.IncurredOn)
}

func TestRecordExpenseValidation(t *testing.T) {
	svc := NewService(newMemoryExpenseRepo())
	_, err := svc.RecordExpense(context.Background(), CreateExpenseRequest{Category: "", Amount: 100})
	require.ErrorIs(t, err, shared.ErrValidation)
	_, err = svc.RecordExpense(context.Background(), CreateExpenseRequest{Category: "rent", Amount: -5})
	require.ErrorIs(t, err, shared.ErrValidation)
}

func TestListMonthBoundsCalendarMonth(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryExpenseRepo()
	svc := NewService(repo)

	_, _ = svc.RecordExpense(ctx, CreateExpenseRequest{
		Category: "electricity", Amount: 3000,
		IncurredOn: time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC),
	})
	_, _ = svc.RecordExpense(ctx, CreateExpenseRequest{
		Category: "rent", Amount: 15000,
		IncurredOn: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
	})
	_, _ = svc.RecordExpense(ctx, CreateExpenseRequest{
		Category: "internet", Amount: 5000,
		IncurredOn: time.Date(2026, 3, 31, 23, 0, 0, 0, time.UTC),
	})

	march, err := svc.ListMonth(ctx, time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, march, 2)
}

func TestDeleteExpenseNotFound(t *testing.T) {
	svc := NewService(newMemoryExpenseRepo())
	err := svc.DeleteExpense(context.Background(), 42)
	require.ErrorIs(t, err, ErrNotFound)
}
