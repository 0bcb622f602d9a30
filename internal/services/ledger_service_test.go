package services

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"tally/internal/core"
	"tally/internal/storage"
)

func newTestService(t *testing.T) *LedgerService {
	t.Helper()
	repo, err := storage.NewRepository(filepath.Join(t.TempDir(), "tally.db"))
	if err != nil {
		t.Fatalf("NewRepository: %v", err)
	}
	svc := NewLedgerService(repo, nil, time.Minute)
	t.Cleanup(func() { svc.Close() })
	return svc
}

func TestAddExpenseValidates(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.AddExpense(ctx, core.NewExpense{Amount: 1, Category: "Food"})
	var verr *core.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("AddExpense without date = %v, want *ValidationError", err)
	}

	// A failed add must not create a row.
	got, err := svc.ListExpenses(ctx, "0000-01-01", "9999-12-31")
	if err != nil {
		t.Fatalf("ListExpenses: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("failed add created %d rows", len(got))
	}
}

func TestAddAndListRoundTrip(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	id, err := svc.AddExpense(ctx, core.NewExpense{Date: "2024-01-05", Amount: 12.50, Category: "Food"})
	if err != nil {
		t.Fatalf("AddExpense: %v", err)
	}
	if id != 1 {
		t.Errorf("id = %d, want 1", id)
	}

	got, err := svc.ListExpenses(ctx, "2024-01-01", "2024-01-31")
	if err != nil {
		t.Fatalf("ListExpenses: %v", err)
	}
	if len(got) != 1 || got[0].ID != id || got[0].Amount != 12.50 {
		t.Errorf("round trip = %+v", got)
	}
}

func TestEditExpenseNoFields(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	id, err := svc.AddExpense(ctx, core.NewExpense{Date: "2024-01-05", Amount: 12.50, Category: "Food"})
	if err != nil {
		t.Fatalf("AddExpense: %v", err)
	}

	if err := svc.EditExpense(ctx, id, core.ExpenseUpdate{}); !errors.Is(err, core.ErrNoFields) {
		t.Fatalf("EditExpense with no fields = %v, want ErrNoFields", err)
	}

	got, err := svc.GetExpense(ctx, id)
	if err != nil {
		t.Fatalf("GetExpense: %v", err)
	}
	if got.Amount != 12.50 {
		t.Errorf("record changed by rejected edit: %+v", got)
	}
}

func TestEditExpenseMissingTarget(t *testing.T) {
	svc := newTestService(t)

	amount := 1.0
	err := svc.EditExpense(context.Background(), 404, core.ExpenseUpdate{Amount: &amount})
	if !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("EditExpense on missing id = %v, want ErrNotFound", err)
	}
}

func TestSummaryCacheInvalidatedByMutations(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	id, err := svc.AddExpense(ctx, core.NewExpense{Date: "2024-01-05", Amount: 12.50, Category: "Food"})
	if err != nil {
		t.Fatalf("AddExpense: %v", err)
	}

	// Prime the cache.
	first, err := svc.SummarizeExpenses(ctx, "2024-01-01", "2024-01-31", "")
	if err != nil {
		t.Fatalf("SummarizeExpenses: %v", err)
	}
	if len(first) != 1 || first[0].Total != 12.50 {
		t.Fatalf("initial summary = %+v", first)
	}

	// The edit must invalidate the cached aggregate.
	amount := 15.0
	if err := svc.EditExpense(ctx, id, core.ExpenseUpdate{Amount: &amount}); err != nil {
		t.Fatalf("EditExpense: %v", err)
	}

	second, err := svc.SummarizeExpenses(ctx, "2024-01-01", "2024-01-31", "")
	if err != nil {
		t.Fatalf("SummarizeExpenses after edit: %v", err)
	}
	if len(second) != 1 || second[0].Total != 15.0 {
		t.Errorf("summary after edit = %+v, want total 15.0", second)
	}

	// Same for adds.
	if _, err := svc.AddExpense(ctx, core.NewExpense{Date: "2024-01-06", Amount: 5, Category: "Food"}); err != nil {
		t.Fatalf("AddExpense: %v", err)
	}
	third, err := svc.SummarizeExpenses(ctx, "2024-01-01", "2024-01-31", "")
	if err != nil {
		t.Fatalf("SummarizeExpenses after add: %v", err)
	}
	if len(third) != 1 || third[0].Total != 20.0 {
		t.Errorf("summary after add = %+v, want total 20.0", third)
	}
}

func TestSummarizeGroupsByCategory(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if _, err := svc.AddExpense(ctx, core.NewExpense{Date: "2024-01-05", Amount: 12.50, Category: "Food"}); err != nil {
		t.Fatalf("AddExpense: %v", err)
	}
	if _, err := svc.AddExpense(ctx, core.NewExpense{Date: "2024-01-10", Amount: 20.00, Category: "Transport"}); err != nil {
		t.Fatalf("AddExpense: %v", err)
	}

	totals, err := svc.SummarizeExpenses(ctx, "2024-01-01", "2024-01-31", "")
	if err != nil {
		t.Fatalf("SummarizeExpenses: %v", err)
	}
	want := []core.CategoryTotal{
		{Category: "Food", Total: 12.5},
		{Category: "Transport", Total: 20.0},
	}
	if len(totals) != 2 || totals[0] != want[0] || totals[1] != want[1] {
		t.Errorf("totals = %+v, want %+v", totals, want)
	}

	filtered, err := svc.SummarizeExpenses(ctx, "2024-01-01", "2024-01-31", "Food")
	if err != nil {
		t.Fatalf("SummarizeExpenses filtered: %v", err)
	}
	if len(filtered) != 1 || filtered[0].Category != "Food" {
		t.Errorf("filtered = %+v", filtered)
	}
}

func TestCloseWithNilComponents(t *testing.T) {
	svc := &LedgerService{}
	if err := svc.Close(); err != nil {
		t.Fatalf("Close with nil components: %v", err)
	}
}
