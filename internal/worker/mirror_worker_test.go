package worker

import (
	"context"
	"path/filepath"
	"testing"

	"tally/internal/amqp"
	"tally/internal/core"
	"tally/internal/mirror/memory"
	"tally/internal/storage"
)

func newTestWorker(t *testing.T) (*MirrorWorker, *storage.Repository, *memory.Store) {
	t.Helper()
	repo, err := storage.NewRepository(filepath.Join(t.TempDir(), "tally.db"))
	if err != nil {
		t.Fatalf("NewRepository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })

	store := memory.New()
	return NewMirrorWorker(repo, store), repo, store
}

func TestHandleRecordedEvent(t *testing.T) {
	w, repo, store := newTestWorker(t)
	ctx := context.Background()

	id, err := repo.Insert(ctx, core.NewExpense{
		Date:     "2024-01-05",
		Amount:   12.50,
		Category: "Food",
		Note:     "lunch",
	})
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}

	if err := w.HandleEvent(ctx, amqp.NewExpenseRecorded(id)); err != nil {
		t.Fatalf("HandleEvent: %v", err)
	}

	items := store.Items()
	if len(items) != 1 {
		t.Fatalf("mirrored %d rows, want 1", len(items))
	}
	got := items[0]
	if got.ID != id || got.Date != "2024-01-05" || got.Amount != 12.50 || got.Category != "Food" || got.Note != "lunch" {
		t.Errorf("mirrored row = %+v", got)
	}
}

func TestHandleEditEventIsSkipped(t *testing.T) {
	w, repo, store := newTestWorker(t)
	ctx := context.Background()

	id, err := repo.Insert(ctx, core.NewExpense{Date: "2024-01-05", Amount: 1, Category: "Food"})
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}

	if err := w.HandleEvent(ctx, amqp.NewExpenseEdited(id, []string{"amount"})); err != nil {
		t.Fatalf("HandleEvent: %v", err)
	}
	if n := len(store.Items()); n != 0 {
		t.Errorf("mirror has %d rows after edit event, want 0", n)
	}
}

func TestHandleRecordedEventMissingExpense(t *testing.T) {
	w, _, store := newTestWorker(t)

	err := w.HandleEvent(context.Background(), amqp.NewExpenseRecorded(999))
	if err == nil {
		t.Fatal("expected error for missing expense")
	}
	if n := len(store.Items()); n != 0 {
		t.Errorf("mirror has %d rows, want 0", n)
	}
}

func TestHandleUnknownKindDropped(t *testing.T) {
	w, _, _ := newTestWorker(t)

	event := &amqp.LedgerEvent{Kind: "expense.deleted", ID: 1}
	if err := w.HandleEvent(context.Background(), event); err != nil {
		t.Errorf("unknown kind should be dropped without error, got %v", err)
	}
}
