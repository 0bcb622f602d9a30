package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"tally/internal/amqp"
	"tally/internal/cache"
	"tally/internal/core"
	applog "tally/internal/log"
	"tally/internal/storage"
)

// LedgerService is the mutation and query API over the expense store.
// It validates input, maps store results to the error taxonomy, keeps the
// summary cache coherent, and publishes ledger events when a broker is
// configured.
type LedgerService struct {
	repo      *storage.Repository
	events    *amqp.Client
	summaries *cache.LRU[[]core.CategoryTotal]
	log       *slog.Logger
}

func NewLedgerService(repo *storage.Repository, events *amqp.Client, summaryTTL time.Duration) *LedgerService {
	return &LedgerService{
		repo:      repo,
		events:    events,
		summaries: cache.NewLRU[[]core.CategoryTotal](256, summaryTTL),
		log:       applog.ForComponent(applog.ComponentLedger),
	}
}

// AddExpense validates and records one new expense. Duplicate entries are
// accepted by design; there is no dedup in the ledger.
func (s *LedgerService) AddExpense(ctx context.Context, e core.NewExpense) (int64, error) {
	if err := e.Validate(); err != nil {
		return 0, err
	}

	id, err := s.repo.Insert(ctx, e)
	if err != nil {
		return 0, fmt.Errorf("add expense: %w", err)
	}

	s.summaries.Clear()
	s.publish(ctx, amqp.NewExpenseRecorded(id))

	return id, nil
}

// EditExpense applies a sparse update to an existing expense. An update with
// zero supplied fields is rejected before any write happens.
func (s *LedgerService) EditExpense(ctx context.Context, id int64, upd core.ExpenseUpdate) error {
	if upd.IsEmpty() {
		return core.ErrNoFields
	}
	if err := upd.Validate(); err != nil {
		return err
	}

	if err := s.repo.Update(ctx, id, upd); err != nil {
		return fmt.Errorf("edit expense %d: %w", id, err)
	}

	s.summaries.Clear()

	names := make([]string, 0, len(upd.Fields()))
	for _, f := range upd.Fields() {
		names = append(names, f.Name)
	}
	s.publish(ctx, amqp.NewExpenseEdited(id, names))

	return nil
}

// ListExpenses returns all expenses in the inclusive date range, ordered by
// id ascending.
func (s *LedgerService) ListExpenses(ctx context.Context, start, end string) ([]core.Expense, error) {
	expenses, err := s.repo.ListRange(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	return expenses, nil
}

// SummarizeExpenses returns per-category totals over the inclusive date
// range, optionally restricted to one category. Results are served from the
// summary cache, which every mutation clears, so a cached aggregate always
// matches the committed store.
func (s *LedgerService) SummarizeExpenses(ctx context.Context, start, end, category string) ([]core.CategoryTotal, error) {
	key := start + "|" + end + "|" + category
	if totals, ok := s.summaries.Get(key); ok {
		s.log.DebugContext(ctx, "Summary cache hit", "start", start, "end", end, "category", category)
		return totals, nil
	}

	totals, err := s.repo.Summarize(ctx, start, end, category)
	if err != nil {
		return nil, fmt.Errorf("summarize expenses: %w", err)
	}

	s.summaries.Set(key, totals)
	return totals, nil
}

// GetExpense returns a single expense by id.
func (s *LedgerService) GetExpense(ctx context.Context, id int64) (core.Expense, error) {
	return s.repo.Get(ctx, id)
}

func (s *LedgerService) publish(ctx context.Context, event *amqp.LedgerEvent) {
	if s.events == nil {
		return
	}
	// Event delivery is best effort; the ledger write already committed.
	if err := s.events.PublishEvent(ctx, event); err != nil {
		s.log.ErrorContext(ctx, "Failed to publish ledger event",
			"kind", event.Kind,
			"id", event.ID,
			"error", err)
	}
}

// Close closes the store and the broker connection.
func (s *LedgerService) Close() error {
	var errs []error

	if s.repo != nil {
		if err := s.repo.Close(); err != nil {
			errs = append(errs, fmt.Errorf("storage: %w", err))
		}
	}

	if s.events != nil {
		if err := s.events.Close(); err != nil {
			errs = append(errs, fmt.Errorf("amqp: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close ledger service: %v", errs)
	}

	return nil
}
