// Package worker consumes ledger events and mirrors recorded expenses into
// an external spreadsheet.
package worker

import (
	"context"
	"fmt"
	"log/slog"

	"tally/internal/amqp"
	applog "tally/internal/log"
	"tally/internal/mirror"
	"tally/internal/storage"
)

// MirrorWorker appends newly recorded expenses to the mirror. The mirror is
// an append-only journal: edit events are acknowledged but not applied, so
// the mirror keeps the amounts as they were first recorded.
type MirrorWorker struct {
	repo     *storage.Repository
	appender mirror.RowAppender
	log      *slog.Logger
}

func NewMirrorWorker(repo *storage.Repository, appender mirror.RowAppender) *MirrorWorker {
	return &MirrorWorker{
		repo:     repo,
		appender: appender,
		log:      applog.ForComponent(applog.ComponentWorker),
	}
}

// HandleEvent processes a single ledger event. Returning an error requeues
// the message, so only transient failures should bubble up.
func (w *MirrorWorker) HandleEvent(ctx context.Context, event *amqp.LedgerEvent) error {
	switch event.Kind {
	case amqp.KindExpenseRecorded:
		return w.mirrorExpense(ctx, event.ID)
	case amqp.KindExpenseEdited:
		w.log.InfoContext(ctx, "Skipping edit event, mirror is append-only",
			"id", event.ID,
			"fields", event.Fields)
		return nil
	default:
		w.log.WarnContext(ctx, "Unknown event kind, dropping", "kind", event.Kind, "id", event.ID)
		return nil
	}
}

func (w *MirrorWorker) mirrorExpense(ctx context.Context, id int64) error {
	expense, err := w.repo.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("get expense %d: %w", id, err)
	}

	ref, err := w.appender.Append(ctx, expense)
	if err != nil {
		return fmt.Errorf("append expense %d to mirror: %w", id, err)
	}

	w.log.InfoContext(ctx, "Mirrored expense",
		"id", id,
		"row_ref", ref,
		"date", expense.Date,
		"category", expense.Category)

	return nil
}
