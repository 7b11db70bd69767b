// Package worker moves recorded transactions from the durable store to the
// export destination. It is driven primarily by queue messages, with a
// periodic backfill over unsynced rows as insurance against lost messages.
package worker

import (
	"context"
	"fmt"
	"log/slog"

	"fintrack/internal/amqp"
	"fintrack/internal/core"
	"fintrack/internal/export"
	"fintrack/internal/log"
	"fintrack/internal/store"
	"fintrack/internal/store/sqlite"
)

// Store is the durable store surface the worker drives: the tracker's read
// side plus the pending-sync bookkeeping.
type Store interface {
	store.Store
	PendingSync(ctx context.Context, limit int) ([]sqlite.PendingTransaction, error)
	MarkSynced(ctx context.Context, kind core.Kind, id string) error
}

type ExportWorker struct {
	store     Store
	exporter  export.Exporter
	batchSize int
}

func NewExportWorker(st Store, exporter export.Exporter, batchSize int) *ExportWorker {
	return &ExportWorker{
		store:     st,
		exporter:  exporter,
		batchSize: batchSize,
	}
}

// HandleTransactionRecorded processes a single queue message.
func (w *ExportWorker) HandleTransactionRecorded(ctx context.Context, msg *amqp.TransactionRecordedMessage) error {
	return w.exportOne(ctx, msg.Kind, msg.ID)
}

// ProcessPending exports any rows the queue path missed.
func (w *ExportWorker) ProcessPending(ctx context.Context) error {
	pending, err := w.store.PendingSync(ctx, w.batchSize)
	if err != nil {
		return fmt.Errorf("get pending transactions: %w", err)
	}

	if len(pending) == 0 {
		return nil
	}

	slog.InfoContext(ctx, "Processing pending transactions", "count", len(pending))

	for _, p := range pending {
		if err := w.exportOne(ctx, p.Kind, p.ID); err != nil {
			slog.ErrorContext(ctx, "Failed to export pending transaction",
				"kind", p.Kind, "id", p.ID, "error", err)
			// Keep going; the row stays unsynced and is retried next pass.
		}
	}

	return nil
}

func (w *ExportWorker) exportOne(ctx context.Context, kind core.Kind, id string) error {
	t, ok, err := w.store.GetTransaction(ctx, kind, id)
	if err != nil {
		return fmt.Errorf("get transaction: %w", err)
	}
	if !ok {
		// The row never made it to this store; nothing to retry.
		slog.WarnContext(ctx, "Transaction not found, dropping", "kind", kind, "id", id)
		return nil
	}

	// The username in the export row is informational; a failed lookup falls
	// back to the user id rather than blocking the export.
	username := t.UserID
	u, found, err := w.store.GetUser(ctx, t.UserID)
	switch {
	case err != nil:
		log.NewStructuredLogger(log.FromContext(ctx)).LogError(ctx,
			"Failed to load user for export, falling back to user id", err,
			log.ComponentWorker, log.OpSync,
			log.NewFields().WithTransaction(string(kind), id, t.Amount))
	case found:
		username = u.Username
	}

	if err := w.exporter.Export(ctx, export.NewRecord(kind, t, username)); err != nil {
		return fmt.Errorf("export transaction: %w", err)
	}

	if err := w.store.MarkSynced(ctx, kind, id); err != nil {
		return fmt.Errorf("mark synced: %w", err)
	}

	return nil
}
