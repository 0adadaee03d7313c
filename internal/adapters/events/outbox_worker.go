package events

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/viralforge/crowdfund-ledger-service/internal/ports"
)

// OutboxWorker drains the transactional outbox into the publisher. Delivery
// is at-least-once: a record is marked sent only after a successful publish,
// and failures are recorded on the row and retried on the next tick.
type OutboxWorker struct {
	logger    *slog.Logger
	outbox    ports.OutboxRepository
	publisher ports.EventPublisher
	interval  time.Duration
	batchSize int
}

func NewOutboxWorker(logger *slog.Logger, outbox ports.OutboxRepository, publisher ports.EventPublisher, interval time.Duration, batchSize int) *OutboxWorker {
	if interval <= 0 {
		interval = 2 * time.Second
	}
	if batchSize <= 0 {
		batchSize = 100
	}
	return &OutboxWorker{
		logger: logger, outbox: outbox, publisher: publisher, interval: interval, batchSize: batchSize,
	}
}

func (w *OutboxWorker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	for {
		if err := w.ProcessOnce(ctx); err != nil && !errors.Is(err, context.Canceled) {
			w.logger.ErrorContext(ctx, "outbox iteration failed",
				"module", "events.outbox_worker",
				"operation", "process_once",
				"error", err,
			)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func (w *OutboxWorker) ProcessOnce(ctx context.Context) error {
	records, err := w.outbox.ListPending(ctx, w.batchSize)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	for _, rec := range records {
		payload, marshalErr := json.Marshal(rec.Envelope)
		if marshalErr != nil {
			_ = w.outbox.MarkFailed(ctx, rec.RecordID, marshalErr.Error(), now)
			continue
		}
		if pubErr := w.publisher.Publish(ctx, rec.Envelope.EventType, payload, rec.Envelope.PartitionKey); pubErr != nil {
			_ = w.outbox.MarkFailed(ctx, rec.RecordID, pubErr.Error(), now)
			continue
		}
		_ = w.outbox.MarkSent(ctx, rec.RecordID, now)
	}
	return nil
}
