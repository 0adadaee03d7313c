package events

import (
	"context"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/viralforge/crowdfund-ledger-service/internal/adapters/memory"
	"github.com/viralforge/crowdfund-ledger-service/internal/contracts"
	"github.com/viralforge/crowdfund-ledger-service/internal/domain"
	"github.com/viralforge/crowdfund-ledger-service/internal/ports"
)

func TestOutboxWorkerProcessOnce(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repos := memory.NewRepositories()
	publisher := NewMemoryPublisher()
	worker := NewOutboxWorker(slog.Default(), repos.Outbox, publisher, time.Second, 10)

	payload, _ := json.Marshal(contracts.PledgedPayload{CampaignID: "camp_1", PledgeID: "pl_1", Amount: 100, Balance: 100})
	env := contracts.EventEnvelope{
		EventID:       "evt_1",
		EventType:     domain.EventPledged,
		EventClass:    domain.CanonicalEventClass(domain.EventPledged),
		OccurredAt:    time.Now().UTC(),
		PartitionKey:  "camp_1",
		SchemaVersion: "v1",
		Data:          payload,
	}
	if err := repos.Outbox.Enqueue(ctx, ports.OutboxRecord{
		RecordID:   "rec_1",
		EventClass: env.EventClass,
		Envelope:   env,
		CreatedAt:  time.Now().UTC(),
	}); err != nil {
		t.Fatalf("Enqueue: %v", err)
	}

	if err := worker.ProcessOnce(ctx); err != nil {
		t.Fatalf("ProcessOnce: %v", err)
	}
	events := publisher.Events()
	if len(events) != 1 {
		t.Fatalf("expected 1 published event, got %d", len(events))
	}
	if events[0].EventType != domain.EventPledged || events[0].PartitionKey != "camp_1" {
		t.Fatalf("unexpected event: %+v", events[0])
	}

	// Sent records do not come back.
	if err := worker.ProcessOnce(ctx); err != nil {
		t.Fatalf("ProcessOnce again: %v", err)
	}
	if got := len(publisher.Events()); got != 1 {
		t.Fatalf("expected no re-publish, got %d events", got)
	}
}
