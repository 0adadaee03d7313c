package memory

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/viralforge/crowdfund-ledger-service/internal/domain"
	"github.com/viralforge/crowdfund-ledger-service/internal/ports"
)

func TestIdempotencyReservationExpiry(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repos := NewRepositories()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	if err := repos.Idempotency.Reserve(ctx, "key-1", "hash-a", now.Add(time.Hour)); err != nil {
		t.Fatalf("Reserve: %v", err)
	}
	rec, err := repos.Idempotency.Get(ctx, "key-1", now)
	if err != nil || rec == nil {
		t.Fatalf("Get reserved: %v, %v", rec, err)
	}
	if rec.RequestHash != "hash-a" {
		t.Fatalf("hash = %q", rec.RequestHash)
	}

	// Expired reservations vanish.
	rec, err = repos.Idempotency.Get(ctx, "key-1", now.Add(2*time.Hour))
	if err != nil || rec != nil {
		t.Fatalf("expected expired record to be gone, got %v, %v", rec, err)
	}
}

func TestCampaignTitleUniqueness(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repos := NewRepositories()

	first := domain.Campaign{CampaignID: "c1", Title: "community garden fund"}
	if err := repos.Campaigns.Create(ctx, first); err != nil {
		t.Fatalf("Create: %v", err)
	}
	second := domain.Campaign{CampaignID: "c2", Title: "community garden fund"}
	if err := repos.Campaigns.Create(ctx, second); !errors.Is(err, domain.ErrTitleTaken) {
		t.Fatalf("expected ErrTitleTaken, got %v", err)
	}
	got, err := repos.Campaigns.GetByTitle(ctx, "community garden fund")
	if err != nil || got.CampaignID != "c1" {
		t.Fatalf("GetByTitle: %+v, %v", got, err)
	}
}

func TestPledgePairUniqueness(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repos := NewRepositories()

	p := domain.Pledge{PledgeID: "p1", CampaignID: "c1", Pledger: "alice"}
	if err := repos.Pledges.Create(ctx, p); err != nil {
		t.Fatalf("Create: %v", err)
	}
	dup := domain.Pledge{PledgeID: "p2", CampaignID: "c1", Pledger: "alice"}
	if err := repos.Pledges.Create(ctx, dup); !errors.Is(err, domain.ErrPledgeExists) {
		t.Fatalf("expected ErrPledgeExists, got %v", err)
	}
	if err := repos.Pledges.Create(ctx, domain.Pledge{PledgeID: "p3", CampaignID: "c2", Pledger: "alice"}); err != nil {
		t.Fatalf("same pledger on another campaign must be allowed: %v", err)
	}
}

func TestPledgeAdjustBalance(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repos := NewRepositories()
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	if err := repos.Pledges.Create(ctx, domain.Pledge{PledgeID: "p1", CampaignID: "c1", Pledger: "alice", Balance: 5}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	got, err := repos.Pledges.AdjustBalance(ctx, "p1", 3, at)
	if err != nil || got.Balance != 8 {
		t.Fatalf("credit: %+v, %v", got, err)
	}
	got, err = repos.Pledges.AdjustBalance(ctx, "p1", -8, at)
	if err != nil || got.Balance != 0 {
		t.Fatalf("debit to zero: %+v, %v", got, err)
	}

	// Overdraw and overflow leave the stored balance untouched.
	if _, err := repos.Pledges.AdjustBalance(ctx, "p1", -1, at); !errors.Is(err, domain.ErrNotEnoughBalance) {
		t.Fatalf("expected ErrNotEnoughBalance, got %v", err)
	}
	if _, err := repos.Pledges.AdjustBalance(ctx, "p1", 1, at); err != nil {
		t.Fatalf("credit: %v", err)
	}
	if _, err := repos.Pledges.AdjustBalance(ctx, "p1", math.MaxInt64, at); !errors.Is(err, domain.ErrBalanceOverflow) {
		t.Fatalf("expected ErrBalanceOverflow, got %v", err)
	}
	got, err = repos.Pledges.GetByCampaignAndPledger(ctx, "c1", "alice")
	if err != nil || got.Balance != 1 {
		t.Fatalf("balance after rejected adjustments: %+v, %v", got, err)
	}

	if _, err := repos.Pledges.AdjustBalance(ctx, "missing", 1, at); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestOutboxMarkFailedRecordsError(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repos := NewRepositories()
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	if err := repos.Outbox.Enqueue(ctx, ports.OutboxRecord{RecordID: "r1", EventClass: domain.CanonicalEventClassDomain, CreatedAt: at}); err != nil {
		t.Fatalf("Enqueue: %v", err)
	}
	if err := repos.Outbox.MarkFailed(ctx, "r1", "broker unavailable", at.Add(time.Second)); err != nil {
		t.Fatalf("MarkFailed: %v", err)
	}
	if err := repos.Outbox.MarkFailed(ctx, "r1", "broker unavailable", at.Add(2*time.Second)); err != nil {
		t.Fatalf("MarkFailed: %v", err)
	}

	pending, err := repos.Outbox.ListPending(ctx, 10)
	if err != nil || len(pending) != 1 {
		t.Fatalf("ListPending: %v, %v", pending, err)
	}
	rec := pending[0]
	if rec.RetryCount != 2 || rec.LastError != "broker unavailable" {
		t.Fatalf("failure not recorded: %+v", rec)
	}
	if rec.LastErrorAt == nil || !rec.LastErrorAt.Equal(at.Add(2*time.Second)) {
		t.Fatalf("last error time not recorded: %+v", rec.LastErrorAt)
	}

	if err := repos.Outbox.MarkFailed(ctx, "missing", "x", at); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
