package ports

import (
	"context"
	"time"

	"github.com/viralforge/crowdfund-ledger-service/internal/contracts"
	"github.com/viralforge/crowdfund-ledger-service/internal/domain"
)

type CampaignRepository interface {
	// Create persists the campaign, reserving its title as a uniqueness key.
	// A duplicate title fails with domain.ErrTitleTaken.
	Create(ctx context.Context, campaign domain.Campaign) error
	GetByID(ctx context.Context, campaignID string) (domain.Campaign, error)
	GetByTitle(ctx context.Context, title string) (domain.Campaign, error)
}

type PledgeRepository interface {
	// Create persists a new pledge bound to one (campaign, pledger) pair.
	// A duplicate pair fails with domain.ErrPledgeExists.
	Create(ctx context.Context, pledge domain.Pledge) error
	GetByCampaignAndPledger(ctx context.Context, campaignID, pledger string) (domain.Pledge, error)
	// AdjustBalance applies a signed delta to one pledge's balance and
	// returns the updated pledge. Implementations must serialize concurrent
	// adjustments on the same pledge so no credit is lost. A result below
	// zero fails with domain.ErrNotEnoughBalance, above the int64 range with
	// domain.ErrBalanceOverflow, and in either case the stored balance is
	// left untouched.
	AdjustBalance(ctx context.Context, pledgeID string, delta int64, at time.Time) (domain.Pledge, error)
	Update(ctx context.Context, pledge domain.Pledge) error
	ListByCampaignID(ctx context.Context, campaignID string) ([]domain.Pledge, error)
}

type IdempotencyRecord struct {
	Key          string
	RequestHash  string
	ResponseCode int
	ResponseBody []byte
	ExpiresAt    time.Time
}

type IdempotencyRepository interface {
	Get(ctx context.Context, key string, now time.Time) (*IdempotencyRecord, error)
	Reserve(ctx context.Context, key, requestHash string, expiresAt time.Time) error
	Complete(ctx context.Context, key string, responseCode int, responseBody []byte, at time.Time) error
}

type OutboxRecord struct {
	RecordID   string
	EventClass string
	Envelope   contracts.EventEnvelope
	RetryCount  int
	LastError   string
	LastErrorAt *time.Time
	CreatedAt   time.Time
	SentAt      *time.Time
}

type OutboxRepository interface {
	Enqueue(ctx context.Context, record OutboxRecord) error
	ListPending(ctx context.Context, limit int) ([]OutboxRecord, error)
	MarkSent(ctx context.Context, recordID string, at time.Time) error
	MarkFailed(ctx context.Context, recordID string, errMsg string, at time.Time) error
}
