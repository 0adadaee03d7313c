package application

import (
	"time"

	"github.com/viralforge/crowdfund-ledger-service/internal/ports"
)

type Config struct {
	ServiceName          string
	MinimumGoal          int64
	IdempotencyTTL       time.Duration
	OutboxFlushBatchSize int
}

// Actor is the authenticated caller of an operation. SubjectID is the
// explicit caller identity checked against campaign ownership; there is no
// ambient identity anywhere in the core.
type Actor struct {
	SubjectID      string
	RequestID      string
	IdempotencyKey string
}

type CreateCampaignInput struct {
	Title    string
	Goal     int64
	StartsAt time.Time
	EndsAt   time.Time
	Treasury string
}

type OpenPledgeInput struct {
	CampaignID string
}

type PledgeInput struct {
	CampaignID string
	Amount     int64
}

type UnpledgeInput struct {
	CampaignID string
	Amount     int64
}

type ClaimInput struct {
	CampaignID string
	Pledger    string
	Treasury   string
}

type DepositInput struct {
	Amount int64
}

type WalletBalance struct {
	Account      string
	Balance      int64
	CalculatedAt time.Time
}

type CampaignSummary struct {
	CampaignID       string
	Goal             int64
	PledgeCount      int
	TotalOutstanding int64
	TotalClaimed     int64
	GoalReached      bool
	CalculatedAt     time.Time
}

type Service struct {
	cfg         Config
	campaigns   ports.CampaignRepository
	pledges     ports.PledgeRepository
	idempotency ports.IdempotencyRepository
	outbox      ports.OutboxRepository
	ledger      ports.FundsLedger
	nowFn       func() time.Time
}

type Dependencies struct {
	Config      Config
	Campaigns   ports.CampaignRepository
	Pledges     ports.PledgeRepository
	Idempotency ports.IdempotencyRepository
	Outbox      ports.OutboxRepository
	Ledger      ports.FundsLedger
	// Now overrides the clock; the service re-reads it on every call. Tests
	// inject a fake clock here.
	Now func() time.Time
}

func NewService(deps Dependencies) *Service {
	cfg := deps.Config
	if cfg.ServiceName == "" {
		cfg.ServiceName = "Crowdfund-Ledger-Service"
	}
	if cfg.MinimumGoal <= 0 {
		cfg.MinimumGoal = 1_000_000_000
	}
	if cfg.IdempotencyTTL <= 0 {
		cfg.IdempotencyTTL = 7 * 24 * time.Hour
	}
	if cfg.OutboxFlushBatchSize <= 0 {
		cfg.OutboxFlushBatchSize = 100
	}
	nowFn := deps.Now
	if nowFn == nil {
		nowFn = func() time.Time { return time.Now().UTC() }
	}
	return &Service{
		cfg:         cfg,
		campaigns:   deps.Campaigns,
		pledges:     deps.Pledges,
		idempotency: deps.Idempotency,
		outbox:      deps.Outbox,
		ledger:      deps.Ledger,
		nowFn:       nowFn,
	}
}
