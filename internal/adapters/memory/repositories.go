// Package memory provides mutex-guarded in-memory implementations of the
// repository ports. They back unit tests and broker-less local runs; the
// postgres adapters are the durable implementations.
package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/viralforge/crowdfund-ledger-service/internal/domain"
	"github.com/viralforge/crowdfund-ledger-service/internal/ports"
)

type Repositories struct {
	Campaigns   *CampaignRepository
	Pledges     *PledgeRepository
	Idempotency *IdempotencyRepository
	Outbox      *OutboxRepository
}

func NewRepositories() *Repositories {
	return &Repositories{
		Campaigns: &CampaignRepository{
			campaigns: make(map[string]domain.Campaign),
			byTitle:   make(map[string]string),
		},
		Pledges: &PledgeRepository{
			pledges: make(map[string]domain.Pledge),
			byPair:  make(map[pairKey]string),
		},
		Idempotency: &IdempotencyRepository{
			records: make(map[string]ports.IdempotencyRecord),
		},
		Outbox: &OutboxRepository{
			records: make(map[string]ports.OutboxRecord),
		},
	}
}

type CampaignRepository struct {
	mu        sync.RWMutex
	campaigns map[string]domain.Campaign
	byTitle   map[string]string
}

func (r *CampaignRepository) Create(_ context.Context, campaign domain.Campaign) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byTitle[campaign.Title]; ok {
		return domain.ErrTitleTaken
	}
	r.campaigns[campaign.CampaignID] = campaign
	r.byTitle[campaign.Title] = campaign.CampaignID
	return nil
}

func (r *CampaignRepository) GetByID(_ context.Context, campaignID string) (domain.Campaign, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	campaign, ok := r.campaigns[campaignID]
	if !ok {
		return domain.Campaign{}, domain.ErrNotFound
	}
	return campaign, nil
}

func (r *CampaignRepository) GetByTitle(_ context.Context, title string) (domain.Campaign, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byTitle[title]
	if !ok {
		return domain.Campaign{}, domain.ErrNotFound
	}
	return r.campaigns[id], nil
}

type pairKey struct {
	campaignID string
	pledger    string
}

type PledgeRepository struct {
	mu      sync.RWMutex
	pledges map[string]domain.Pledge
	byPair  map[pairKey]string
	order   []string
}

func (r *PledgeRepository) Create(_ context.Context, pledge domain.Pledge) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := pairKey{campaignID: pledge.CampaignID, pledger: pledge.Pledger}
	if _, ok := r.byPair[key]; ok {
		return domain.ErrPledgeExists
	}
	r.pledges[pledge.PledgeID] = pledge
	r.byPair[key] = pledge.PledgeID
	r.order = append(r.order, pledge.PledgeID)
	return nil
}

func (r *PledgeRepository) GetByCampaignAndPledger(_ context.Context, campaignID, pledger string) (domain.Pledge, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byPair[pairKey{campaignID: campaignID, pledger: pledger}]
	if !ok {
		return domain.Pledge{}, domain.ErrNotFound
	}
	return r.pledges[id], nil
}

func (r *PledgeRepository) AdjustBalance(_ context.Context, pledgeID string, delta int64, at time.Time) (domain.Pledge, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	pledge, ok := r.pledges[pledgeID]
	if !ok {
		return domain.Pledge{}, domain.ErrNotFound
	}
	var (
		balance int64
		err     error
	)
	if delta >= 0 {
		balance, err = domain.CheckedAdd(pledge.Balance, delta)
	} else {
		balance, err = domain.CheckedSub(pledge.Balance, -delta)
	}
	if err != nil {
		return domain.Pledge{}, err
	}
	pledge.Balance = balance
	pledge.UpdatedAt = at
	r.pledges[pledgeID] = pledge
	return pledge, nil
}

func (r *PledgeRepository) Update(_ context.Context, pledge domain.Pledge) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.pledges[pledge.PledgeID]; !ok {
		return domain.ErrNotFound
	}
	r.pledges[pledge.PledgeID] = pledge
	return nil
}

func (r *PledgeRepository) ListByCampaignID(_ context.Context, campaignID string) ([]domain.Pledge, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Pledge, 0)
	for _, id := range r.order {
		pledge := r.pledges[id]
		if pledge.CampaignID == campaignID {
			out = append(out, pledge)
		}
	}
	return out, nil
}

type IdempotencyRepository struct {
	mu      sync.Mutex
	records map[string]ports.IdempotencyRecord
}

func (r *IdempotencyRepository) Get(_ context.Context, key string, now time.Time) (*ports.IdempotencyRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	record, ok := r.records[key]
	if !ok {
		return nil, nil
	}
	if now.After(record.ExpiresAt) {
		delete(r.records, key)
		return nil, nil
	}
	clone := record
	return &clone, nil
}

func (r *IdempotencyRepository) Reserve(_ context.Context, key, requestHash string, expiresAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.records[key]; ok {
		if existing.RequestHash != requestHash {
			return domain.ErrIdempotencyConflict
		}
		return nil
	}
	r.records[key] = ports.IdempotencyRecord{
		Key:         key,
		RequestHash: requestHash,
		ExpiresAt:   expiresAt,
	}
	return nil
}

func (r *IdempotencyRepository) Complete(_ context.Context, key string, responseCode int, responseBody []byte, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	record, ok := r.records[key]
	if !ok {
		return domain.ErrNotFound
	}
	record.ResponseCode = responseCode
	record.ResponseBody = slices.Clone(responseBody)
	if at.After(record.ExpiresAt) {
		record.ExpiresAt = at.Add(7 * 24 * time.Hour)
	}
	r.records[key] = record
	return nil
}

type OutboxRepository struct {
	mu      sync.Mutex
	records map[string]ports.OutboxRecord
	order   []string
}

func (r *OutboxRepository) Enqueue(_ context.Context, record ports.OutboxRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records[record.RecordID] = record
	r.order = append(r.order, record.RecordID)
	return nil
}

func (r *OutboxRepository) ListPending(_ context.Context, limit int) ([]ports.OutboxRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if limit <= 0 {
		limit = 100
	}
	out := make([]ports.OutboxRecord, 0, limit)
	for _, id := range r.order {
		record, ok := r.records[id]
		if !ok || record.SentAt != nil {
			continue
		}
		out = append(out, record)
		if len(out) >= limit {
			break
		}
	}
	return out, nil
}

func (r *OutboxRepository) MarkSent(_ context.Context, recordID string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	record, ok := r.records[recordID]
	if !ok {
		return domain.ErrNotFound
	}
	record.SentAt = &at
	r.records[recordID] = record
	return nil
}

func (r *OutboxRepository) MarkFailed(_ context.Context, recordID string, errMsg string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	record, ok := r.records[recordID]
	if !ok {
		return domain.ErrNotFound
	}
	record.RetryCount++
	record.LastError = errMsg
	record.LastErrorAt = &at
	r.records[recordID] = record
	return nil
}
