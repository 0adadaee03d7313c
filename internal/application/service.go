package application

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"

	"github.com/google/uuid"
	"github.com/viralforge/crowdfund-ledger-service/internal/domain"
)

// CreateCampaign validates and persists a new campaign owned by the caller.
// The title is reserved as a uniqueness key; a second campaign with the same
// title fails with domain.ErrTitleTaken.
func (s *Service) CreateCampaign(ctx context.Context, actor Actor, input CreateCampaignInput) (domain.Campaign, error) {
	if strings.TrimSpace(actor.SubjectID) == "" {
		return domain.Campaign{}, domain.ErrUnauthorized
	}
	if strings.TrimSpace(actor.IdempotencyKey) == "" {
		return domain.Campaign{}, domain.ErrIdempotencyRequired
	}
	input.Title = strings.TrimSpace(input.Title)
	input.Treasury = strings.TrimSpace(input.Treasury)
	if input.Treasury == "" {
		return domain.Campaign{}, domain.ErrInvalidInput
	}
	requestHash := hashJSON(input)
	if cached, ok, err := getIdempotent[domain.Campaign](ctx, s, actor.IdempotencyKey, requestHash); err != nil {
		return domain.Campaign{}, err
	} else if ok {
		return cached, nil
	}
	if err := s.reserveIdempotency(ctx, actor.IdempotencyKey, requestHash); err != nil {
		return domain.Campaign{}, err
	}

	now := s.nowFn()
	if err := domain.ValidateCreateCampaignInput(domain.CreateCampaignInput{
		Title:    input.Title,
		Goal:     input.Goal,
		StartsAt: input.StartsAt,
		EndsAt:   input.EndsAt,
		Treasury: input.Treasury,
	}, now, s.cfg.MinimumGoal); err != nil {
		return domain.Campaign{}, err
	}

	campaign := domain.Campaign{
		CampaignID: uuid.NewString(),
		Owner:      actor.SubjectID,
		Treasury:   input.Treasury,
		Title:      input.Title,
		Goal:       input.Goal,
		StartsAt:   input.StartsAt.UTC(),
		EndsAt:     input.EndsAt.UTC(),
		CreatedAt:  now,
	}
	if err := s.campaigns.Create(ctx, campaign); err != nil {
		return domain.Campaign{}, err
	}
	if err := s.enqueueCampaignCreated(ctx, campaign, actor.RequestID, now); err != nil {
		return domain.Campaign{}, err
	}
	_ = s.completeIdempotencyJSON(ctx, actor.IdempotencyKey, 200, campaign)
	return campaign, nil
}

// OpenPledge creates a zero-balance, unclaimed pledge account bound to the
// (campaign, caller) pair. The campaign window must be open.
func (s *Service) OpenPledge(ctx context.Context, actor Actor, input OpenPledgeInput) (domain.Pledge, error) {
	if strings.TrimSpace(actor.SubjectID) == "" {
		return domain.Pledge{}, domain.ErrUnauthorized
	}
	if strings.TrimSpace(actor.IdempotencyKey) == "" {
		return domain.Pledge{}, domain.ErrIdempotencyRequired
	}
	requestHash := hashJSON(input)
	if cached, ok, err := getIdempotent[domain.Pledge](ctx, s, actor.IdempotencyKey, requestHash); err != nil {
		return domain.Pledge{}, err
	} else if ok {
		return cached, nil
	}
	if err := s.reserveIdempotency(ctx, actor.IdempotencyKey, requestHash); err != nil {
		return domain.Pledge{}, err
	}

	campaign, err := s.campaigns.GetByID(ctx, input.CampaignID)
	if err != nil {
		return domain.Pledge{}, err
	}
	now := s.nowFn()
	if err := campaign.Active(now); err != nil {
		return domain.Pledge{}, err
	}

	pledge := domain.Pledge{
		PledgeID:   uuid.NewString(),
		CampaignID: campaign.CampaignID,
		Pledger:    actor.SubjectID,
		Balance:    0,
		Claimed:    false,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.pledges.Create(ctx, pledge); err != nil {
		return domain.Pledge{}, err
	}
	if err := s.enqueuePledgeAccountCreated(ctx, pledge, actor.RequestID, now); err != nil {
		return domain.Pledge{}, err
	}
	_ = s.completeIdempotencyJSON(ctx, actor.IdempotencyKey, 200, pledge)
	return pledge, nil
}

// Pledge moves amount from the caller's funds into the pledge's custody and
// credits the pledge balance. The window must be open and the amount
// positive; a balance overflow aborts before any transfer happens.
func (s *Service) Pledge(ctx context.Context, actor Actor, input PledgeInput) (domain.Pledge, error) {
	if strings.TrimSpace(actor.SubjectID) == "" {
		return domain.Pledge{}, domain.ErrUnauthorized
	}
	if strings.TrimSpace(actor.IdempotencyKey) == "" {
		return domain.Pledge{}, domain.ErrIdempotencyRequired
	}
	requestHash := hashJSON(input)
	if cached, ok, err := getIdempotent[domain.Pledge](ctx, s, actor.IdempotencyKey, requestHash); err != nil {
		return domain.Pledge{}, err
	} else if ok {
		return cached, nil
	}
	if err := s.reserveIdempotency(ctx, actor.IdempotencyKey, requestHash); err != nil {
		return domain.Pledge{}, err
	}

	if input.Amount <= 0 {
		return domain.Pledge{}, domain.ErrZeroPledge
	}
	campaign, err := s.campaigns.GetByID(ctx, input.CampaignID)
	if err != nil {
		return domain.Pledge{}, err
	}
	now := s.nowFn()
	if err := campaign.Active(now); err != nil {
		return domain.Pledge{}, err
	}
	pledge, err := s.pledges.GetByCampaignAndPledger(ctx, campaign.CampaignID, actor.SubjectID)
	if err != nil {
		return domain.Pledge{}, err
	}

	if _, err := domain.CheckedAdd(pledge.Balance, input.Amount); err != nil {
		return domain.Pledge{}, err
	}
	custody := pledge.CustodyAccount()
	if err := s.ledger.Transfer(ctx, actor.SubjectID, custody, input.Amount); err != nil {
		return domain.Pledge{}, err
	}
	pledge, err = s.pledges.AdjustBalance(ctx, pledge.PledgeID, input.Amount, now)
	if err != nil {
		// Return the funds to the pledger when the credit cannot land, so
		// custody never holds more than the recorded balances.
		_ = s.ledger.Transfer(ctx, custody, actor.SubjectID, input.Amount)
		return domain.Pledge{}, err
	}
	if err := s.enqueuePledged(ctx, pledge, input.Amount, actor.RequestID, now); err != nil {
		return domain.Pledge{}, err
	}
	_ = s.completeIdempotencyJSON(ctx, actor.IdempotencyKey, 200, pledge)
	return pledge, nil
}

// Unpledge moves amount from the pledge's custody back to the caller and
// debits the pledge balance. The window must still be open and the amount
// covered by the current balance.
func (s *Service) Unpledge(ctx context.Context, actor Actor, input UnpledgeInput) (domain.Pledge, error) {
	if strings.TrimSpace(actor.SubjectID) == "" {
		return domain.Pledge{}, domain.ErrUnauthorized
	}
	if strings.TrimSpace(actor.IdempotencyKey) == "" {
		return domain.Pledge{}, domain.ErrIdempotencyRequired
	}
	requestHash := hashJSON(input)
	if cached, ok, err := getIdempotent[domain.Pledge](ctx, s, actor.IdempotencyKey, requestHash); err != nil {
		return domain.Pledge{}, err
	} else if ok {
		return cached, nil
	}
	if err := s.reserveIdempotency(ctx, actor.IdempotencyKey, requestHash); err != nil {
		return domain.Pledge{}, err
	}

	if input.Amount < 0 {
		return domain.Pledge{}, domain.ErrInvalidInput
	}
	campaign, err := s.campaigns.GetByID(ctx, input.CampaignID)
	if err != nil {
		return domain.Pledge{}, err
	}
	now := s.nowFn()
	if err := campaign.Active(now); err != nil {
		return domain.Pledge{}, err
	}
	pledge, err := s.pledges.GetByCampaignAndPledger(ctx, campaign.CampaignID, actor.SubjectID)
	if err != nil {
		return domain.Pledge{}, err
	}

	if _, err := domain.CheckedSub(pledge.Balance, input.Amount); err != nil {
		return domain.Pledge{}, err
	}
	custody := pledge.CustodyAccount()
	if err := s.ledger.Transfer(ctx, custody, actor.SubjectID, input.Amount); err != nil {
		return domain.Pledge{}, err
	}
	pledge, err = s.pledges.AdjustBalance(ctx, pledge.PledgeID, -input.Amount, now)
	if err != nil {
		// Put the funds back in custody when the debit cannot land, so the
		// recorded balance and the custody account stay matched.
		_ = s.ledger.Transfer(ctx, actor.SubjectID, custody, input.Amount)
		return domain.Pledge{}, err
	}
	if err := s.enqueueUnpledged(ctx, pledge, input.Amount, actor.RequestID, now); err != nil {
		return domain.Pledge{}, err
	}
	_ = s.completeIdempotencyJSON(ctx, actor.IdempotencyKey, 200, pledge)
	return pledge, nil
}

// Claim drains one pledge's balance to the campaign treasury, once. Only the
// campaign owner may claim, the supplied treasury must match the campaign's
// payout destination, and the window must have closed. A claimed pledge can
// never be claimed again or mutated further.
func (s *Service) Claim(ctx context.Context, actor Actor, input ClaimInput) (domain.Pledge, error) {
	if strings.TrimSpace(actor.SubjectID) == "" {
		return domain.Pledge{}, domain.ErrUnauthorized
	}
	if strings.TrimSpace(actor.IdempotencyKey) == "" {
		return domain.Pledge{}, domain.ErrIdempotencyRequired
	}
	requestHash := hashJSON(input)
	if cached, ok, err := getIdempotent[domain.Pledge](ctx, s, actor.IdempotencyKey, requestHash); err != nil {
		return domain.Pledge{}, err
	} else if ok {
		return cached, nil
	}
	if err := s.reserveIdempotency(ctx, actor.IdempotencyKey, requestHash); err != nil {
		return domain.Pledge{}, err
	}

	campaign, err := s.campaigns.GetByID(ctx, input.CampaignID)
	if err != nil {
		return domain.Pledge{}, err
	}
	pledge, err := s.pledges.GetByCampaignAndPledger(ctx, campaign.CampaignID, input.Pledger)
	if err != nil {
		return domain.Pledge{}, err
	}

	now := s.nowFn()
	if actor.SubjectID != campaign.Owner {
		return domain.Pledge{}, domain.ErrOnlyOwner
	}
	if strings.TrimSpace(input.Treasury) != campaign.Treasury {
		return domain.Pledge{}, domain.ErrInvalidTreasury
	}
	if !campaign.Ended(now) {
		return domain.Pledge{}, domain.ErrCrowdFundNotEnded
	}
	if pledge.Claimed {
		return domain.Pledge{}, domain.ErrCannotClaimTwice
	}
	if pledge.Balance <= 0 {
		return domain.Pledge{}, domain.ErrZeroPledgedAmount
	}

	amount := pledge.Balance
	if err := s.ledger.Transfer(ctx, pledge.CustodyAccount(), campaign.Treasury, amount); err != nil {
		return domain.Pledge{}, err
	}
	pledge.Balance = 0
	pledge.Claimed = true
	pledge.ClaimedAmount = amount
	pledge.UpdatedAt = now
	pledge.ClaimedAt = &now
	if err := s.pledges.Update(ctx, pledge); err != nil {
		return domain.Pledge{}, err
	}
	if err := s.enqueueClaimed(ctx, pledge, amount, campaign.Treasury, actor.RequestID, now); err != nil {
		return domain.Pledge{}, err
	}
	_ = s.completeIdempotencyJSON(ctx, actor.IdempotencyKey, 200, pledge)
	return pledge, nil
}

func (s *Service) GetCampaign(ctx context.Context, campaignID string) (domain.Campaign, error) {
	campaignID = strings.TrimSpace(campaignID)
	if campaignID == "" {
		return domain.Campaign{}, domain.ErrInvalidInput
	}
	return s.campaigns.GetByID(ctx, campaignID)
}

func (s *Service) GetPledge(ctx context.Context, campaignID, pledger string) (domain.Pledge, error) {
	campaignID = strings.TrimSpace(campaignID)
	pledger = strings.TrimSpace(pledger)
	if campaignID == "" || pledger == "" {
		return domain.Pledge{}, domain.ErrInvalidInput
	}
	return s.pledges.GetByCampaignAndPledger(ctx, campaignID, pledger)
}

// GetCampaignSummary projects pledge totals for display. The goal is
// advisory: nothing in the claim path consults it.
func (s *Service) GetCampaignSummary(ctx context.Context, campaignID string) (CampaignSummary, error) {
	campaign, err := s.GetCampaign(ctx, campaignID)
	if err != nil {
		return CampaignSummary{}, err
	}
	pledges, err := s.pledges.ListByCampaignID(ctx, campaign.CampaignID)
	if err != nil {
		return CampaignSummary{}, err
	}
	out := CampaignSummary{
		CampaignID:   campaign.CampaignID,
		Goal:         campaign.Goal,
		PledgeCount:  len(pledges),
		CalculatedAt: s.nowFn(),
	}
	for _, p := range pledges {
		out.TotalOutstanding += p.Balance
		out.TotalClaimed += p.ClaimedAmount
	}
	out.GoalReached = out.TotalOutstanding >= campaign.Goal
	return out, nil
}

func getIdempotent[T any](ctx context.Context, s *Service, key, requestHash string) (T, bool, error) {
	var zero T
	if s.idempotency == nil || strings.TrimSpace(key) == "" {
		return zero, false, nil
	}
	rec, err := s.idempotency.Get(ctx, key, s.nowFn())
	if err != nil || rec == nil {
		return zero, false, err
	}
	if rec.RequestHash != requestHash {
		return zero, false, domain.ErrIdempotencyConflict
	}
	if len(rec.ResponseBody) == 0 {
		return zero, false, nil
	}
	var out T
	if err := json.Unmarshal(rec.ResponseBody, &out); err != nil {
		return zero, false, nil
	}
	return out, true, nil
}

func (s *Service) reserveIdempotency(ctx context.Context, key, requestHash string) error {
	if s.idempotency == nil {
		return nil
	}
	err := s.idempotency.Reserve(ctx, key, requestHash, s.nowFn().Add(s.cfg.IdempotencyTTL))
	if err == domain.ErrConflict {
		return domain.ErrIdempotencyConflict
	}
	return err
}

func (s *Service) completeIdempotencyJSON(ctx context.Context, key string, code int, payload any) error {
	if s.idempotency == nil || strings.TrimSpace(key) == "" {
		return nil
	}
	b, _ := json.Marshal(payload)
	return s.idempotency.Complete(ctx, key, code, b, s.nowFn())
}

func hashJSON(v any) string {
	b, _ := json.Marshal(v)
	h := sha256.Sum256(b)
	return hex.EncodeToString(h[:])
}
