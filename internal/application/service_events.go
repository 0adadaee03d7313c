package application

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/viralforge/crowdfund-ledger-service/internal/contracts"
	"github.com/viralforge/crowdfund-ledger-service/internal/domain"
	"github.com/viralforge/crowdfund-ledger-service/internal/ports"
)

func (s *Service) enqueueEvent(ctx context.Context, eventType, traceID string, data any, campaignID string, now time.Time) error {
	if s.outbox == nil {
		return nil
	}
	if !domain.IsCanonicalEmittedEvent(eventType) {
		return domain.ErrInvalidInput
	}
	b, err := json.Marshal(data)
	if err != nil {
		return domain.ErrInvalidInput
	}
	if strings.TrimSpace(traceID) == "" {
		traceID = uuid.NewString()
	}
	env := contracts.EventEnvelope{
		EventID:          uuid.NewString(),
		EventType:        eventType,
		EventClass:       domain.CanonicalEventClass(eventType),
		OccurredAt:       now,
		PartitionKeyPath: domain.CanonicalPartitionKeyPath(eventType),
		PartitionKey:     campaignID,
		SourceService:    s.cfg.ServiceName,
		TraceID:          traceID,
		SchemaVersion:    "v1",
		Data:             b,
	}
	return s.outbox.Enqueue(ctx, ports.OutboxRecord{
		RecordID:   uuid.NewString(),
		EventClass: env.EventClass,
		Envelope:   env,
		CreatedAt:  now,
	})
}

func (s *Service) enqueueCampaignCreated(ctx context.Context, campaign domain.Campaign, traceID string, now time.Time) error {
	return s.enqueueEvent(ctx, domain.EventCampaignCreated, traceID, contracts.CampaignCreatedPayload{
		CampaignID: campaign.CampaignID,
		Owner:      campaign.Owner,
		Title:      campaign.Title,
		Goal:       campaign.Goal,
		StartsAt:   campaign.StartsAt.UTC().Format(time.RFC3339),
		EndsAt:     campaign.EndsAt.UTC().Format(time.RFC3339),
	}, campaign.CampaignID, now)
}

func (s *Service) enqueuePledgeAccountCreated(ctx context.Context, pledge domain.Pledge, traceID string, now time.Time) error {
	return s.enqueueEvent(ctx, domain.EventPledgeAccountCreated, traceID, contracts.PledgeAccountCreatedPayload{
		CampaignID: pledge.CampaignID,
		PledgeID:   pledge.PledgeID,
		Pledger:    pledge.Pledger,
	}, pledge.CampaignID, now)
}

func (s *Service) enqueuePledged(ctx context.Context, pledge domain.Pledge, amount int64, traceID string, now time.Time) error {
	return s.enqueueEvent(ctx, domain.EventPledged, traceID, contracts.PledgedPayload{
		CampaignID: pledge.CampaignID,
		PledgeID:   pledge.PledgeID,
		Amount:     amount,
		Balance:    pledge.Balance,
		PledgedAt:  now.UTC().Format(time.RFC3339),
	}, pledge.CampaignID, now)
}

func (s *Service) enqueueUnpledged(ctx context.Context, pledge domain.Pledge, amount int64, traceID string, now time.Time) error {
	return s.enqueueEvent(ctx, domain.EventUnpledged, traceID, contracts.UnpledgedPayload{
		CampaignID:  pledge.CampaignID,
		PledgeID:    pledge.PledgeID,
		Amount:      amount,
		Balance:     pledge.Balance,
		UnpledgedAt: now.UTC().Format(time.RFC3339),
	}, pledge.CampaignID, now)
}

func (s *Service) enqueueClaimed(ctx context.Context, pledge domain.Pledge, amount int64, treasury, traceID string, now time.Time) error {
	return s.enqueueEvent(ctx, domain.EventClaimed, traceID, contracts.ClaimedPayload{
		CampaignID: pledge.CampaignID,
		PledgeID:   pledge.PledgeID,
		Amount:     amount,
		Treasury:   treasury,
		ClaimedAt:  now.UTC().Format(time.RFC3339),
	}, pledge.CampaignID, now)
}
