package postgres

import (
	"encoding/json"

	"github.com/viralforge/crowdfund-ledger-service/internal/contracts"
	"github.com/viralforge/crowdfund-ledger-service/internal/domain"
	"github.com/viralforge/crowdfund-ledger-service/internal/ports"
)

func toDomainCampaign(rec campaignModel) domain.Campaign {
	return domain.Campaign{
		CampaignID: rec.CampaignID,
		Owner:      rec.OwnerID,
		Treasury:   rec.TreasuryID,
		Title:      rec.Title,
		Goal:       rec.Goal,
		StartsAt:   rec.StartsAt.UTC(),
		EndsAt:     rec.EndsAt.UTC(),
		CreatedAt:  rec.CreatedAt.UTC(),
	}
}

func toCampaignModel(campaign domain.Campaign) campaignModel {
	return campaignModel{
		CampaignID: campaign.CampaignID,
		OwnerID:    campaign.Owner,
		TreasuryID: campaign.Treasury,
		Title:      campaign.Title,
		Goal:       campaign.Goal,
		StartsAt:   campaign.StartsAt,
		EndsAt:     campaign.EndsAt,
		CreatedAt:  campaign.CreatedAt,
	}
}

func toDomainPledge(rec pledgeModel) domain.Pledge {
	return domain.Pledge{
		PledgeID:      rec.PledgeID,
		CampaignID:    rec.CampaignID,
		Pledger:       rec.PledgerID,
		Balance:       rec.Balance,
		Claimed:       rec.Claimed,
		ClaimedAmount: rec.ClaimedAmount,
		CreatedAt:     rec.CreatedAt.UTC(),
		UpdatedAt:     rec.UpdatedAt.UTC(),
		ClaimedAt:     rec.ClaimedAt,
	}
}

func toPledgeModel(pledge domain.Pledge) pledgeModel {
	return pledgeModel{
		PledgeID:      pledge.PledgeID,
		CampaignID:    pledge.CampaignID,
		PledgerID:     pledge.Pledger,
		Balance:       pledge.Balance,
		Claimed:       pledge.Claimed,
		ClaimedAmount: pledge.ClaimedAmount,
		CreatedAt:     pledge.CreatedAt,
		UpdatedAt:     pledge.UpdatedAt,
		ClaimedAt:     pledge.ClaimedAt,
	}
}

func toOutboxRecord(rec outboxModel) (ports.OutboxRecord, error) {
	var env contracts.EventEnvelope
	if err := json.Unmarshal([]byte(rec.Envelope), &env); err != nil {
		return ports.OutboxRecord{}, err
	}
	record := ports.OutboxRecord{
		RecordID:    rec.RecordID,
		EventClass:  rec.EventClass,
		Envelope:    env,
		RetryCount:  rec.RetryCount,
		LastErrorAt: rec.LastErrorAt,
		CreatedAt:   rec.CreatedAt.UTC(),
		SentAt:      rec.SentAt,
	}
	if rec.LastError != nil {
		record.LastError = *rec.LastError
	}
	return record, nil
}
