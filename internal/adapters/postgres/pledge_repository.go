package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/viralforge/crowdfund-ledger-service/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type pledgeRepository struct {
	db *gorm.DB
}

func (r *pledgeRepository) Create(ctx context.Context, pledge domain.Pledge) error {
	rec := toPledgeModel(pledge)
	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		// One pledge per (campaign, pledger) pair, enforced by the unique index.
		if isUniqueViolation(err) {
			return domain.ErrPledgeExists
		}
		return err
	}
	return nil
}

func (r *pledgeRepository) GetByCampaignAndPledger(ctx context.Context, campaignID, pledger string) (domain.Pledge, error) {
	var rec pledgeModel
	if err := r.db.WithContext(ctx).Where("campaign_id = ? AND pledger_id = ?", campaignID, pledger).Take(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Pledge{}, domain.ErrNotFound
		}
		return domain.Pledge{}, err
	}
	return toDomainPledge(rec), nil
}

// AdjustBalance locks the pledge row for the duration of the balance write so
// concurrent pledges against the same pledge apply in sequence.
func (r *pledgeRepository) AdjustBalance(ctx context.Context, pledgeID string, delta int64, at time.Time) (domain.Pledge, error) {
	var rec pledgeModel
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("pledge_id = ?", pledgeID).Take(&rec).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrNotFound
			}
			return err
		}
		var (
			balance int64
			mathErr error
		)
		if delta >= 0 {
			balance, mathErr = domain.CheckedAdd(rec.Balance, delta)
		} else {
			balance, mathErr = domain.CheckedSub(rec.Balance, -delta)
		}
		if mathErr != nil {
			return mathErr
		}
		rec.Balance = balance
		rec.UpdatedAt = at.UTC()
		return tx.Model(&pledgeModel{}).Where("pledge_id = ?", pledgeID).Updates(map[string]any{
			"balance":    rec.Balance,
			"updated_at": rec.UpdatedAt,
		}).Error
	})
	if err != nil {
		return domain.Pledge{}, err
	}
	return toDomainPledge(rec), nil
}

func (r *pledgeRepository) Update(ctx context.Context, pledge domain.Pledge) error {
	rec := toPledgeModel(pledge)
	res := r.db.WithContext(ctx).Model(&pledgeModel{}).Where("pledge_id = ?", pledge.PledgeID).Updates(map[string]any{
		"balance":        rec.Balance,
		"claimed":        rec.Claimed,
		"claimed_amount": rec.ClaimedAmount,
		"updated_at":     rec.UpdatedAt,
		"claimed_at":     rec.ClaimedAt,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *pledgeRepository) ListByCampaignID(ctx context.Context, campaignID string) ([]domain.Pledge, error) {
	var rows []pledgeModel
	if err := r.db.WithContext(ctx).Where("campaign_id = ?", campaignID).Order("created_at asc").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]domain.Pledge, 0, len(rows))
	for _, row := range rows {
		out = append(out, toDomainPledge(row))
	}
	return out, nil
}
