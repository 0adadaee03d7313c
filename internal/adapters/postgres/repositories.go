package postgres

import "gorm.io/gorm"

type Repositories struct {
	Campaigns   *campaignRepository
	Pledges     *pledgeRepository
	Outbox      *outboxRepository
	Idempotency *idempotencyRepository
}

func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Campaigns:   &campaignRepository{db: db},
		Pledges:     &pledgeRepository{db: db},
		Outbox:      &outboxRepository{db: db},
		Idempotency: &idempotencyRepository{db: db},
	}
}
