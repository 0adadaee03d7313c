package postgres

import "time"

type campaignModel struct {
	CampaignID string    `gorm:"column:campaign_id;type:uuid;primaryKey"`
	OwnerID    string    `gorm:"column:owner_id"`
	TreasuryID string    `gorm:"column:treasury_id"`
	Title      string    `gorm:"column:title"`
	Goal       int64     `gorm:"column:goal"`
	StartsAt   time.Time `gorm:"column:starts_at"`
	EndsAt     time.Time `gorm:"column:ends_at"`
	CreatedAt  time.Time `gorm:"column:created_at"`
}

func (campaignModel) TableName() string { return "campaigns" }

type pledgeModel struct {
	PledgeID      string     `gorm:"column:pledge_id;type:uuid;primaryKey"`
	CampaignID    string     `gorm:"column:campaign_id;type:uuid"`
	PledgerID     string     `gorm:"column:pledger_id"`
	Balance       int64      `gorm:"column:balance"`
	Claimed       bool       `gorm:"column:claimed"`
	ClaimedAmount int64      `gorm:"column:claimed_amount"`
	CreatedAt     time.Time  `gorm:"column:created_at"`
	UpdatedAt     time.Time  `gorm:"column:updated_at"`
	ClaimedAt     *time.Time `gorm:"column:claimed_at"`
}

func (pledgeModel) TableName() string { return "pledges" }

type outboxModel struct {
	RecordID    string     `gorm:"column:record_id;type:uuid;primaryKey"`
	EventClass  string     `gorm:"column:event_class"`
	Envelope    string     `gorm:"column:envelope"`
	RetryCount  int        `gorm:"column:retry_count"`
	LastError   *string    `gorm:"column:last_error"`
	LastErrorAt *time.Time `gorm:"column:last_error_at"`
	CreatedAt   time.Time  `gorm:"column:created_at"`
	SentAt      *time.Time `gorm:"column:sent_at"`
}

func (outboxModel) TableName() string { return "outbox" }

type idempotencyModel struct {
	IdempotencyKey string    `gorm:"column:idempotency_key;primaryKey"`
	RequestHash    string    `gorm:"column:request_hash"`
	ResponseCode   *int      `gorm:"column:response_code"`
	ResponseBody   *string   `gorm:"column:response_body"`
	ExpiresAt      time.Time `gorm:"column:expires_at"`
	CreatedAt      time.Time `gorm:"column:created_at"`
	UpdatedAt      time.Time `gorm:"column:updated_at"`
}

func (idempotencyModel) TableName() string { return "idempotency_records" }
