package contracts

import (
	"encoding/json"
	"time"
)

type EventEnvelope struct {
	EventID          string          `json:"event_id"`
	EventType        string          `json:"event_type"`
	EventClass       string          `json:"event_class,omitempty"`
	OccurredAt       time.Time       `json:"occurred_at"`
	PartitionKeyPath string          `json:"partition_key_path"`
	PartitionKey     string          `json:"partition_key"`
	SourceService    string          `json:"source_service"`
	TraceID          string          `json:"trace_id"`
	SchemaVersion    string          `json:"schema_version"`
	Data             json.RawMessage `json:"data"`
}

type CampaignCreatedPayload struct {
	CampaignID string `json:"campaign_id"`
	Owner      string `json:"owner"`
	Title      string `json:"title"`
	Goal       int64  `json:"goal"`
	StartsAt   string `json:"starts_at"`
	EndsAt     string `json:"ends_at"`
}

type PledgeAccountCreatedPayload struct {
	CampaignID string `json:"campaign_id"`
	PledgeID   string `json:"pledge_id"`
	Pledger    string `json:"pledger"`
}

type PledgedPayload struct {
	CampaignID string `json:"campaign_id"`
	PledgeID   string `json:"pledge_id"`
	Amount     int64  `json:"amount"`
	Balance    int64  `json:"balance"`
	PledgedAt  string `json:"pledged_at"`
}

type UnpledgedPayload struct {
	CampaignID  string `json:"campaign_id"`
	PledgeID    string `json:"pledge_id"`
	Amount      int64  `json:"amount"`
	Balance     int64  `json:"balance"`
	UnpledgedAt string `json:"unpledged_at"`
}

type ClaimedPayload struct {
	CampaignID string `json:"campaign_id"`
	PledgeID   string `json:"pledge_id"`
	Amount     int64  `json:"amount"`
	Treasury   string `json:"treasury"`
	ClaimedAt  string `json:"claimed_at"`
}
