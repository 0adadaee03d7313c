package domain

const (
	CanonicalEventClassDomain        = "domain"
	CanonicalEventClassAnalyticsOnly = "analytics_only"
)

const (
	EventCampaignCreated      = "crowdfund.campaign_created"
	EventPledgeAccountCreated = "crowdfund.pledge_account_created"
	EventPledged              = "crowdfund.pledged"
	EventUnpledged            = "crowdfund.unpledged"
	EventClaimed              = "crowdfund.claimed"
)

func IsCanonicalEmittedEvent(eventType string) bool {
	switch eventType {
	case EventCampaignCreated, EventPledgeAccountCreated, EventPledged, EventUnpledged, EventClaimed:
		return true
	default:
		return false
	}
}

func CanonicalEventClass(eventType string) string {
	switch eventType {
	case EventCampaignCreated, EventClaimed:
		return CanonicalEventClassDomain
	case EventPledgeAccountCreated, EventPledged, EventUnpledged:
		return CanonicalEventClassAnalyticsOnly
	default:
		return ""
	}
}

func CanonicalPartitionKeyPath(eventType string) string {
	if IsCanonicalEmittedEvent(eventType) {
		return "data.campaign_id"
	}
	return ""
}
