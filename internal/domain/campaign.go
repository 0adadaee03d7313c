package domain

import (
	"strings"
	"time"
)

// MaxCampaignDuration is the longest allowed window between creation and the
// campaign's ending time. Matches the 30-day cap of the funding program.
const MaxCampaignDuration = 30 * 24 * time.Hour

// MinTitleLength is the shortest accepted campaign title. The title doubles as
// the campaign's uniqueness key, so trivially short titles are rejected.
const MinTitleLength = 10

// Campaign is a time-boxed fundraising request. Every field is set once at
// creation and never mutated afterwards; the core treats campaigns as
// read-only after CreateCampaign.
type Campaign struct {
	CampaignID string    `json:"campaign_id"`
	Owner      string    `json:"owner"`
	Treasury   string    `json:"treasury"`
	Title      string    `json:"title"`
	Goal       int64     `json:"goal"`
	StartsAt   time.Time `json:"starts_at"`
	EndsAt     time.Time `json:"ends_at"`
	CreatedAt  time.Time `json:"created_at"`
}

type CreateCampaignInput struct {
	Title    string
	Goal     int64
	StartsAt time.Time
	EndsAt   time.Time
	Treasury string
}

// ValidateCreateCampaignInput applies the campaign creation preconditions in
// their fixed order: starting time, ending time, window cap, goal, title.
// The first violated precondition wins.
func ValidateCreateCampaignInput(input CreateCampaignInput, now time.Time, minimumGoal int64) error {
	if !input.StartsAt.After(now) {
		return ErrInvalidStartingTime
	}
	if !input.EndsAt.After(input.StartsAt) {
		return ErrInvalidEndingTime
	}
	if input.EndsAt.After(now.Add(MaxCampaignDuration)) {
		return ErrExceedEndingTime
	}
	if input.Goal < minimumGoal {
		return ErrInvalidGoalAmount
	}
	if len(strings.TrimSpace(input.Title)) < MinTitleLength {
		return ErrInvalidTitleLength
	}
	return nil
}

// Active reports whether the campaign window is open at the given instant.
// The window is exclusive on both ends: startsAt < now < endsAt.
func (c Campaign) Active(now time.Time) error {
	if !c.StartsAt.Before(now) {
		return ErrCrowdFundNotStarted
	}
	if !c.EndsAt.After(now) {
		return ErrCrowdFundEnded
	}
	return nil
}

// Ended reports whether the window has closed, which is the gate for claims.
func (c Campaign) Ended(now time.Time) bool {
	return c.EndsAt.Before(now)
}
