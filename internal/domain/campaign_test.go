package domain

import (
	"errors"
	"testing"
	"time"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func validInput() CreateCampaignInput {
	return CreateCampaignInput{
		Title:    "save the reef fund",
		Goal:     5_000_000_000,
		StartsAt: testNow.Add(time.Hour),
		EndsAt:   testNow.Add(10 * 24 * time.Hour),
		Treasury: "treasury_1",
	}
}

func TestValidateCreateCampaignInput(t *testing.T) {
	t.Parallel()

	if err := ValidateCreateCampaignInput(validInput(), testNow, 1_000_000_000); err != nil {
		t.Fatalf("expected valid input, got %v", err)
	}

	past := validInput()
	past.StartsAt = testNow.Add(-time.Minute)
	if err := ValidateCreateCampaignInput(past, testNow, 1_000_000_000); !errors.Is(err, ErrInvalidStartingTime) {
		t.Fatalf("expected ErrInvalidStartingTime, got %v", err)
	}

	atNow := validInput()
	atNow.StartsAt = testNow
	if err := ValidateCreateCampaignInput(atNow, testNow, 1_000_000_000); !errors.Is(err, ErrInvalidStartingTime) {
		t.Fatalf("expected ErrInvalidStartingTime for starts_at == now, got %v", err)
	}

	inverted := validInput()
	inverted.EndsAt = inverted.StartsAt
	if err := ValidateCreateCampaignInput(inverted, testNow, 1_000_000_000); !errors.Is(err, ErrInvalidEndingTime) {
		t.Fatalf("expected ErrInvalidEndingTime, got %v", err)
	}

	tooLong := validInput()
	tooLong.EndsAt = testNow.Add(MaxCampaignDuration + time.Second)
	if err := ValidateCreateCampaignInput(tooLong, testNow, 1_000_000_000); !errors.Is(err, ErrExceedEndingTime) {
		t.Fatalf("expected ErrExceedEndingTime, got %v", err)
	}

	atCap := validInput()
	atCap.EndsAt = testNow.Add(MaxCampaignDuration)
	if err := ValidateCreateCampaignInput(atCap, testNow, 1_000_000_000); err != nil {
		t.Fatalf("expected ends_at == now+cap to be accepted, got %v", err)
	}

	lowGoal := validInput()
	lowGoal.Goal = 999_999_999
	if err := ValidateCreateCampaignInput(lowGoal, testNow, 1_000_000_000); !errors.Is(err, ErrInvalidGoalAmount) {
		t.Fatalf("expected ErrInvalidGoalAmount, got %v", err)
	}

	shortTitle := validInput()
	shortTitle.Title = "too short"
	if err := ValidateCreateCampaignInput(shortTitle, testNow, 1_000_000_000); !errors.Is(err, ErrInvalidTitleLength) {
		t.Fatalf("expected ErrInvalidTitleLength, got %v", err)
	}
}

func TestValidateCreateCampaignInputOrder(t *testing.T) {
	t.Parallel()

	// Everything wrong at once: the starting-time check wins.
	bad := CreateCampaignInput{
		Title:    "x",
		Goal:     1,
		StartsAt: testNow.Add(-time.Hour),
		EndsAt:   testNow.Add(-2 * time.Hour),
	}
	if err := ValidateCreateCampaignInput(bad, testNow, 1_000_000_000); !errors.Is(err, ErrInvalidStartingTime) {
		t.Fatalf("expected ErrInvalidStartingTime first, got %v", err)
	}

	bad.StartsAt = testNow.Add(time.Hour)
	bad.EndsAt = testNow.Add(time.Minute)
	if err := ValidateCreateCampaignInput(bad, testNow, 1_000_000_000); !errors.Is(err, ErrInvalidEndingTime) {
		t.Fatalf("expected ErrInvalidEndingTime second, got %v", err)
	}

	bad.EndsAt = testNow.Add(2 * time.Hour)
	if err := ValidateCreateCampaignInput(bad, testNow, 1_000_000_000); !errors.Is(err, ErrInvalidGoalAmount) {
		t.Fatalf("expected ErrInvalidGoalAmount before title check, got %v", err)
	}
}

func TestCampaignActiveWindowExclusive(t *testing.T) {
	t.Parallel()

	campaign := Campaign{
		StartsAt: testNow,
		EndsAt:   testNow.Add(time.Hour),
	}
	if err := campaign.Active(testNow); !errors.Is(err, ErrCrowdFundNotStarted) {
		t.Fatalf("expected ErrCrowdFundNotStarted at starts_at, got %v", err)
	}
	if err := campaign.Active(testNow.Add(time.Second)); err != nil {
		t.Fatalf("expected active just after starts_at, got %v", err)
	}
	if err := campaign.Active(campaign.EndsAt); !errors.Is(err, ErrCrowdFundEnded) {
		t.Fatalf("expected ErrCrowdFundEnded at ends_at, got %v", err)
	}
	if err := campaign.Active(campaign.EndsAt.Add(time.Second)); !errors.Is(err, ErrCrowdFundEnded) {
		t.Fatalf("expected ErrCrowdFundEnded after ends_at, got %v", err)
	}
}

func TestCampaignEnded(t *testing.T) {
	t.Parallel()

	campaign := Campaign{EndsAt: testNow}
	if campaign.Ended(testNow) {
		t.Fatalf("campaign must not count as ended at ends_at itself")
	}
	if !campaign.Ended(testNow.Add(time.Second)) {
		t.Fatalf("campaign must count as ended after ends_at")
	}
}
