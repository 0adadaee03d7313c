package domain

import (
	"math"
	"time"
)

// Pledge records one contributor's committed funds against one campaign.
// There is at most one pledge per (campaign, pledger) pair. Balance is held
// in base currency units and never goes negative. Claimed transitions
// false → true exactly once and forecloses all further balance mutation.
type Pledge struct {
	PledgeID   string     `json:"pledge_id"`
	CampaignID string     `json:"campaign_id"`
	Pledger    string     `json:"pledger"`
	Balance    int64      `json:"balance"`
	Claimed    bool       `json:"claimed"`
	// ClaimedAmount is the balance drained to the treasury when the pledge
	// was claimed. Zero until then.
	ClaimedAmount int64      `json:"claimed_amount"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
	ClaimedAt     *time.Time `json:"claimed_at,omitempty"`
}

// CustodyAccount is the funds-ledger account holding this pledge's committed
// amount while the campaign runs.
func (p Pledge) CustodyAccount() string {
	return "pledge:" + p.PledgeID
}

// CheckedAdd returns balance+amount, or ErrBalanceOverflow if the sum does
// not fit in int64. Callers must abort the whole operation on overflow.
func CheckedAdd(balance, amount int64) (int64, error) {
	if amount > math.MaxInt64-balance {
		return 0, ErrBalanceOverflow
	}
	return balance + amount, nil
}

// CheckedSub returns balance-amount, or ErrNotEnoughBalance if the result
// would go negative.
func CheckedSub(balance, amount int64) (int64, error) {
	if amount > balance {
		return 0, ErrNotEnoughBalance
	}
	return balance - amount, nil
}
