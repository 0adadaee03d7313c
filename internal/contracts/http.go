package contracts

type SuccessResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

type ErrorPayload struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

type ErrorResponse struct {
	Status string       `json:"status"`
	Error  ErrorPayload `json:"error"`
}

// Amount fields: Amount carries base currency units. AmountDecimal optionally
// carries display units as a decimal string ("2.5") and is converted to base
// units by the HTTP adapter; exactly one of the two must be set.
type CreateCampaignRequest struct {
	Title       string `json:"title"`
	Goal        int64  `json:"goal,omitempty"`
	GoalDecimal string `json:"goal_decimal,omitempty"`
	StartsAt    int64  `json:"starts_at"`
	EndsAt      int64  `json:"ends_at"`
	Treasury    string `json:"treasury"`
}

type PledgeRequest struct {
	Amount        int64  `json:"amount,omitempty"`
	AmountDecimal string `json:"amount_decimal,omitempty"`
}

type UnpledgeRequest struct {
	Amount        int64  `json:"amount,omitempty"`
	AmountDecimal string `json:"amount_decimal,omitempty"`
}

type ClaimRequest struct {
	Pledger  string `json:"pledger"`
	Treasury string `json:"treasury"`
}

type CampaignResponse struct {
	CampaignID string `json:"campaign_id"`
	Owner      string `json:"owner"`
	Treasury   string `json:"treasury"`
	Title      string `json:"title"`
	Goal       int64  `json:"goal"`
	StartsAt   int64  `json:"starts_at"`
	EndsAt     int64  `json:"ends_at"`
	CreatedAt  int64  `json:"created_at"`
}

type PledgeResponse struct {
	PledgeID      string `json:"pledge_id"`
	CampaignID    string `json:"campaign_id"`
	Pledger       string `json:"pledger"`
	Balance       int64  `json:"balance"`
	Claimed       bool   `json:"claimed"`
	ClaimedAmount int64  `json:"claimed_amount,omitempty"`
	ClaimedAt     int64  `json:"claimed_at,omitempty"`
}

type DepositRequest struct {
	Amount        int64  `json:"amount,omitempty"`
	AmountDecimal string `json:"amount_decimal,omitempty"`
}

type WalletBalanceResponse struct {
	Account      string `json:"account"`
	Balance      int64  `json:"balance"`
	CalculatedAt int64  `json:"calculated_at"`
}

type CampaignSummaryResponse struct {
	CampaignID       string `json:"campaign_id"`
	Goal             int64  `json:"goal"`
	PledgeCount      int    `json:"pledge_count"`
	TotalOutstanding int64  `json:"total_outstanding"`
	TotalClaimed     int64  `json:"total_claimed"`
	GoalReached      bool   `json:"goal_reached"`
	CalculatedAt     int64  `json:"calculated_at"`
}
