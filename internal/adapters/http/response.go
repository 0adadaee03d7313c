package http

import (
	"encoding/json"
	"net/http"

	"github.com/viralforge/crowdfund-ledger-service/internal/contracts"
	"github.com/viralforge/crowdfund-ledger-service/internal/domain"
)

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeSuccess(w http.ResponseWriter, status int, message string, data any) {
	writeJSON(w, status, contracts.SuccessResponse{
		Status:  "success",
		Message: message,
		Data:    data,
	})
}

func writeError(w http.ResponseWriter, status int, code, message, requestID string) {
	writeJSON(w, status, contracts.ErrorResponse{
		Status: "error",
		Error: contracts.ErrorPayload{
			Code:      code,
			Message:   message,
			RequestID: requestID,
		},
	})
}

// mapDomainError maps every named failure kind onto a stable HTTP status and
// machine-readable code so callers can branch on cause.
func mapDomainError(err error) (status int, code string) {
	switch err {
	case nil:
		return http.StatusOK, ""
	case domain.ErrUnauthorized:
		return http.StatusUnauthorized, "unauthorized"
	case domain.ErrOnlyOwner:
		return http.StatusForbidden, "only_owner"
	case domain.ErrInvalidTreasury:
		return http.StatusForbidden, "invalid_treasury"
	case domain.ErrNotFound:
		return http.StatusNotFound, "not_found"
	case domain.ErrTitleTaken:
		return http.StatusConflict, "title_taken"
	case domain.ErrPledgeExists:
		return http.StatusConflict, "pledge_exists"
	case domain.ErrIdempotencyRequired:
		return http.StatusBadRequest, "idempotency_key_required"
	case domain.ErrIdempotencyConflict, domain.ErrConflict:
		return http.StatusConflict, "conflict"
	case domain.ErrInvalidInput:
		return http.StatusBadRequest, "invalid_input"
	case domain.ErrInvalidStartingTime:
		return http.StatusBadRequest, "invalid_starting_time"
	case domain.ErrInvalidEndingTime:
		return http.StatusBadRequest, "invalid_ending_time"
	case domain.ErrExceedEndingTime:
		return http.StatusBadRequest, "exceed_ending_time"
	case domain.ErrInvalidGoalAmount:
		return http.StatusBadRequest, "invalid_goal_amount"
	case domain.ErrInvalidTitleLength:
		return http.StatusBadRequest, "invalid_title_length"
	case domain.ErrZeroPledge:
		return http.StatusBadRequest, "zero_pledge"
	case domain.ErrBalanceOverflow:
		return http.StatusBadRequest, "balance_overflow"
	case domain.ErrCrowdFundNotStarted:
		return http.StatusConflict, "crowdfund_not_started"
	case domain.ErrCrowdFundEnded:
		return http.StatusConflict, "crowdfund_ended"
	case domain.ErrCrowdFundNotEnded:
		return http.StatusConflict, "crowdfund_not_ended"
	case domain.ErrNotEnoughBalance:
		return http.StatusConflict, "not_enough_balance"
	case domain.ErrInsufficientFunds:
		return http.StatusConflict, "insufficient_funds"
	case domain.ErrCannotClaimTwice:
		return http.StatusConflict, "cannot_claim_twice"
	case domain.ErrZeroPledgedAmount:
		return http.StatusConflict, "zero_pledged_amount"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}
