package domain

import "errors"

// Campaign creation failures, checked in declaration order.
var (
	ErrInvalidStartingTime = errors.New("starting time must be after current time")
	ErrInvalidEndingTime   = errors.New("ending time must be after starting time")
	ErrExceedEndingTime    = errors.New("ending time exceeds the maximum campaign window")
	ErrInvalidGoalAmount   = errors.New("goal is below the minimum goal amount")
	ErrInvalidTitleLength  = errors.New("title must be at least 10 characters")
	ErrTitleTaken          = errors.New("campaign title already taken")
)

// Pledge lifecycle failures.
var (
	ErrCrowdFundNotStarted = errors.New("crowd fund not started yet")
	ErrCrowdFundEnded      = errors.New("crowd fund has ended")
	ErrCrowdFundNotEnded   = errors.New("crowd fund not ended yet")
	ErrPledgeExists        = errors.New("pledge account already exists for this campaign")
	ErrZeroPledge          = errors.New("cannot pledge zero amount")
	ErrNotEnoughBalance    = errors.New("not enough pledged balance")
	ErrBalanceOverflow     = errors.New("pledge balance overflow")
)

// Claim failures.
var (
	ErrOnlyOwner         = errors.New("only the campaign owner can claim")
	ErrInvalidTreasury   = errors.New("treasury does not match the campaign payout destination")
	ErrZeroPledgedAmount = errors.New("pledge has zero balance")
	ErrCannotClaimTwice  = errors.New("pledge already claimed")
)

// Infrastructure-facing failures shared across adapters.
var (
	ErrUnauthorized        = errors.New("unauthorized")
	ErrNotFound            = errors.New("resource not found")
	ErrConflict            = errors.New("conflict")
	ErrInvalidInput        = errors.New("invalid input")
	ErrIdempotencyRequired = errors.New("idempotency key required")
	ErrIdempotencyConflict = errors.New("idempotency conflict")
	ErrInsufficientFunds   = errors.New("insufficient funds")
)
