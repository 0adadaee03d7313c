package application

import (
	"context"
	"strings"

	"github.com/viralforge/crowdfund-ledger-service/internal/domain"
)

// GetWalletBalance reports the caller's spendable funds account.
func (s *Service) GetWalletBalance(ctx context.Context, actor Actor) (WalletBalance, error) {
	if strings.TrimSpace(actor.SubjectID) == "" {
		return WalletBalance{}, domain.ErrUnauthorized
	}
	balance, err := s.ledger.Balance(ctx, actor.SubjectID)
	if err != nil {
		return WalletBalance{}, err
	}
	return WalletBalance{
		Account:      actor.SubjectID,
		Balance:      balance,
		CalculatedAt: s.nowFn(),
	}, nil
}

// DepositFunds credits the caller's funds account. This is the entry point a
// payment processor settlement would call; amounts are base units.
func (s *Service) DepositFunds(ctx context.Context, actor Actor, input DepositInput) (WalletBalance, error) {
	if strings.TrimSpace(actor.SubjectID) == "" {
		return WalletBalance{}, domain.ErrUnauthorized
	}
	if strings.TrimSpace(actor.IdempotencyKey) == "" {
		return WalletBalance{}, domain.ErrIdempotencyRequired
	}
	if input.Amount <= 0 {
		return WalletBalance{}, domain.ErrInvalidInput
	}
	requestHash := hashJSON(input)
	if cached, ok, err := getIdempotent[WalletBalance](ctx, s, actor.IdempotencyKey, requestHash); err != nil {
		return WalletBalance{}, err
	} else if ok {
		return cached, nil
	}
	if err := s.reserveIdempotency(ctx, actor.IdempotencyKey, requestHash); err != nil {
		return WalletBalance{}, err
	}

	if err := s.ledger.Deposit(ctx, actor.SubjectID, input.Amount); err != nil {
		return WalletBalance{}, err
	}
	balance, err := s.ledger.Balance(ctx, actor.SubjectID)
	if err != nil {
		return WalletBalance{}, err
	}
	out := WalletBalance{
		Account:      actor.SubjectID,
		Balance:      balance,
		CalculatedAt: s.nowFn(),
	}
	_ = s.completeIdempotencyJSON(ctx, actor.IdempotencyKey, 200, out)
	return out, nil
}
