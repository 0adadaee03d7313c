package ledger

import (
	"context"
	"errors"
	"testing"

	"github.com/viralforge/crowdfund-ledger-service/internal/domain"
)

func TestMemoryLedgerTransfer(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	l := NewMemoryLedger()

	if err := l.Deposit(ctx, "a", 100); err != nil {
		t.Fatalf("Deposit: %v", err)
	}
	if err := l.Transfer(ctx, "a", "b", 60); err != nil {
		t.Fatalf("Transfer: %v", err)
	}
	if got, _ := l.Balance(ctx, "a"); got != 40 {
		t.Fatalf("a = %d", got)
	}
	if got, _ := l.Balance(ctx, "b"); got != 60 {
		t.Fatalf("b = %d", got)
	}

	if err := l.Transfer(ctx, "a", "b", 41); !errors.Is(err, domain.ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}
	// The failed transfer must not have moved anything.
	if got, _ := l.Balance(ctx, "a"); got != 40 {
		t.Fatalf("a after failed transfer = %d", got)
	}
	if err := l.Transfer(ctx, "a", "b", -1); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestMemoryLedgerUnknownAccount(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	l := NewMemoryLedger()

	if got, _ := l.Balance(ctx, "nobody"); got != 0 {
		t.Fatalf("unknown account = %d", got)
	}
	if err := l.Transfer(ctx, "nobody", "b", 1); !errors.Is(err, domain.ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}
}
