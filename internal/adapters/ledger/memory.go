// Package ledger implements the funds-transfer primitive. The in-process
// implementation keeps account balances under one mutex so a transfer either
// debits and credits together or not at all; no partial transfer is ever
// observable from outside.
package ledger

import (
	"context"
	"sync"

	"github.com/viralforge/crowdfund-ledger-service/internal/domain"
)

type MemoryLedger struct {
	mu       sync.Mutex
	balances map[string]int64
}

func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{balances: make(map[string]int64)}
}

func (l *MemoryLedger) Deposit(_ context.Context, account string, amount int64) error {
	if amount < 0 {
		return domain.ErrInvalidInput
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.balances[account] += amount
	return nil
}

func (l *MemoryLedger) Transfer(_ context.Context, from, to string, amount int64) error {
	if amount < 0 {
		return domain.ErrInvalidInput
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.balances[from] < amount {
		return domain.ErrInsufficientFunds
	}
	l.balances[from] -= amount
	l.balances[to] += amount
	return nil
}

func (l *MemoryLedger) Balance(_ context.Context, account string) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.balances[account], nil
}
