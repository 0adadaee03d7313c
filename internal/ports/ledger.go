package ports

import "context"

// FundsLedger is the external value-transfer primitive. A transfer moves
// amount base units between two accounts and either fully succeeds or fully
// fails; no partial transfer is ever observable. Implementations return
// domain.ErrInsufficientFunds when the source cannot cover the amount.
// Deposit credits an account from outside the ledger, standing in for the
// upstream payment processor settling funds into a wallet.
type FundsLedger interface {
	Transfer(ctx context.Context, from, to string, amount int64) error
	Deposit(ctx context.Context, account string, amount int64) error
	Balance(ctx context.Context, account string) (int64, error)
}
