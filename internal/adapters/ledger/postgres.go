package ledger

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/viralforge/crowdfund-ledger-service/internal/domain"
)

type ledgerAccountModel struct {
	AccountID string    `gorm:"column:account_id;primaryKey"`
	Balance   int64     `gorm:"column:balance"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (ledgerAccountModel) TableName() string { return "ledger_accounts" }

// PostgresLedger keeps account balances in a table and moves value inside a
// single transaction with the source row locked, so a transfer debits and
// credits together or not at all.
type PostgresLedger struct {
	db *gorm.DB
}

func NewPostgresLedger(db *gorm.DB) *PostgresLedger {
	return &PostgresLedger{db: db}
}

func (l *PostgresLedger) Transfer(ctx context.Context, from, to string, amount int64) error {
	if amount < 0 {
		return domain.ErrInvalidInput
	}
	if amount == 0 {
		return nil
	}
	return l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var src ledgerAccountModel
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("account_id = ?", from).Take(&src).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrInsufficientFunds
		}
		if err != nil {
			return err
		}
		if src.Balance < amount {
			return domain.ErrInsufficientFunds
		}
		now := time.Now().UTC()
		res := tx.Model(&ledgerAccountModel{}).Where("account_id = ?", from).
			Updates(map[string]any{"balance": gorm.Expr("balance - ?", amount), "updated_at": now})
		if res.Error != nil {
			return res.Error
		}
		return l.credit(tx, to, amount, now)
	})
}

func (l *PostgresLedger) Deposit(ctx context.Context, account string, amount int64) error {
	if amount < 0 {
		return domain.ErrInvalidInput
	}
	if amount == 0 {
		return nil
	}
	return l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return l.credit(tx, account, amount, time.Now().UTC())
	})
}

func (l *PostgresLedger) Balance(ctx context.Context, account string) (int64, error) {
	var rec ledgerAccountModel
	err := l.db.WithContext(ctx).Where("account_id = ?", account).Take(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return rec.Balance, nil
}

func (l *PostgresLedger) credit(tx *gorm.DB, account string, amount int64, now time.Time) error {
	return tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "account_id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"balance":    gorm.Expr("ledger_accounts.balance + ?", amount),
			"updated_at": now,
		}),
	}).Create(&ledgerAccountModel{AccountID: account, Balance: amount, UpdatedAt: now}).Error
}
