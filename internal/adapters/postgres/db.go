package postgres

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Schema migrations ship inside the binary and run at startup, ordered by
// their numeric filename prefix.
//
//go:embed migrations/*.sql
var migrationFS embed.FS

// Connect opens the gorm handle used by the repositories and the funds
// ledger. All timestamps in this service are UTC, so the session clock is
// pinned to UTC as well.
func Connect(ctx context.Context, databaseURL string, maxConns int32) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		PrepareStmt:    true,
		TranslateError: true,
		NowFunc:        func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("gorm sql db: %w", err)
	}
	if maxConns > 0 {
		sqlDB.SetMaxOpenConns(int(maxConns))
		sqlDB.SetMaxIdleConns(int(maxConns) / 2)
	}
	sqlDB.SetConnMaxIdleTime(15 * time.Minute)
	sqlDB.SetConnMaxLifetime(time.Hour)
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return db, nil
}

// RunMigrations applies every embedded migration in one transaction so a
// failed deploy leaves the schema at the previous version. Statements are
// idempotent (CREATE TABLE IF NOT EXISTS), so re-running on boot is safe.
func RunMigrations(ctx context.Context, db *gorm.DB) error {
	names, err := fs.Glob(migrationFS, "migrations/*.sql")
	if err != nil {
		return fmt.Errorf("list migrations: %w", err)
	}
	sort.Strings(names)
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, name := range names {
			raw, readErr := migrationFS.ReadFile(name)
			if readErr != nil {
				return fmt.Errorf("read migration %s: %w", name, readErr)
			}
			if execErr := tx.Exec(string(raw)).Error; execErr != nil {
				return fmt.Errorf("exec migration %s: %w", name, execErr)
			}
		}
		return nil
	})
}
