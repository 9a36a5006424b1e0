package domain

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, payment *Payment) error
	HistoryByUsername(ctx context.Context, username string) ([]HistoryEntry, error)
	Ledger(ctx context.Context, from, to *time.Time) ([]LedgerEntry, error)
}
