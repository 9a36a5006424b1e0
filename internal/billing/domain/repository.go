package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, bill *Bill, items []LineItem) error
	Delete(ctx context.Context, db *gorm.DB, billID snowflake.ID) error
	FindByID(ctx context.Context, billID snowflake.ID) (*Bill, error)

	// FindByIDForUpdate locks the bill row for the duration of the
	// surrounding transaction.
	FindByIDForUpdate(ctx context.Context, db *gorm.DB, billID snowflake.ID) (*Bill, error)

	FindByCustomerMonth(ctx context.Context, customerID snowflake.ID, month time.Time) (*Bill, error)
	Items(ctx context.Context, billID snowflake.ID) ([]LineItem, error)
	ListByUsername(ctx context.Context, username string) ([]Bill, error)
	PendingByUsername(ctx context.Context, username string) ([]Bill, error)
	ListPending(ctx context.Context) ([]CustomerBill, error)
	CountPayments(ctx context.Context, db *gorm.DB, billID snowflake.ID) (int64, error)
	UpdatePaymentProgress(ctx context.Context, db *gorm.DB, bill *Bill) error
}
