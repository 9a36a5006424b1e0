package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, record *Record) error
	UpdateUsage(ctx context.Context, db *gorm.DB, record *Record) error
	FindOne(ctx context.Context, customerID snowflake.ID, serviceType string, month time.Time) (*Record, error)
	ListByCustomer(ctx context.Context, customerID snowflake.ID, month *time.Time) ([]Record, error)
	ListByUsernameMonth(ctx context.Context, username string, month time.Time) ([]Record, error)
}
