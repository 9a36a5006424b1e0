package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, customer *Customer) error
	FindByID(ctx context.Context, id snowflake.ID) (*Customer, error)
	FindByUserID(ctx context.Context, userID snowflake.ID) (*Customer, error)
	Update(ctx context.Context, db *gorm.DB, customer *Customer) error
	ProfileByUsername(ctx context.Context, username string) (*Profile, error)
	ProfileByID(ctx context.Context, customerID snowflake.ID) (*Profile, error)
	ListProfiles(ctx context.Context) ([]Profile, error)
}
