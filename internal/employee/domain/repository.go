package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, employee *Employee) error
	InsertSkill(ctx context.Context, db *gorm.DB, skill *Skill) error
	FindByUserID(ctx context.Context, userID snowflake.ID) (*Employee, error)
	Update(ctx context.Context, db *gorm.DB, employee *Employee) error
	ProfileByID(ctx context.Context, employeeID snowflake.ID) (*Profile, error)
	ProfileByUsername(ctx context.Context, username string) (*Profile, error)
	Skills(ctx context.Context, employeeID snowflake.ID) ([]Skill, error)
	Stats(ctx context.Context, employeeID snowflake.ID) (*Stats, error)
}
