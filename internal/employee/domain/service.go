package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
)

// UpdateInfoRequest applies selective profile changes; nil fields are untouched.
type UpdateInfoRequest struct {
	UserID     snowflake.ID
	Password   *string
	Phone      *string
	Position   *string
	Department *string
}

type Service interface {
	GetProfile(ctx context.Context, employeeID snowflake.ID) (*Profile, error)
	GetByUsername(ctx context.Context, username string) (*Profile, error)
	Stats(ctx context.Context, employeeID snowflake.ID) (*Stats, error)
	UpdateInfo(ctx context.Context, req UpdateInfoRequest) error
}

var (
	ErrNotFound        = errors.New("employee_not_found")
	ErrInvalidPassword = errors.New("invalid_password")
	ErrNothingToUpdate = errors.New("invalid_update")
)
