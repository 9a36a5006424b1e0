package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
)

// UpdateInfoRequest applies selective profile changes; nil fields are untouched.
type UpdateInfoRequest struct {
	UserID         snowflake.ID
	Password       *string
	Phone          *string
	Address        *string
	Classification *string
}

type Service interface {
	GetByUsername(ctx context.Context, username string) (*Profile, error)
	GetByID(ctx context.Context, customerID snowflake.ID) (*Profile, error)
	List(ctx context.Context) ([]Profile, error)
	UpdateInfo(ctx context.Context, req UpdateInfoRequest) error
}

var (
	ErrNotFound              = errors.New("customer_not_found")
	ErrInvalidClassification = errors.New("invalid_classification")
	ErrInvalidPassword       = errors.New("invalid_password")
	ErrNothingToUpdate       = errors.New("invalid_update")
)
