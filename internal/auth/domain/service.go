package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
)

type Service interface {
	Login(ctx context.Context, req LoginRequest) (*LoginResult, error)
	Logout(ctx context.Context, rawToken string) error
	Authenticate(ctx context.Context, rawToken string) (*Session, error)
	GetUser(ctx context.Context, id snowflake.ID) (*User, error)
	GetUserByUsername(ctx context.Context, username string) (*User, error)
}
