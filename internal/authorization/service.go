// Package authorization enforces role-based access over domain objects.
package authorization

import (
	"context"
	"errors"
)

type Service interface {
	Authorize(ctx context.Context, actor string, object string, action string) error
}

var (
	ErrInvalidActor  = errors.New("invalid_actor")
	ErrInvalidObject = errors.New("invalid_object")
	ErrInvalidAction = errors.New("invalid_action")
	ErrForbidden     = errors.New("forbidden")
)
