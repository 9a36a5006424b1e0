package auth

import (
	"github.com/griddesk/griddesk/internal/auth/repository"
	"github.com/griddesk/griddesk/internal/auth/service"
	"github.com/griddesk/griddesk/internal/auth/session"
	"go.uber.org/fx"
)

var Module = fx.Module("auth.service",
	fx.Provide(repository.Provide),
	fx.Provide(repository.ProvideSessions),
	fx.Provide(service.New),
	fx.Provide(session.NewManager),
)
