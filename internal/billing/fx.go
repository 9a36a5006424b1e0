package billing

import (
	"github.com/griddesk/griddesk/internal/billing/repository"
	"github.com/griddesk/griddesk/internal/billing/service"
	"go.uber.org/fx"
)

var Module = fx.Module("billing.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
