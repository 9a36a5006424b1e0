package payment

import (
	"github.com/griddesk/griddesk/internal/payment/repository"
	"github.com/griddesk/griddesk/internal/payment/service"
	"go.uber.org/fx"
)

var Module = fx.Module("payment.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
