package customer

import (
	"github.com/griddesk/griddesk/internal/customer/repository"
	"github.com/griddesk/griddesk/internal/customer/service"
	"go.uber.org/fx"
)

var Module = fx.Module("customer.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
