package employee

import (
	"github.com/griddesk/griddesk/internal/employee/repository"
	"github.com/griddesk/griddesk/internal/employee/service"
	"go.uber.org/fx"
)

var Module = fx.Module("employee.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
