package consumption

import (
	"github.com/griddesk/griddesk/internal/consumption/repository"
	"github.com/griddesk/griddesk/internal/consumption/service"
	"go.uber.org/fx"
)

var Module = fx.Module("consumption.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
