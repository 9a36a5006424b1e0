package report

import (
	"github.com/griddesk/griddesk/internal/report/repository"
	"github.com/griddesk/griddesk/internal/report/service"
	"go.uber.org/fx"
)

var Module = fx.Module("report.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
