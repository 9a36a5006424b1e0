package main

import (
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"

	"github.com/griddesk/griddesk/internal/config"
	"github.com/griddesk/griddesk/internal/migration"
	"github.com/griddesk/griddesk/internal/observability"
	"github.com/griddesk/griddesk/internal/server"
	"github.com/griddesk/griddesk/pkg/db"
	"github.com/griddesk/griddesk/pkg/log"
)

func main() {
	app := fx.New(
		config.Module,
		log.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		migration.Module,
		server.Module,
	)

	app.Run()
}

// RegisterSnowflake provides the process-wide ID generator.
func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
