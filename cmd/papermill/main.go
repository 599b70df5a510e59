package main

import (
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"

	"github.com/smallbiznis/papermill/internal/assets"
	"github.com/smallbiznis/papermill/internal/config"
	docservice "github.com/smallbiznis/papermill/internal/document/service"
	"github.com/smallbiznis/papermill/internal/logger"
	"github.com/smallbiznis/papermill/internal/metrics"
	"github.com/smallbiznis/papermill/internal/render"
	"github.com/smallbiznis/papermill/internal/server"
	"github.com/smallbiznis/papermill/internal/tracing"
)

func main() {
	app := fx.New(
		config.Module,
		logger.Module,
		tracing.Module,
		metrics.Module,
		fx.Provide(func() *snowflake.Node {
			node, err := snowflake.NewNode(1)
			if err != nil {
				panic(err)
			}
			return node
		}),
		assets.Module,
		render.Module,
		docservice.Module,
		server.Module,
	)
	app.Run()
}
