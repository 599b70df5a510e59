package service

import "go.uber.org/fx"

var Module = fx.Module("document.service",
	fx.Provide(NewService),
)
