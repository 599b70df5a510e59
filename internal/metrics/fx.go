package metrics

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/fx"
)

var Module = fx.Module("metrics",
	fx.Provide(
		func() metric.MeterProvider { return otel.GetMeterProvider() },
		NewHTTPMetrics,
	),
)
