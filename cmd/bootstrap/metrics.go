package bootstrap

import (
	"fahasa-storefront/internal/infra/backend"
	"fahasa-storefront/internal/infra/metrics"
	"fahasa-storefront/internal/usecase/cartsync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/fx"
)

var MetricsModule = fx.Module("metrics",
	fx.Provide(
		NewRegistry,
		fx.Annotate(
			func(r *prometheus.Registry) *prometheus.Registry { return r },
			fx.As(new(prometheus.Registerer)),
			fx.As(new(prometheus.Gatherer)),
		),
		fx.Annotate(
			metrics.NewCollector,
			fx.As(new(cartsync.SyncObserver)),
			fx.As(new(backend.RequestObserver)),
		),
	),
)

// NewRegistry keeps storefront metrics off the global registry so tests can build several apps.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}
