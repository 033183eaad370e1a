package bootstrap

import (
	"fahasa-storefront/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	JWTModule,
	MetricsModule,
	components.StoreModule,
	components.BackendModule,
	components.UseCaseModule,
	components.HandlerModule,
)
