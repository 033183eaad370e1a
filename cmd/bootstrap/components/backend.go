package components

import (
	"log/slog"

	"fahasa-storefront/internal/infra/backend"
	"fahasa-storefront/internal/pkg/config"
	"fahasa-storefront/internal/usecase/shared"

	"go.uber.org/fx"
)

var BackendModule = fx.Module("backend",
	fx.Provide(
		NewBackendClient,
		fx.Annotate(
			backend.NewCatalogClient,
			fx.As(new(shared.Catalog)),
		),
		fx.Annotate(
			backend.NewCartClient,
			fx.As(new(shared.CartBackend)),
		),
		fx.Annotate(
			backend.NewVoucherClient,
			fx.As(new(shared.VoucherBackend)),
		),
		fx.Annotate(
			backend.NewLoyaltyClient,
			fx.As(new(shared.LoyaltyBackend)),
		),
		fx.Annotate(
			backend.NewOrderClient,
			fx.As(new(shared.OrderBackend)),
		),
		fx.Annotate(
			backend.NewAuthClient,
			fx.As(new(shared.AuthBackend)),
		),
	),
)

func NewBackendClient(cfg config.Config, observer backend.RequestObserver, logger *slog.Logger) (*backend.Client, error) {
	return backend.NewClient(cfg.Backend, observer, logger)
}
