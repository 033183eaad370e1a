package components

import (
	"context"
	"log/slog"

	"fahasa-storefront/internal/domain/pricing"
	"fahasa-storefront/internal/pkg/clock"
	"fahasa-storefront/internal/pkg/config"
	"fahasa-storefront/internal/usecase/cartsync"
	"fahasa-storefront/internal/usecase/commands"
	"fahasa-storefront/internal/usecase/queries"
	"fahasa-storefront/internal/usecase/shared"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	fx.Annotate(
		pricing.NewDefaultCalculator,
		fx.As(new(pricing.Calculator)),
	),
	NewRegistry,
	NewCheckoutDeps,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewCartCommands,
		commands.NewCheckoutCommands,
		commands.NewAuthCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewCartQueries,
		queries.NewLoyaltyQueries,
		queries.NewUserQueries,
	),
)

type RegistryParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Config    config.Config
	Catalog   shared.Catalog
	Carts     shared.CartBackend
	Store     shared.CartStateStore
	Observer  cartsync.SyncObserver
	Clock     clock.Clock
	Logger    *slog.Logger
}

// NewRegistry starts the idle-session janitor with the app and flushes every open cart on
// shutdown.
func NewRegistry(p RegistryParams) *cartsync.Registry {
	registry := cartsync.NewRegistry(cartsync.Deps{
		Catalog:    p.Catalog,
		Carts:      p.Carts,
		Store:      p.Store,
		Observer:   p.Observer,
		Clock:      p.Clock,
		Logger:     p.Logger,
		Debounce:   p.Config.Cart.SyncDebounce,
		MaxNotices: p.Config.Cart.MaxNotices,
	}, p.Config.Cart.SessionIdleTTL, p.Config.Cart.JanitorInterval)

	ctx, cancel := context.WithCancel(context.Background())
	p.Lifecycle.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			go registry.Run(ctx)
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			if err := registry.CloseAll(stopCtx); err != nil {
				p.Logger.WarnContext(stopCtx, "failed to flush carts on shutdown", "error", err)
			}
			return nil
		},
	})
	return registry
}

func NewCheckoutDeps(
	registry *cartsync.Registry,
	calc pricing.Calculator,
	vouchers shared.VoucherBackend,
	loyalty shared.LoyaltyBackend,
	orders shared.OrderBackend,
	clk clock.Clock,
	logger *slog.Logger,
) commands.CheckoutDeps {
	return commands.CheckoutDeps{
		Registry:   registry,
		Calculator: calc,
		Vouchers:   vouchers,
		Loyalty:    loyalty,
		Orders:     orders,
		Clock:      clk,
		Logger:     logger,
	}
}
