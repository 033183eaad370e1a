package components

import (
	"fahasa-storefront/internal/handler"
	"fahasa-storefront/internal/handler/api"
	"fahasa-storefront/internal/handler/middleware"
	"fahasa-storefront/internal/pkg/jwt"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		fx.Annotate(
			func(s *jwt.Service) *jwt.Service { return s },
			fx.As(new(middleware.TokenValidator)),
			fx.As(new(api.TokenTTL)),
		),
		api.NewAuthHandler,
		api.NewCartHandler,
		api.NewCheckoutHandler,
		api.NewLoyaltyHandler,
		handler.NewHandlers,
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)
