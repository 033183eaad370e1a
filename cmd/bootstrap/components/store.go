package components

import (
	"context"
	"log/slog"
	"time"

	"fahasa-storefront/internal/infra/clientstore"
	"fahasa-storefront/internal/infra/db"
	"fahasa-storefront/internal/pkg/clock"
	"fahasa-storefront/internal/pkg/config"
	"fahasa-storefront/internal/pkg/errs"
	"fahasa-storefront/internal/usecase/shared"

	"go.uber.org/fx"
)

const (
	StoreDriverPostgres = "postgres"
	StoreDriverRedis    = "redis"
	StoreDriverMemory   = "memory"

	connectTimeout = 15 * time.Second
)

var StoreModule = fx.Module("store",
	fx.Provide(
		NewKV,
		fx.Annotate(
			NewStateStore,
			fx.As(new(shared.CartStateStore)),
			fx.As(new(shared.AuthStateStore)),
		),
	),
)

func NewStateStore(kv clientstore.KV, cfg config.Config, clk clock.Clock) *clientstore.Store {
	return clientstore.NewStore(kv, cfg.Store.TTL, clk)
}

// NewKV opens the backend selected by STORE_DRIVER and ties its lifetime to the app.
func NewKV(lc fx.Lifecycle, cfg config.Config, clk clock.Clock, logger *slog.Logger) (clientstore.KV, error) {
	switch cfg.Store.Driver {
	case StoreDriverPostgres:
		return newPostgresKV(lc, cfg, clk, logger)
	case StoreDriverRedis:
		return newRedisKV(lc, cfg)
	case StoreDriverMemory, "":
		kv := clientstore.NewMemoryKV(clk)
		runPurger(lc, kv, cfg, logger)
		return kv, nil
	default:
		return nil, errs.New("unknown STORE_DRIVER: " + cfg.Store.Driver)
	}
}

func newPostgresKV(lc fx.Lifecycle, cfg config.Config, clk clock.Clock, logger *slog.Logger) (clientstore.KV, error) {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	pool, cleanup, err := db.Connect(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	kv := clientstore.NewPostgresKV(pool, clk)
	if err := kv.EnsureSchema(ctx); err != nil {
		cleanup()
		return nil, errs.Wrap(err, "ensure client_state schema")
	}

	runPurger(lc, kv, cfg, logger)
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			cleanup()
			return nil
		},
	})
	return kv, nil
}

func newRedisKV(lc fx.Lifecycle, cfg config.Config) (clientstore.KV, error) {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Redis.DialTimeout+cfg.Redis.ReadTimeout)
	defer cancel()

	client, err := clientstore.NewRedisClient(ctx, cfg.Redis)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return client.Close()
		},
	})
	return clientstore.NewRedisKV(client), nil
}

// runPurger sweeps expired rows for backends without native expiry.
func runPurger(lc fx.Lifecycle, p clientstore.Purger, cfg config.Config, logger *slog.Logger) {
	ctx, cancel := context.WithCancel(context.Background())
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			go clientstore.RunPurger(ctx, p, cfg.Cart.JanitorInterval, logger)
			return nil
		},
		OnStop: func(_ context.Context) error {
			cancel()
			return nil
		},
	})
}
