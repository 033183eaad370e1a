package queries

import (
	"context"
	"log/slog"

	"fahasa-storefront/internal/domain/loyalty"
	"fahasa-storefront/internal/domain/pricing"
	"fahasa-storefront/internal/usecase/cartsync"
	"fahasa-storefront/internal/usecase/shared"
)

type CartQueries interface {
	View(ctx context.Context, s shared.Session) (*CartView, error)
}

type cartQueriesImpl struct {
	registry   *cartsync.Registry
	loyalty    shared.LoyaltyBackend
	calculator pricing.Calculator
	logger     *slog.Logger
}

func NewCartQueries(registry *cartsync.Registry, loyaltyBackend shared.LoyaltyBackend, calculator pricing.Calculator, logger *slog.Logger) CartQueries {
	return &cartQueriesImpl{
		registry:   registry,
		loyalty:    loyaltyBackend,
		calculator: calculator,
		logger:     logger,
	}
}

// View never fails on loyalty lookups: without rank info the quote carries no bonus.
func (q *cartQueriesImpl) View(ctx context.Context, s shared.Session) (*CartView, error) {
	e, err := q.registry.Acquire(ctx, s.ID, s.UserID)
	if err != nil {
		return nil, err
	}
	snap := e.Snapshot()

	tier := loyalty.NoTier
	if s.IsAuthenticated() {
		info, err := q.loyalty.GetUserRankInfo(ctx, s.UserID)
		if err != nil {
			q.logger.WarnContext(ctx, "rank info unavailable for cart view", "user_id", s.UserID, "error", err)
		} else {
			tier = info.Tier()
		}
	}

	return &CartView{
		Cart:    snap,
		Tier:    tier,
		Quote:   q.calculator.Quote(snap.SelectedItems(), tier, nil),
		Notices: e.DrainNotices(),
	}, nil
}
