package queries

import (
	"context"

	"fahasa-storefront/internal/domain/loyalty"
	"fahasa-storefront/internal/pkg/errs"
	"fahasa-storefront/internal/usecase/shared"

	"golang.org/x/sync/errgroup"
)

type LoyaltyQueries interface {
	Me(ctx context.Context, userID string) (*LoyaltyView, error)
}

type loyaltyQueriesImpl struct {
	backend shared.LoyaltyBackend
}

func NewLoyaltyQueries(backend shared.LoyaltyBackend) LoyaltyQueries {
	return &loyaltyQueriesImpl{backend: backend}
}

func (q *loyaltyQueriesImpl) Me(ctx context.Context, userID string) (*LoyaltyView, error) {
	if userID == "" {
		return nil, errs.ErrNotAuthenticated
	}

	var (
		info  loyalty.RankInfo
		tiers []loyalty.Tier
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		info, err = q.backend.GetUserRankInfo(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		tiers, err = q.backend.ListTiers(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, errs.Mark(errs.Wrap(err, "load loyalty"), errs.ErrNetworkFailure)
	}

	view := &LoyaltyView{
		Rank:       info.Rank,
		Points:     info.Points,
		Multiplier: info.Tier().Multiplier,
		ActiveTier: loyalty.ActiveTier(tiers, info.Points),
		Tiers:      tiers,
	}
	if next, missing, ok := loyalty.NextTier(tiers, info.Points); ok {
		view.NextTier = &next
		view.PointsToNext = missing
	}
	return view, nil
}
