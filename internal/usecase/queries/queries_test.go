//go:build unit

package queries_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"fahasa-storefront/internal/domain/cart"
	"fahasa-storefront/internal/domain/loyalty"
	"fahasa-storefront/internal/domain/pricing"
	"fahasa-storefront/internal/pkg/clock"
	"fahasa-storefront/internal/pkg/errs"
	"fahasa-storefront/internal/usecase/cartsync"
	"fahasa-storefront/internal/usecase/queries"
	"fahasa-storefront/internal/usecase/shared"
	"fahasa-storefront/tests/common/builder"
	sharedmock "fahasa-storefront/tests/mock/shared"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const (
	sessionID = "sess-1"
	userID    = "user-1"
)

var errBackendDown = errors.New("connection refused")

func newTier(t *testing.T, rank string, threshold int64, multiplier string) loyalty.Tier {
	t.Helper()
	tier, err := loyalty.NewTier(rank, threshold, decimal.RequireFromString(multiplier))
	require.NoError(t, err)
	return tier
}

func TestCartQueries_View(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	setup := func(t *testing.T) (*sharedmock.MockCartStateStore, *sharedmock.MockCartBackend, *sharedmock.MockCatalog, *sharedmock.MockLoyaltyBackend, queries.CartQueries) {
		ctrl := gomock.NewController(t)
		store := sharedmock.NewMockCartStateStore(ctrl)
		carts := sharedmock.NewMockCartBackend(ctrl)
		catalog := sharedmock.NewMockCatalog(ctrl)
		loyaltyBackend := sharedmock.NewMockLoyaltyBackend(ctrl)
		registry := cartsync.NewRegistry(cartsync.Deps{
			Catalog:  catalog,
			Carts:    carts,
			Store:    store,
			Clock:    clock.NewMockClock(time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)),
			Logger:   logger,
			Debounce: time.Hour,
		}, time.Hour, time.Minute)
		return store, carts, catalog, loyaltyBackend, queries.NewCartQueries(registry, loyaltyBackend, pricing.NewDefaultCalculator(), logger)
	}

	t.Run("guest view quotes only the selection", func(t *testing.T) {
		store, _, _, _, q := setup(t)
		store.EXPECT().LoadCart(gomock.Any(), sessionID).Return(&shared.StoredCart{
			Items: []cart.LineItem{
				builder.NewProductBuilder().WithID("book-1").WithPrice(100000).BuildLineItem(2),
				builder.NewProductBuilder().WithID("book-2").WithPrice(50000).BuildLineItem(1),
			},
			Selected: []string{"book-2"},
		}, nil)

		view, err := q.View(ctx, shared.Session{ID: sessionID})

		require.NoError(t, err)
		assert.Len(t, view.Cart.Items, 2)
		assert.True(t, view.Tier.IsNone())
		assert.True(t, view.Quote.Subtotal.Equal(decimal.NewFromInt(50000)))
		assert.True(t, view.Quote.FinalTotal.Equal(decimal.NewFromInt(50000)))
		assert.Empty(t, view.Notices)
	})

	t.Run("member view applies the tier bonus", func(t *testing.T) {
		store, carts, catalog, loyaltyBackend, q := setup(t)
		store.EXPECT().LoadCart(gomock.Any(), sessionID).Return(nil, nil)
		carts.EXPECT().GetCart(gomock.Any(), userID).Return(&shared.ServerCart{
			UserID: userID,
			Lines:  []shared.ServerCartLine{{ProductID: "book-1", Quantity: 1}},
		}, nil)
		catalog.EXPECT().GetProduct(gomock.Any(), "book-1").Return(builder.NewProductBuilder().Build(), nil)
		store.EXPECT().DeleteCart(gomock.Any(), sessionID).Return(nil)
		loyaltyBackend.EXPECT().GetUserRankInfo(gomock.Any(), userID).AnyTimes().Return(loyalty.RankInfo{
			Rank:       "SILVER",
			Points:     1200,
			Multiplier: decimal.RequireFromString("1.05"),
		}, nil)

		s := shared.Session{ID: sessionID, UserID: userID}
		view, err := q.View(ctx, s)
		require.NoError(t, err)
		assert.Equal(t, "SILVER", view.Tier.Rank)
		// server lines arrive unselected
		assert.True(t, view.Quote.Subtotal.IsZero())
	})

	t.Run("rank outage falls back to no bonus", func(t *testing.T) {
		store, carts, _, loyaltyBackend, q := setup(t)
		store.EXPECT().LoadCart(gomock.Any(), sessionID).Return(nil, nil)
		carts.EXPECT().GetCart(gomock.Any(), userID).Return(nil, shared.ErrCartNotFound)
		carts.EXPECT().CreateCart(gomock.Any(), userID).Return(&shared.ServerCart{UserID: userID}, nil)
		store.EXPECT().DeleteCart(gomock.Any(), sessionID).Return(nil)
		loyaltyBackend.EXPECT().GetUserRankInfo(gomock.Any(), userID).Return(loyalty.RankInfo{}, errBackendDown)

		view, err := q.View(ctx, shared.Session{ID: sessionID, UserID: userID})

		require.NoError(t, err)
		assert.True(t, view.Tier.IsNone())
	})

	t.Run("notices are drained into the view", func(t *testing.T) {
		store, carts, _, loyaltyBackend, q := setup(t)
		store.EXPECT().LoadCart(gomock.Any(), sessionID).Return(nil, nil)
		carts.EXPECT().GetCart(gomock.Any(), userID).Return(nil, errBackendDown)
		store.EXPECT().DeleteCart(gomock.Any(), sessionID).Return(nil)
		loyaltyBackend.EXPECT().GetUserRankInfo(gomock.Any(), userID).Times(2).Return(loyalty.RankInfo{Rank: "MEMBER"}, nil)

		s := shared.Session{ID: sessionID, UserID: userID}
		view, err := q.View(ctx, s)
		require.NoError(t, err)
		require.Len(t, view.Notices, 1)
		assert.Equal(t, cartsync.NoticeNetworkFailure, view.Notices[0].Kind)
		assert.Equal(t, cart.SyncError, view.Cart.SyncState)

		again, err := q.View(ctx, s)
		require.NoError(t, err)
		assert.Empty(t, again.Notices)
	})
}

func TestLoyaltyQueries_Me(t *testing.T) {
	ctx := context.Background()

	t.Run("active and next tier", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		backend := sharedmock.NewMockLoyaltyBackend(ctrl)
		tiers := []loyalty.Tier{
			newTier(t, "MEMBER", 0, "1"),
			newTier(t, "SILVER", 1000, "1.05"),
			newTier(t, "GOLD", 5000, "1.1"),
		}
		backend.EXPECT().GetUserRankInfo(gomock.Any(), userID).Return(loyalty.RankInfo{
			Rank:       "SILVER",
			Points:     3200,
			Multiplier: decimal.RequireFromString("1.05"),
		}, nil)
		backend.EXPECT().ListTiers(gomock.Any()).Return(tiers, nil)

		view, err := queries.NewLoyaltyQueries(backend).Me(ctx, userID)

		require.NoError(t, err)
		assert.Equal(t, "SILVER", view.Rank)
		assert.Equal(t, "SILVER", view.ActiveTier.Rank)
		require.NotNil(t, view.NextTier)
		assert.Equal(t, "GOLD", view.NextTier.Rank)
		assert.Equal(t, int64(1800), view.PointsToNext)
		assert.True(t, view.Multiplier.Equal(decimal.RequireFromString("1.05")))
	})

	t.Run("top tier has no next", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		backend := sharedmock.NewMockLoyaltyBackend(ctrl)
		backend.EXPECT().GetUserRankInfo(gomock.Any(), userID).Return(loyalty.RankInfo{Rank: "GOLD", Points: 9000}, nil)
		backend.EXPECT().ListTiers(gomock.Any()).Return([]loyalty.Tier{newTier(t, "GOLD", 5000, "1.1")}, nil)

		view, err := queries.NewLoyaltyQueries(backend).Me(ctx, userID)

		require.NoError(t, err)
		assert.Nil(t, view.NextTier)
		assert.Zero(t, view.PointsToNext)
	})

	t.Run("backend failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		backend := sharedmock.NewMockLoyaltyBackend(ctrl)
		backend.EXPECT().GetUserRankInfo(gomock.Any(), userID).Return(loyalty.RankInfo{}, errBackendDown).AnyTimes()
		backend.EXPECT().ListTiers(gomock.Any()).Return(nil, nil).AnyTimes()

		_, err := queries.NewLoyaltyQueries(backend).Me(ctx, userID)

		assert.True(t, errs.Is(err, errs.ErrNetworkFailure))
	})

	t.Run("anonymous", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		_, err := queries.NewLoyaltyQueries(sharedmock.NewMockLoyaltyBackend(ctrl)).Me(ctx, "")
		assert.True(t, errs.Is(err, errs.ErrNotAuthenticated))
	})
}

func TestUserQueries_GetCurrentUser(t *testing.T) {
	ctx := context.Background()
	issuedAt := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

	t.Run("found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := sharedmock.NewMockAuthStateStore(ctrl)
		state := builder.NewUserBuilder().BuildAuthState(issuedAt)
		store.EXPECT().LoadAuth(gomock.Any(), sessionID).Return(&state, nil)

		view, err := queries.NewUserQueries(store).GetCurrentUser(ctx, sessionID, userID)

		require.NoError(t, err)
		assert.Equal(t, &queries.CurrentUserView{
			ID:       userID,
			Email:    "test@example.com",
			FullName: "Nguyễn Văn A",
			Role:     "customer",
			IssuedAt: issuedAt,
		}, view)
	})

	t.Run("record belongs to another user", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := sharedmock.NewMockAuthStateStore(ctrl)
		state := builder.NewUserBuilder().WithID("user-2").BuildAuthState(issuedAt)
		store.EXPECT().LoadAuth(gomock.Any(), sessionID).Return(&state, nil)

		_, err := queries.NewUserQueries(store).GetCurrentUser(ctx, sessionID, userID)

		assert.ErrorIs(t, err, queries.ErrUserNotFound)
	})

	t.Run("store failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := sharedmock.NewMockAuthStateStore(ctrl)
		store.EXPECT().LoadAuth(gomock.Any(), sessionID).Return(nil, errBackendDown)

		_, err := queries.NewUserQueries(store).GetCurrentUser(ctx, sessionID, userID)

		assert.True(t, errs.Is(err, errs.ErrStateStoreFailed))
	})
}
