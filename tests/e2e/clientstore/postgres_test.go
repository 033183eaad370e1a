//go:build e2e

package clientstore_test

import (
	"testing"
	"time"

	"fahasa-storefront/internal/domain/cart"
	"fahasa-storefront/internal/infra/clientstore"
	"fahasa-storefront/internal/pkg/clock"
	"fahasa-storefront/internal/usecase/shared"
	"fahasa-storefront/tests/common/builder"
	"fahasa-storefront/tests/common/dbtest"
	"fahasa-storefront/tests/e2e"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type postgresStoreSuite struct {
	e2e.SharedSuite
	clock *clock.MockClock
	kv    *clientstore.PostgresKV
	store *clientstore.Store
}

func TestPostgresStoreSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(postgresStoreSuite))
}

func (s *postgresStoreSuite) SetupSuite() {
	s.SharedSuite.SetupSuite()
	s.clock = clock.NewMockClock(time.Now())
	s.kv = clientstore.NewPostgresKV(s.DB, s.clock)
	require.NoError(s.T(), s.kv.EnsureSchema(s.T().Context()), "スキーマ作成は冪等であるべき")
	s.store = clientstore.NewStore(s.kv, time.Hour, s.clock)
}

func (s *postgresStoreSuite) TestCartRoundTrip() {
	s.Run("カートは金額の精度を保って復元される", func() {
		t := s.T()
		ctx := t.Context()

		want := shared.StoredCart{
			Items: []cart.LineItem{
				builder.NewProductBuilder().WithID("book-1").WithPrice(79000).WithDiscountPercent(15).BuildLineItem(2),
				builder.NewProductBuilder().WithID("book-2").BuildLineItem(1),
			},
			Selected:  []string{"book-2"},
			UpdatedAt: s.clock.Now().UTC().Truncate(time.Millisecond),
		}
		require.NoError(t, s.store.SaveCart(ctx, "sid-1", want))

		got, err := s.store.LoadCart(ctx, "sid-1")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Empty(t, cmp.Diff(want.Items, got.Items, cmp.Comparer(func(a, b decimal.Decimal) bool { return a.Equal(b) })))
		assert.Equal(t, want.Selected, got.Selected)
		assert.True(t, want.UpdatedAt.Equal(got.UpdatedAt))
	})

	s.Run("上書き保存は一行のまま", func() {
		t := s.T()
		ctx := t.Context()

		for qty := 1; qty <= 3; qty++ {
			state := shared.StoredCart{Items: []cart.LineItem{builder.NewProductBuilder().BuildLineItem(qty)}}
			require.NoError(t, s.store.SaveCart(ctx, "sid-2", state))
		}

		assert.Equal(t, 1, dbtest.CountState(t, s.DB, "cart"))
		got, err := s.store.LoadCart(ctx, "sid-2")
		require.NoError(t, err)
		require.Len(t, got.Items, 1)
		assert.Equal(t, 3, got.Items[0].Quantity)
	})

	s.Run("存在しないセッションはnil", func() {
		t := s.T()

		got, err := s.store.LoadCart(t.Context(), "missing")
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}

func (s *postgresStoreSuite) TestNamespaces() {
	s.Run("カートと認証は別々に削除できる", func() {
		t := s.T()
		ctx := t.Context()

		require.NoError(t, s.store.SaveCart(ctx, "sid-3", shared.StoredCart{Items: []cart.LineItem{builder.NewProductBuilder().BuildLineItem(1)}}))
		require.NoError(t, s.store.SaveAuth(ctx, "sid-3", builder.NewUserBuilder().BuildAuthState(s.clock.Now())))

		require.NoError(t, s.store.DeleteAuth(ctx, "sid-3"))

		auth, err := s.store.LoadAuth(ctx, "sid-3")
		require.NoError(t, err)
		assert.Nil(t, auth)
		stored, err := s.store.LoadCart(ctx, "sid-3")
		require.NoError(t, err)
		assert.NotNil(t, stored, "認証の削除でカートまで消えた")
	})
}

func (s *postgresStoreSuite) TestExpiry() {
	s.Run("期限切れの行は読めず掃除で消える", func() {
		t := s.T()
		ctx := t.Context()

		require.NoError(t, s.kv.Put(ctx, "cart", "sid-old", []byte(`{"version":1}`), time.Minute))
		require.NoError(t, s.kv.Put(ctx, "cart", "sid-new", []byte(`{"version":1}`), time.Hour))
		require.NoError(t, s.kv.Put(ctx, "auth", "sid-forever", []byte(`{"version":1}`), 0))

		s.clock.Add(2 * time.Minute)
		defer s.clock.Add(-2 * time.Minute)

		raw, err := s.kv.Get(ctx, "cart", "sid-old")
		require.NoError(t, err)
		assert.Nil(t, raw, "期限切れの行が読めてしまう")

		purged, err := s.kv.PurgeExpired(ctx)
		require.NoError(t, err)
		assert.EqualValues(t, 1, purged)
		assert.Equal(t, 1, dbtest.CountState(t, s.DB, "cart"))
		assert.Equal(t, 1, dbtest.CountState(t, s.DB, "auth"))
	})

	s.Run("手動で期限切れにしたセッション", func() {
		t := s.T()
		ctx := t.Context()

		require.NoError(t, s.store.SaveAuth(ctx, "sid-4", builder.NewUserBuilder().BuildAuthState(s.clock.Now())))
		dbtest.ExpireState(t, s.DB, "auth", "sid-4")

		auth, err := s.store.LoadAuth(ctx, "sid-4")
		require.NoError(t, err)
		assert.Nil(t, auth)
	})

	s.Run("未知のバージョンは存在しない扱い", func() {
		t := s.T()
		ctx := t.Context()

		require.NoError(t, s.kv.Put(ctx, "cart", "sid-5", []byte(`{"version":99,"items":[]}`), time.Hour))

		got, err := s.store.LoadCart(ctx, "sid-5")
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}
