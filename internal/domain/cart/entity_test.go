//go:build unit

package cart_test

import (
	"testing"

	"fahasa-storefront/internal/domain/cart"
	"fahasa-storefront/tests/common/builder"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineItem(t *testing.T) {
	t.Run("effective price and line total", func(t *testing.T) {
		item := builder.NewProductBuilder().WithPrice(200000).WithDiscountPercent(25).BuildLineItem(3)

		assert.True(t, item.EffectiveUnitPrice().Equal(decimal.NewFromInt(150000)))
		assert.True(t, item.LineTotal().Equal(decimal.NewFromInt(450000)))
	})

	t.Run("product validation", func(t *testing.T) {
		cases := []struct {
			name   string
			mutate func(*builder.ProductBuilder)
			errIs  error
		}{
			{
				name:   "empty id",
				mutate: func(b *builder.ProductBuilder) { b.WithID("  ") },
				errIs:  cart.ErrInvalidProduct,
			},
			{
				name:   "negative price",
				mutate: func(b *builder.ProductBuilder) { b.WithPrice(-1) },
				errIs:  cart.ErrNegativePrice,
			},
			{
				name:   "discount above 100",
				mutate: func(b *builder.ProductBuilder) { b.WithDiscountPercent(101) },
				errIs:  cart.ErrInvalidDiscountPercent,
			},
			{
				name:   "quantity above stock",
				mutate: func(b *builder.ProductBuilder) { b.WithStock(0) },
				errIs:  cart.ErrInvalidQuantity,
			},
		}
		for _, c := range cases {
			t.Run(c.name, func(t *testing.T) {
				_, err := cart.NewLineItem(builder.NewProductBuilder().With(c.mutate).Build(), 1)
				require.ErrorIs(t, err, c.errIs)
			})
		}
	})
}

func TestCart(t *testing.T) {
	bookA := builder.NewProductBuilder().WithID("a").WithStock(5).Build()
	bookB := builder.NewProductBuilder().WithID("b").WithStock(5).Build()

	t.Run("add merges quantities", func(t *testing.T) {
		c := cart.New("")
		_, err := c.Add(bookA, 2)
		require.NoError(t, err)

		item, err := c.Add(bookA, 3)
		require.NoError(t, err)
		assert.Equal(t, 5, item.Quantity)
		assert.Equal(t, 1, c.Len())
		assert.True(t, c.IsGuest())
	})

	t.Run("add beyond stock is rejected without change", func(t *testing.T) {
		c := cart.New("u1")
		_, err := c.Add(bookA, 4)
		require.NoError(t, err)

		_, err = c.Add(bookA, 2)
		require.ErrorIs(t, err, cart.ErrInvalidQuantity)

		item, ok := c.Item("a")
		require.True(t, ok)
		assert.Equal(t, 4, item.Quantity)
	})

	t.Run("set quantity rejects, never clamps", func(t *testing.T) {
		c := cart.New("u1")
		_, err := c.Add(bookA, 2)
		require.NoError(t, err)

		for _, n := range []int{0, -1, 6} {
			_, err := c.SetQuantity("a", n)
			require.ErrorIs(t, err, cart.ErrInvalidQuantity)
		}
		item, _ := c.Item("a")
		assert.Equal(t, 2, item.Quantity)

		_, err = c.SetQuantity("missing", 1)
		require.ErrorIs(t, err, cart.ErrProductNotInCart)
	})

	t.Run("remove deselects", func(t *testing.T) {
		c := cart.New("u1")
		_, _ = c.Add(bookA, 1)
		_, _ = c.Add(bookB, 1)
		c.SelectAll()

		require.NoError(t, c.Remove("a"))
		assert.Equal(t, []string{"b"}, c.SelectedIDs())
		assert.False(t, c.IsSelected("a"))
		require.ErrorIs(t, c.Remove("a"), cart.ErrProductNotInCart)
	})

	t.Run("selected keeps insertion order", func(t *testing.T) {
		c := cart.New("u1")
		_, _ = c.Add(bookB, 1)
		_, _ = c.Add(bookA, 1)
		require.NoError(t, c.Select("a"))
		require.NoError(t, c.Select("b"))

		assert.Equal(t, []string{"b", "a"}, c.SelectedIDs())
		require.NoError(t, c.Deselect("b"))
		assert.Len(t, c.Selected(), 1)
		require.ErrorIs(t, c.Select("zzz"), cart.ErrProductNotInCart)
	})

	t.Run("pending is last write wins", func(t *testing.T) {
		c := cart.New("u1")
		c.RecordPending(cart.SetQuantity("a", 3))
		c.RecordPending(cart.SetQuantity("a", 5))
		c.RecordPending(cart.Remove("a"))
		c.RecordPending(cart.SetQuantity("b", 2))

		m, ok := c.PendingFor("a")
		require.True(t, ok)
		assert.Equal(t, cart.ActionRemove, m.Action)

		taken := c.TakePending()
		want := []cart.Mutation{cart.Remove("a"), cart.SetQuantity("b", 2)}
		if diff := cmp.Diff(want, taken); diff != "" {
			t.Errorf("pending mismatch (-want +got):\n%s", diff)
		}
		assert.False(t, c.HasPending())
	})

	t.Run("replace keeps selection of surviving ids", func(t *testing.T) {
		c := cart.New("u1")
		_, _ = c.Add(bookA, 1)
		_, _ = c.Add(bookB, 1)
		c.SelectAll()

		fresh := builder.NewProductBuilder().WithID("b").WithStock(5).BuildLineItem(4)
		c.Replace([]cart.LineItem{fresh})

		assert.Equal(t, 1, c.Len())
		assert.Equal(t, []string{"b"}, c.SelectedIDs())
		item, _ := c.Item("b")
		assert.Equal(t, 4, item.Quantity)
	})

	t.Run("reapply pending over server state", func(t *testing.T) {
		c := cart.New("u1")
		c.Replace([]cart.LineItem{
			builder.NewProductBuilder().WithID("a").WithStock(5).BuildLineItem(1),
			builder.NewProductBuilder().WithID("b").WithStock(5).BuildLineItem(1),
			builder.NewProductBuilder().WithID("c").WithStock(2).BuildLineItem(1),
		})
		c.RecordPending(cart.SetQuantity("a", 4))
		c.RecordPending(cart.Remove("b"))
		c.RecordPending(cart.SetQuantity("c", 9))
		c.RecordPending(cart.SetQuantity("gone", 1))

		c.ReapplyPending()

		a, _ := c.Item("a")
		assert.Equal(t, 4, a.Quantity)
		_, ok := c.Item("b")
		assert.False(t, ok)
		cItem, _ := c.Item("c")
		assert.Equal(t, 1, cItem.Quantity)
		assert.True(t, c.HasPending())
	})

	t.Run("restore drops unknown selection", func(t *testing.T) {
		items := []cart.LineItem{builder.NewProductBuilder().WithID("a").BuildLineItem(1)}
		c := cart.Restore("", items, []string{"a", "ghost"})

		assert.Equal(t, []string{"a"}, c.SelectedIDs())
	})

	t.Run("clear empties items and selection", func(t *testing.T) {
		c := cart.New("u1")
		_, _ = c.Add(bookA, 1)
		c.SelectAll()
		c.Clear()

		assert.True(t, c.IsEmpty())
		assert.Empty(t, c.SelectedIDs())
	})

	t.Run("snapshot is detached", func(t *testing.T) {
		c := cart.New("u1")
		_, _ = c.Add(bookA, 1)
		snap := c.Snapshot()
		_, _ = c.SetQuantity("a", 3)

		assert.Equal(t, 1, snap.Items[0].Quantity)
		assert.Equal(t, cart.SyncIdle, snap.SyncState)
	})
}

func TestCart_Reprice(t *testing.T) {
	c := cart.Restore("", []cart.LineItem{
		builder.NewProductBuilder().BuildLineItem(4),
		builder.NewProductBuilder().WithID("book-2").WithPrice(50000).BuildLineItem(1),
	}, []string{"book-1"})

	c.Reprice(map[string]cart.Product{
		"book-1": builder.NewProductBuilder().WithPrice(110000).WithDiscountPercent(10).WithStock(3).Build(),
	})

	item, ok := c.Item("book-1")
	require.True(t, ok)
	assert.Equal(t, 4, item.Quantity)
	assert.Equal(t, 3, item.Stock)
	assert.True(t, item.UnitPrice.Equal(decimal.NewFromInt(110000)))
	assert.ErrorIs(t, item.ValidateQuantity(item.Quantity), cart.ErrInvalidQuantity)

	untouched, ok := c.Item("book-2")
	require.True(t, ok)
	assert.True(t, untouched.UnitPrice.Equal(decimal.NewFromInt(50000)))
	assert.Equal(t, []string{"book-1"}, c.SelectedIDs())
}
