//go:build unit

package loyalty_test

import (
	"testing"

	"fahasa-storefront/internal/domain/loyalty"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tiers(t *testing.T) []loyalty.Tier {
	t.Helper()
	mk := func(rank string, threshold int64, mult string) loyalty.Tier {
		tier, err := loyalty.NewTier(rank, threshold, decimal.RequireFromString(mult))
		require.NoError(t, err)
		return tier
	}
	return []loyalty.Tier{
		mk("GOLD", 5000, "1.1"),
		mk("BRONZE", 0, "1.0"),
		mk("DIAMOND", 20000, "1.2"),
		mk("SILVER", 1000, "1.05"),
	}
}

func TestActiveTier(t *testing.T) {
	cases := []struct {
		name   string
		points int64
		want   string
	}{
		{name: "zero points", points: 0, want: "BRONZE"},
		{name: "just below silver", points: 999, want: "BRONZE"},
		{name: "exactly silver", points: 1000, want: "SILVER"},
		{name: "between gold and diamond", points: 19999, want: "GOLD"},
		{name: "above the top", points: 99999, want: "DIAMOND"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, loyalty.ActiveTier(tiers(t), c.points).Rank)
		})
	}

	t.Run("no tiers yields no bonus", func(t *testing.T) {
		got := loyalty.ActiveTier(nil, 100)
		assert.True(t, got.IsNone())
		assert.False(t, got.HasBonus())
	})
}

func TestNextTier(t *testing.T) {
	next, missing, ok := loyalty.NextTier(tiers(t), 1200)
	require.True(t, ok)
	assert.Equal(t, "GOLD", next.Rank)
	assert.Equal(t, int64(3800), missing)

	_, _, ok = loyalty.NextTier(tiers(t), 20000)
	assert.False(t, ok)
}

func TestRankInfoTier(t *testing.T) {
	info := loyalty.RankInfo{Rank: "GOLD", Points: 6000, Multiplier: decimal.RequireFromString("1.1")}
	assert.True(t, info.Tier().HasBonus())

	missing := loyalty.RankInfo{Rank: "NEW", Points: 0}
	assert.True(t, missing.Tier().Multiplier.Equal(decimal.NewFromInt(1)))

	_, err := loyalty.NewTier("BAD", 0, decimal.NewFromInt(-1))
	require.ErrorIs(t, err, loyalty.ErrInvalidMultiplier)
}
