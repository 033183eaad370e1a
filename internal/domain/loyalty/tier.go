package loyalty

import (
	"errors"
	"sort"

	"github.com/shopspring/decimal"
)

var ErrInvalidMultiplier = errors.New("tier multiplier cannot be below zero")

var one = decimal.NewFromInt(1)

// Tier is a loyalty rank unlocked once a user holds PointsThreshold points.
type Tier struct {
	Rank            string
	PointsThreshold int64
	Multiplier      decimal.Decimal
}

// NoTier applies no loyalty bonus.
var NoTier = Tier{Rank: "", PointsThreshold: 0, Multiplier: one}

func NewTier(rank string, threshold int64, multiplier decimal.Decimal) (Tier, error) {
	if multiplier.IsNegative() {
		return Tier{}, ErrInvalidMultiplier
	}
	return Tier{Rank: rank, PointsThreshold: threshold, Multiplier: multiplier}, nil
}

// HasBonus reports whether the multiplier grants a promotion discount.
func (t Tier) HasBonus() bool {
	return t.Multiplier.GreaterThan(one)
}

// IsNone reports whether t is the zero-bonus fallback.
func (t Tier) IsNone() bool {
	return t.Rank == ""
}

// ActiveTier picks the highest-threshold tier whose threshold is within points.
func ActiveTier(tiers []Tier, points int64) Tier {
	active := NoTier
	found := false
	for _, t := range tiers {
		if t.PointsThreshold > points {
			continue
		}
		if !found || t.PointsThreshold > active.PointsThreshold {
			active = t
			found = true
		}
	}
	return active
}

// NextTier returns the cheapest tier still locked and how many points are missing.
func NextTier(tiers []Tier, points int64) (Tier, int64, bool) {
	sorted := make([]Tier, len(tiers))
	copy(sorted, tiers)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].PointsThreshold < sorted[j].PointsThreshold
	})
	for _, t := range sorted {
		if t.PointsThreshold > points {
			return t, t.PointsThreshold - points, true
		}
	}
	return Tier{}, 0, false
}

// RankInfo is the backend's view of a user's standing.
type RankInfo struct {
	Rank       string
	Points     int64
	Multiplier decimal.Decimal
}

// Tier adapts rank info for pricing. A missing or zero multiplier means no bonus.
func (r RankInfo) Tier() Tier {
	if r.Multiplier.IsZero() {
		return Tier{Rank: r.Rank, Multiplier: one}
	}
	return Tier{Rank: r.Rank, Multiplier: r.Multiplier}
}
