package response

import (
	"fahasa-storefront/internal/usecase/queries"
)

type LoyaltyResponse struct {
	Rank         string         `json:"rank"`
	Points       int64          `json:"points"`
	Multiplier   string         `json:"multiplier"`
	ActiveTier   *TierResponse  `json:"active_tier,omitempty"`
	NextTier     *TierResponse  `json:"next_tier,omitempty"`
	PointsToNext int64          `json:"points_to_next"`
	Tiers        []TierResponse `json:"tiers"`
}

func FromLoyaltyView(v *queries.LoyaltyView) LoyaltyResponse {
	r := LoyaltyResponse{
		Rank:         v.Rank,
		Points:       v.Points,
		Multiplier:   v.Multiplier.String(),
		ActiveTier:   FromTier(v.ActiveTier),
		PointsToNext: v.PointsToNext,
		Tiers:        make([]TierResponse, 0, len(v.Tiers)),
	}
	if v.NextTier != nil {
		r.NextTier = FromTier(*v.NextTier)
	}
	for _, t := range v.Tiers {
		var tr TierResponse
		mustCopy(&tr, &t)
		r.Tiers = append(r.Tiers, tr)
	}
	return r
}
