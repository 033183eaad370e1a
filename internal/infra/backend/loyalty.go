package backend

import (
	"context"
	"net/url"

	"fahasa-storefront/internal/domain/loyalty"
	"fahasa-storefront/internal/domain/order"
	"fahasa-storefront/internal/infra"
	"fahasa-storefront/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

type LoyaltyClient struct {
	client *Client
}

func NewLoyaltyClient(client *Client) *LoyaltyClient {
	return &LoyaltyClient{client: client}
}

func (c *LoyaltyClient) GetUserRankInfo(ctx context.Context, userID string) (loyalty.RankInfo, error) {
	var resp rankInfoResponse
	path := "/api/users/" + url.PathEscape(userID) + "/rank"
	if err := c.client.do(ctx, get("/api/users/{userId}/rank", path), &resp); err != nil {
		return loyalty.RankInfo{}, translate(err, nil)
	}
	return loyalty.RankInfo{Rank: resp.Rank, Points: resp.Points, Multiplier: resp.Multiplier}, nil
}

func (c *LoyaltyClient) ListTiers(ctx context.Context) ([]loyalty.Tier, error) {
	var resp []tierResponse
	if err := c.client.do(ctx, get("/api/ranks", "/api/ranks"), &resp); err != nil {
		return nil, translate(err, nil)
	}

	tiers := make([]loyalty.Tier, 0, len(resp))
	for _, r := range resp {
		rank := r.Rank
		if rank == "" {
			rank = r.Name
		}
		tier, err := loyalty.NewTier(rank, r.MinPoints, r.Multiplier)
		if err != nil {
			return nil, errs.Mark(infra.WrapRepoErr("invalid tier payload", err, infra.KindDecodeFailure), errs.ErrNetworkFailure)
		}
		tiers = append(tiers, tier)
	}
	return tiers, nil
}

func (c *LoyaltyClient) CreditPoints(ctx context.Context, userID, orderID string, amount decimal.Decimal) error {
	path := "/api/users/" + url.PathEscape(userID) + "/points"
	err := c.client.do(ctx, post("/api/users/{userId}/points", path, creditPointsRequest{
		OrderID: orderID,
		Amount:  amount,
		Points:  order.PointsFor(amount),
	}), nil)
	return translate(err, nil)
}
