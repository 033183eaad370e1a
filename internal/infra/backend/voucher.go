package backend

import (
	"context"
	"net/url"

	"fahasa-storefront/internal/domain/voucher"
	"fahasa-storefront/internal/infra"
	"fahasa-storefront/internal/pkg/errs"
	"fahasa-storefront/internal/usecase/shared"

	"github.com/shopspring/decimal"
)

type VoucherClient struct {
	client *Client
}

func NewVoucherClient(client *Client) *VoucherClient {
	return &VoucherClient{client: client}
}

func (c *VoucherClient) GetVoucher(ctx context.Context, voucherID string) (*voucher.Voucher, error) {
	var resp voucherResponse
	err := c.client.do(ctx, get("/api/vouchers/{id}", "/api/vouchers/"+url.PathEscape(voucherID)), &resp)
	if err != nil {
		return nil, translate(err, errs.ErrVoucherNotFound)
	}

	params := voucher.Params{
		ID:                resp.ID.String(),
		Code:              resp.Code,
		Type:              resp.DiscountType,
		Value:             resp.DiscountValue,
		MaxDiscountAmount: resp.MaxDiscountAmount,
		MinPurchase:       resp.MinPurchaseAmount,
	}
	if params.ID == "" {
		params.ID = voucherID
	}
	if resp.UsageLimit != nil {
		remaining := max(*resp.UsageLimit-resp.UsedCount, 0)
		params.RemainingUses = &remaining
	}
	if resp.ExpiryDate != nil && !resp.ExpiryDate.IsZero() {
		expiry := resp.ExpiryDate.Time
		params.ExpiryAt = &expiry
	}

	v, err := voucher.NewVoucher(params)
	if err != nil {
		return nil, errs.Mark(infra.WrapRepoErr("invalid voucher payload", err, infra.KindDecodeFailure), errs.ErrNetworkFailure)
	}
	return v, nil
}

// ValidateVoucher reports the server's verdict. A validator that is not deployed (404 or 501)
// yields ErrValidationUnavailable; a 4xx rejection with a message is an invalid verdict.
func (c *VoucherClient) ValidateVoucher(ctx context.Context, voucherID, userID string, subtotal decimal.Decimal) (shared.VoucherValidation, error) {
	var resp validateVoucherResponse
	err := c.client.do(ctx, post("/api/vouchers/validate", "/api/vouchers/validate", validateVoucherRequest{
		VoucherID:   voucherID,
		UserID:      userID,
		OrderAmount: subtotal,
	}), &resp)
	switch {
	case err == nil:
		return shared.VoucherValidation{Valid: resp.Valid, Message: resp.Message}, nil
	case infra.IsKind(err, infra.KindNotFound), infra.IsKind(err, infra.KindNotImplemented):
		return shared.VoucherValidation{}, errs.Mark(err, shared.ErrValidationUnavailable)
	case infra.IsKind(err, infra.KindRejected):
		return shared.VoucherValidation{Valid: false, Message: messageOf(err)}, nil
	default:
		return shared.VoucherValidation{}, translate(err, nil)
	}
}
