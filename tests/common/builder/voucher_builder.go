//go:build unit || e2e

package builder

import (
	"time"

	"fahasa-storefront/internal/domain/voucher"

	"github.com/shopspring/decimal"
)

type VoucherBuilder struct {
	Params voucher.Params
}

func NewVoucherBuilder() *VoucherBuilder {
	return &VoucherBuilder{
		Params: voucher.Params{
			ID:          "v-1",
			Code:        "FAHASA50K",
			Type:        "FIXED",
			Value:       decimal.NewFromInt(50000),
			MinPurchase: decimal.Zero,
		},
	}
}

func (v *VoucherBuilder) With(mutate func(*VoucherBuilder)) *VoucherBuilder {
	mutate(v)
	return v
}

func (v *VoucherBuilder) Fixed(value int64) *VoucherBuilder {
	v.Params.Type = "FIXED"
	v.Params.Value = decimal.NewFromInt(value)
	v.Params.MaxDiscountAmount = nil
	return v
}

func (v *VoucherBuilder) Percent(value int64, maxDiscount *int64) *VoucherBuilder {
	v.Params.Type = "PERCENT"
	v.Params.Value = decimal.NewFromInt(value)
	v.Params.MaxDiscountAmount = nil
	if maxDiscount != nil {
		capAmount := decimal.NewFromInt(*maxDiscount)
		v.Params.MaxDiscountAmount = &capAmount
	}
	return v
}

func (v *VoucherBuilder) WithMinPurchase(amount int64) *VoucherBuilder {
	v.Params.MinPurchase = decimal.NewFromInt(amount)
	return v
}

func (v *VoucherBuilder) WithRemainingUses(n int) *VoucherBuilder {
	v.Params.RemainingUses = &n
	return v
}

func (v *VoucherBuilder) WithExpiry(t time.Time) *VoucherBuilder {
	v.Params.ExpiryAt = &t
	return v
}

// Build methods
func (v *VoucherBuilder) BuildDomain() (*voucher.Voucher, error) {
	return voucher.NewVoucher(v.Params)
}

func (v *VoucherBuilder) MustBuild() *voucher.Voucher {
	vc, err := v.BuildDomain()
	if err != nil {
		panic(err)
	}
	return vc
}
