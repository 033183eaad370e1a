package pricing

import (
	"fahasa-storefront/internal/domain/cart"
	"fahasa-storefront/internal/domain/loyalty"
	"fahasa-storefront/internal/domain/voucher"

	"github.com/shopspring/decimal"
)

// Quote is recomputed on every request and never cached.
type Quote struct {
	Subtotal          decimal.Decimal
	PromotionDiscount decimal.Decimal
	VoucherDiscount   decimal.Decimal
	FinalTotal        decimal.Decimal
}

func ZeroQuote() Quote {
	return Quote{
		Subtotal:          decimal.Zero,
		PromotionDiscount: decimal.Zero,
		VoucherDiscount:   decimal.Zero,
		FinalTotal:        decimal.Zero,
	}
}

func (q Quote) TotalDiscount() decimal.Decimal {
	return q.PromotionDiscount.Add(q.VoucherDiscount)
}

// Equal compares amounts numerically, ignoring decimal exponent differences.
func (q Quote) Equal(o Quote) bool {
	return q.Subtotal.Equal(o.Subtotal) &&
		q.PromotionDiscount.Equal(o.PromotionDiscount) &&
		q.VoucherDiscount.Equal(o.VoucherDiscount) &&
		q.FinalTotal.Equal(o.FinalTotal)
}

type Calculator interface {
	Quote(items []cart.LineItem, tier loyalty.Tier, v *voucher.Voucher) Quote
}

// DefaultCalculator applies the loyalty bonus and the voucher independently against the
// subtotal; neither discount reduces the base of the other.
type DefaultCalculator struct{}

func NewDefaultCalculator() *DefaultCalculator {
	return &DefaultCalculator{}
}

var one = decimal.NewFromInt(1)

func (DefaultCalculator) Quote(items []cart.LineItem, tier loyalty.Tier, v *voucher.Voucher) Quote {
	q := ZeroQuote()
	for _, item := range items {
		q.Subtotal = q.Subtotal.Add(item.LineTotal())
	}
	if len(items) == 0 {
		return q
	}

	// a multiplier of 1.1 is a bonus discount of 10% of the subtotal
	if tier.Multiplier.GreaterThan(one) {
		q.PromotionDiscount = q.Subtotal.Mul(tier.Multiplier.Sub(one))
	}
	if v != nil {
		q.VoucherDiscount = v.DiscountFor(q.Subtotal)
	}

	q.FinalTotal = decimal.Max(decimal.Zero, q.Subtotal.Sub(q.PromotionDiscount).Sub(q.VoucherDiscount))
	return q
}
