package voucher

import (
	"time"

	"fahasa-storefront/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	ErrVoucherInvalid   = errs.ErrVoucherInvalid
	ErrVoucherExpired   = errs.WithReason(errs.Mark(errs.New("voucher has expired"), ErrVoucherInvalid), "Mã giảm giá đã hết hạn")
	ErrVoucherExhausted = errs.WithReason(errs.Mark(errs.New("voucher has no remaining uses"), ErrVoucherInvalid), "Mã giảm giá đã hết lượt sử dụng")
	ErrBelowMinPurchase = errs.WithReason(errs.Mark(errs.New("subtotal below minimum purchase"), ErrVoucherInvalid), "Đơn hàng chưa đạt giá trị tối thiểu để áp dụng mã giảm giá")
)

// GenericReason is shown when the validator gives no specific message.
const GenericReason = "Mã giảm giá không hợp lệ"

var hundred = decimal.NewFromInt(100)

type Voucher struct {
	id                string
	code              Code
	discountType      DiscountType
	value             decimal.Decimal
	maxDiscountAmount *decimal.Decimal
	minPurchase       decimal.Decimal
	remainingUses     *int
	expiryAt          *time.Time
}

type Params struct {
	ID                string
	Code              string
	Type              string
	Value             decimal.Decimal
	MaxDiscountAmount *decimal.Decimal
	MinPurchase       decimal.Decimal
	RemainingUses     *int
	ExpiryAt          *time.Time
}

func NewVoucher(p Params) (*Voucher, error) {
	code, err := NewCode(p.Code)
	if err != nil {
		return nil, err
	}
	discountType, err := NewDiscountType(p.Type)
	if err != nil {
		return nil, err
	}
	if p.Value.IsNegative() {
		return nil, ErrInvalidDiscountValue
	}
	if discountType == DiscountPercent && p.Value.GreaterThan(hundred) {
		return nil, ErrInvalidPercentValue
	}

	v := &Voucher{
		id:            p.ID,
		code:          code,
		discountType:  discountType,
		value:         p.Value,
		minPurchase:   p.MinPurchase,
		remainingUses: p.RemainingUses,
		expiryAt:      p.ExpiryAt,
	}
	// a cap only makes sense on percentage vouchers
	if discountType == DiscountPercent && p.MaxDiscountAmount != nil {
		capAmount := *p.MaxDiscountAmount
		v.maxDiscountAmount = &capAmount
	}
	return v, nil
}

// DiscountFor returns the voucher's discount against subtotal, assuming the voucher is already eligible.
func (v *Voucher) DiscountFor(subtotal decimal.Decimal) decimal.Decimal {
	if subtotal.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	if v.discountType == DiscountFixed {
		return decimal.Min(v.value, subtotal)
	}

	raw := subtotal.Mul(v.value).Div(hundred)
	if v.maxDiscountAmount == nil {
		return raw
	}
	return decimal.Min(raw, *v.maxDiscountAmount)
}

func (v *Voucher) IsExpiredAt(t time.Time) bool {
	return v.expiryAt != nil && t.After(*v.expiryAt)
}

// ValidateUsage is the local eligibility check run before asking the backend validator.
func (v *Voucher) ValidateUsage(t time.Time, subtotal decimal.Decimal) error {
	if v.IsExpiredAt(t) {
		return ErrVoucherExpired
	}
	if v.remainingUses != nil && *v.remainingUses <= 0 {
		return ErrVoucherExhausted
	}
	if subtotal.LessThan(v.minPurchase) {
		return ErrBelowMinPurchase
	}
	return nil
}

func (v *Voucher) ID() string                          { return v.id }
func (v *Voucher) Code() Code                          { return v.code }
func (v *Voucher) Type() DiscountType                  { return v.discountType }
func (v *Voucher) Value() decimal.Decimal              { return v.value }
func (v *Voucher) MaxDiscountAmount() *decimal.Decimal { return v.maxDiscountAmount }
func (v *Voucher) MinPurchase() decimal.Decimal        { return v.minPurchase }
func (v *Voucher) RemainingUses() *int                 { return v.remainingUses }
func (v *Voucher) ExpiryAt() *time.Time                { return v.expiryAt }
