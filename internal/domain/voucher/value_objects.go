package voucher

import (
	"errors"
	"regexp"
	"strings"
)

var (
	ErrInvalidVoucherCode   = errors.New("invalid voucher code format")
	ErrInvalidDiscountType  = errors.New("invalid discount type")
	ErrInvalidDiscountValue = errors.New("discount value cannot be negative")
	ErrInvalidPercentValue  = errors.New("percentage discount must be between 0 and 100")
)

var voucherCodeRegex = regexp.MustCompile(`^[A-Z0-9_-]{3,32}$`)

type Code string

func NewCode(code string) (Code, error) {
	code = strings.TrimSpace(strings.ToUpper(code))
	if !voucherCodeRegex.MatchString(code) {
		return Code(""), ErrInvalidVoucherCode
	}
	return Code(code), nil
}

func (c Code) String() string {
	return string(c)
}

type DiscountType string

const (
	DiscountFixed   DiscountType = "FIXED"
	DiscountPercent DiscountType = "PERCENT"
)

// NewDiscountType accepts the backend's spellings ("FIXED", "fixed_amount", "PERCENTAGE", ...).
func NewDiscountType(s string) (DiscountType, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "FIXED", "FIXED_AMOUNT", "AMOUNT":
		return DiscountFixed, nil
	case "PERCENT", "PERCENTAGE":
		return DiscountPercent, nil
	default:
		return "", ErrInvalidDiscountType
	}
}

func (t DiscountType) String() string {
	return string(t)
}
